package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jpreston/bloggerpro/internal/util"
)

const (
	defaultBaseURL    = "https://generativelanguage.googleapis.com"
	defaultTextModel  = "gemini-3-flash-preview"
	defaultImageModel = "gemini-2.5-flash-image"

	// UntitledPost is the fallback when title generation yields nothing.
	UntitledPost = "Untitled Post"

	// titleContextLimit caps how much article text the title instruction quotes.
	titleContextLimit = 1500
)

const (
	articlePromptFmt = `You are a professional blog writer. Create a compelling, detailed, and SEO-optimized blog post about: %q.
Structure the post with clear headings (H2, H3), bullet points where appropriate, and a concluding thought.
Format the output in clean Markdown.`

	titlePromptFmt = `Analyze the following blog content and generate the most engaging, professional, and click-worthy title: %q.
Return only the title text, nothing else.`

	imagePromptFmt = `High-quality professional editorial photograph for a blog article about: %s. Modern aesthetic, minimal background, high resolution, 4k, soft cinematic lighting.`
)

// GeminiClient implements Assistant against the Gemini generateContent API.
// One request/response round-trip per operation; no retries, no backoff.
type GeminiClient struct {
	baseURL    string
	textModel  string
	imageModel string
	credential CredentialProvider
	httpClient *http.Client
}

// geminiRequest is the generateContent request format.
type geminiRequest struct {
	Contents         []geminiContent   `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ImageConfig *imageConfig `json:"imageConfig,omitempty"`
}

type imageConfig struct {
	AspectRatio string `json:"aspectRatio"`
}

// geminiResponse is the generateContent response format.
type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// geminiError is the error envelope returned on non-2xx responses.
type geminiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// NewGeminiClient creates a client. Empty arguments fall back to defaults;
// the credential provider is required.
func NewGeminiClient(baseURL, textModel, imageModel string, credential CredentialProvider) (*GeminiClient, error) {
	if credential == nil {
		return nil, fmt.Errorf("credential provider is required")
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if textModel == "" {
		textModel = defaultTextModel
	}
	if imageModel == "" {
		imageModel = defaultImageModel
	}

	return &GeminiClient{
		baseURL:    baseURL,
		textModel:  textModel,
		imageModel: imageModel,
		credential: credential,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

// GenerateArticle produces a markdown article for the given topic. The
// provider returning no text yields an empty string, not an error.
func (c *GeminiClient) GenerateArticle(ctx context.Context, topic string) (string, error) {
	if topic == "" {
		return "", fmt.Errorf("%w: topic is required", ErrGenerationFailed)
	}

	resp, err := c.generateContent(ctx, c.textModel, fmt.Sprintf(articlePromptFmt, topic), nil)
	if err != nil {
		return "", err
	}
	return firstText(resp), nil
}

// GenerateTitle asks the provider to title an article, quoting at most the
// first 1500 characters. The result is stripped of quote and asterisk
// characters; an empty result falls back to "Untitled Post".
func (c *GeminiClient) GenerateTitle(ctx context.Context, article string) (string, error) {
	prompt := fmt.Sprintf(titlePromptFmt, util.Truncate(article, titleContextLimit))

	resp, err := c.generateContent(ctx, c.textModel, prompt, nil)
	if err != nil {
		return "", err
	}

	title := strings.NewReplacer(`"`, "", "*", "").Replace(firstText(resp))
	title = strings.TrimSpace(title)
	if title == "" {
		return UntitledPost, nil
	}
	return title, nil
}

// GenerateCoverImage requests a 16:9 editorial photograph and returns the
// first inline image payload as a data URI. No payload yields an empty string.
func (c *GeminiClient) GenerateCoverImage(ctx context.Context, topic string) (string, error) {
	if topic == "" {
		return "", fmt.Errorf("%w: topic is required", ErrGenerationFailed)
	}

	cfg := &generationConfig{
		ImageConfig: &imageConfig{AspectRatio: "16:9"},
	}
	resp, err := c.generateContent(ctx, c.imageModel, fmt.Sprintf(imagePromptFmt, topic), cfg)
	if err != nil {
		return "", err
	}

	for _, candidate := range resp.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && part.InlineData.Data != "" {
				return "data:image/png;base64," + part.InlineData.Data, nil
			}
		}
	}
	return "", nil
}

// generateContent performs a single round-trip to the provider.
func (c *GeminiClient) generateContent(ctx context.Context, model, prompt string, cfg *generationConfig) (*geminiResponse, error) {
	req := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: cfg,
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: marshaling request: %v", ErrGenerationFailed, err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %v", ErrGenerationFailed, err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Goog-Api-Key", c.credential())

	// Both the sentinel and the transport error stay in the chain, so
	// callers can still see a context cancellation.
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrGenerationFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp geminiError
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
			return nil, fmt.Errorf("%w: API error (%d): %s", ErrGenerationFailed, resp.StatusCode, errResp.Error.Message)
		}
		return nil, fmt.Errorf("%w: API error (%d)", ErrGenerationFailed, resp.StatusCode)
	}

	var geminiResp geminiResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return nil, fmt.Errorf("%w: parsing response: %v", ErrGenerationFailed, err)
	}
	return &geminiResp, nil
}

// firstText returns the first text part of the first candidate, or "".
func firstText(resp *geminiResponse) string {
	for _, candidate := range resp.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				return part.Text
			}
		}
	}
	return ""
}
