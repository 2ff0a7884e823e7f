package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// textResponse builds a canned generateContent response with one text part.
func textResponse(text string) string {
	resp := map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func imageResponse(data string) string {
	resp := map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{
				{"text": "here is your image"},
				{"inlineData": map[string]any{"mimeType": "image/png", "data": data}},
			}}},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewGeminiClient(server.URL, "", "", StaticCredential("test-key"))
	require.NoError(t, err)
	return client
}

func TestNewGeminiClient(t *testing.T) {
	_, err := NewGeminiClient("", "", "", nil)
	assert.Error(t, err)

	client, err := NewGeminiClient("", "", "", StaticCredential("k"))
	require.NoError(t, err)
	assert.Equal(t, defaultBaseURL, client.baseURL)
	assert.Equal(t, defaultTextModel, client.textModel)
	assert.Equal(t, defaultImageModel, client.imageModel)
}

func TestGenerateArticle(t *testing.T) {
	t.Run("Returns provider text", func(t *testing.T) {
		var gotPath, gotKey string
		var gotReq geminiRequest
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotKey = r.Header.Get("X-Goog-Api-Key")
			json.NewDecoder(r.Body).Decode(&gotReq)
			w.Write([]byte(textResponse("# Generated Article")))
		})

		article, err := client.GenerateArticle(context.Background(), "gardening")
		require.NoError(t, err)
		assert.Equal(t, "# Generated Article", article)
		assert.Equal(t, "/v1beta/models/gemini-3-flash-preview:generateContent", gotPath)
		assert.Equal(t, "test-key", gotKey)
		require.Len(t, gotReq.Contents, 1)
		assert.Contains(t, gotReq.Contents[0].Parts[0].Text, `"gardening"`)
		assert.Contains(t, gotReq.Contents[0].Parts[0].Text, "professional blog writer")
	})

	t.Run("Empty provider response yields empty string", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"candidates":[]}`))
		})

		article, err := client.GenerateArticle(context.Background(), "gardening")
		require.NoError(t, err)
		assert.Equal(t, "", article)
	})

	t.Run("Empty topic is rejected", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		})

		_, err := client.GenerateArticle(context.Background(), "")
		assert.ErrorIs(t, err, ErrGenerationFailed)
	})

	t.Run("Provider error collapses into ErrGenerationFailed", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error":{"code":403,"message":"API key not valid","status":"PERMISSION_DENIED"}}`))
		})

		_, err := client.GenerateArticle(context.Background(), "gardening")
		assert.ErrorIs(t, err, ErrGenerationFailed)
		assert.Contains(t, err.Error(), "API key not valid")
	})
}

func TestGenerateTitle(t *testing.T) {
	t.Run("Strips quotes and asterisks and trims", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(textResponse(` **"My Great Title"** `)))
		})

		title, err := client.GenerateTitle(context.Background(), "some article")
		require.NoError(t, err)
		assert.Equal(t, "My Great Title", title)
	})

	t.Run("Empty response falls back to Untitled Post", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(textResponse("")))
		})

		title, err := client.GenerateTitle(context.Background(), "some article")
		require.NoError(t, err)
		assert.Equal(t, UntitledPost, title)
	})

	t.Run("Quotes only the article prefix", func(t *testing.T) {
		long := make([]byte, 4000)
		for i := range long {
			long[i] = 'a'
		}

		var gotReq geminiRequest
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewDecoder(r.Body).Decode(&gotReq)
			w.Write([]byte(textResponse("Title")))
		})

		_, err := client.GenerateTitle(context.Background(), string(long))
		require.NoError(t, err)
		// Prompt scaffolding plus at most 1500 quoted characters.
		assert.Less(t, len(gotReq.Contents[0].Parts[0].Text), 1700)
	})

	t.Run("Failure propagates", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := client.GenerateTitle(context.Background(), "article")
		assert.ErrorIs(t, err, ErrGenerationFailed)
	})
}

func TestGenerateCoverImage(t *testing.T) {
	t.Run("Returns first inline payload as data URI", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(imageResponse("aGVsbG8=")))
		})

		uri, err := client.GenerateCoverImage(context.Background(), "gardening")
		require.NoError(t, err)
		assert.Equal(t, "data:image/png;base64,aGVsbG8=", uri)
	})

	t.Run("Requests a 16:9 aspect ratio", func(t *testing.T) {
		var raw struct {
			GenerationConfig struct {
				ImageConfig struct {
					AspectRatio string `json:"aspectRatio"`
				} `json:"imageConfig"`
			} `json:"generationConfig"`
		}
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewDecoder(r.Body).Decode(&raw)
			w.Write([]byte(imageResponse("aGVsbG8=")))
		})

		_, err := client.GenerateCoverImage(context.Background(), "gardening")
		require.NoError(t, err)
		assert.Equal(t, "16:9", raw.GenerationConfig.ImageConfig.AspectRatio)
	})

	t.Run("No image payload yields empty string", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(textResponse("no image today")))
		})

		uri, err := client.GenerateCoverImage(context.Background(), "gardening")
		require.NoError(t, err)
		assert.Equal(t, "", uri)
	})

	t.Run("Empty topic is rejected", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		})

		_, err := client.GenerateCoverImage(context.Background(), "")
		assert.ErrorIs(t, err, ErrGenerationFailed)
	})
}

func TestOperationsAreIndependent(t *testing.T) {
	// A failing image model must not affect the text operations.
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1beta/models/gemini-2.5-flash-image:generateContent" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(textResponse("fine")))
	})

	_, err := client.GenerateCoverImage(context.Background(), "topic")
	assert.ErrorIs(t, err, ErrGenerationFailed)

	article, err := client.GenerateArticle(context.Background(), "topic")
	require.NoError(t, err)
	assert.Equal(t, "fine", article)
}
