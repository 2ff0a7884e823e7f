// Package render turns post markdown into styled terminal text.
package render

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"
	"github.com/rs/zerolog"

	"github.com/jpreston/bloggerpro/internal/cache"
)

var renderLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	renderLogger = l
}

var (
	h1Style = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("208")).
		MarginTop(1)

	h2Style = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("214")).
		MarginTop(1)

	h3Style = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("220"))

	emphStyle   = lipgloss.NewStyle().Italic(true)
	strongStyle = lipgloss.NewStyle().Bold(true)

	codeSpanStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Background(lipgloss.Color("236"))

	quoteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)

	linkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Underline(true)

	listMarker = "• "
)

// Markdown renders post content for a terminal of the given width. Plain
// text without markup comes out as paragraphs split on line breaks.
func Markdown(content string, width int) string {
	if width <= 0 {
		width = 80
	}

	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := p.Parse([]byte(content))

	var blocks []string
	for _, child := range doc.GetChildren() {
		if rendered := renderBlock(child, width); rendered != "" {
			blocks = append(blocks, rendered)
		}
	}
	return strings.Join(blocks, "\n\n")
}

// Mutex to protect the check-render-set operation in MarkdownCached
var renderCacheMutex sync.Mutex

// MarkdownCached renders through the rendered-markdown cache, keyed by the
// content hash and the terminal width.
func MarkdownCached(content, contentHash string, width int) string {
	if contentHash == "" {
		renderLogger.Warn().Msg("Content hash is empty, skipping cache check")
		return Markdown(content, width)
	}

	if cached, found := cache.GetRenderedMarkdown(contentHash, width); found {
		return cached
	}

	renderCacheMutex.Lock()
	defer renderCacheMutex.Unlock()

	rendered := Markdown(content, width)
	cache.SetRenderedMarkdown(contentHash, width, rendered)
	return rendered
}

func renderBlock(node ast.Node, width int) string {
	switch n := node.(type) {
	case *ast.Heading:
		style := h3Style
		switch n.Level {
		case 1:
			style = h1Style
		case 2:
			style = h2Style
		}
		return style.Width(width).Render(renderInline(n))

	case *ast.Paragraph:
		return lipgloss.NewStyle().Width(width).Render(renderInline(n))

	case *ast.List:
		var items []string
		for _, item := range n.GetChildren() {
			text := renderInline(item)
			items = append(items, lipgloss.NewStyle().
				Width(width-len(listMarker)).
				Render(listMarker+text))
		}
		return strings.Join(items, "\n")

	case *ast.BlockQuote:
		var parts []string
		for _, child := range n.GetChildren() {
			parts = append(parts, renderInline(child))
		}
		return quoteStyle.Width(width).Render("│ " + strings.Join(parts, "\n"))

	case *ast.CodeBlock:
		return HighlightCode(strings.TrimRight(string(n.Literal), "\n"), string(n.Info))

	case *ast.HorizontalRule:
		return strings.Repeat("─", width)

	default:
		if text := renderInline(node); text != "" {
			return lipgloss.NewStyle().Width(width).Render(text)
		}
		return ""
	}
}

// renderInline flattens a node's inline children into styled text.
func renderInline(node ast.Node) string {
	var b strings.Builder

	for _, child := range node.GetChildren() {
		switch n := child.(type) {
		case *ast.Text:
			b.WriteString(string(n.Literal))
		case *ast.Code:
			b.WriteString(codeSpanStyle.Render(string(n.Literal)))
		case *ast.Emph:
			b.WriteString(emphStyle.Render(plainText(n)))
		case *ast.Strong:
			b.WriteString(strongStyle.Render(plainText(n)))
		case *ast.Link:
			b.WriteString(linkStyle.Render(plainText(n)))
		case *ast.Softbreak, *ast.Hardbreak:
			b.WriteString("\n")
		default:
			b.WriteString(renderInline(child))
		}
	}
	return b.String()
}

// plainText collects a subtree's literal text without styling.
func plainText(node ast.Node) string {
	if leaf := node.AsLeaf(); leaf != nil {
		return string(leaf.Literal)
	}

	var b strings.Builder
	for _, child := range node.GetChildren() {
		b.WriteString(plainText(child))
	}
	return b.String()
}
