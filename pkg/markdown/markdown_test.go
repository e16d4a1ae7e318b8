package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdown(t *testing.T) {
	html := Render("# 标题\n\n正文 **加粗**")

	assert.Contains(t, html, "<h1>")
	assert.Contains(t, html, "<strong>加粗</strong>")
}

func TestRenderStripsScript(t *testing.T) {
	html := Render("hello <script>alert('x')</script> world")

	assert.NotContains(t, html, "<script>")
	assert.NotContains(t, html, "alert")
	assert.Contains(t, html, "hello")
}

func TestRenderStripsDisallowedTags(t *testing.T) {
	html := Render(`<img src="x" onerror="evil()"> <em>ok</em>`)

	assert.NotContains(t, html, "<img")
	assert.NotContains(t, html, "onerror")
	assert.Contains(t, html, "<em>ok</em>")
}

func TestRenderLinksGetNoFollow(t *testing.T) {
	html := Render("[link](https://example.com)")

	assert.Contains(t, html, `href="https://example.com"`)
	assert.Contains(t, html, "nofollow")
}
