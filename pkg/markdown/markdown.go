package markdown

import (
	"github.com/microcosm-cc/bluemonday"
	"github.com/russross/blackfriday/v2"
)

// 写入路径的正文渲染：Markdown → HTML → 白名单消毒
// 作为显式同步调用，存储的 BodyHTML 始终与最新 Body 一致

var policy = buildPolicy()

func buildPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	// 评论/文章允许的标签白名单
	p.AllowElements("a", "abbr", "acronym", "b", "blockquote", "code",
		"em", "i", "li", "ol", "pre", "strong", "ul",
		"h1", "h2", "h3", "p")
	p.AllowAttrs("href").OnElements("a")
	p.RequireNoFollowOnLinks(true)
	return p
}

// Render 渲染并消毒正文
func Render(body string) string {
	html := blackfriday.Run([]byte(body))
	return string(policy.SanitizeBytes(html))
}
