package details

import (
	"bytes"
	"html"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

var (
	markdown = goldmark.New(goldmark.WithRendererOptions(gmhtml.WithHardWraps()))
	policy   = newDescriptionPolicy()
)

func newDescriptionPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// DescriptionHTML renders a markdown description to sanitized HTML. An empty
// description yields the placeholder paragraph.
func DescriptionHTML(description string) string {
	if description == "" {
		return "<p>" + html.EscapeString(NoDescription) + "</p>"
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(description), &buf); err != nil {
		return "<p>" + html.EscapeString(description) + "</p>"
	}
	return policy.Sanitize(buf.String())
}
