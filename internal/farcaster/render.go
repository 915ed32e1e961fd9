package farcaster

import (
	"encoding/json"
	"fmt"
	"html"
	"net/url"
	"strings"
)

// Button actions understood by frame clients.
const (
	ActionLink = "link"
	ActionPost = "post"
)

// Button is one frame button: a link out or a post-back action.
type Button struct {
	Action string
	Label  string
	Target string
}

// Frame describes a frame response document: buttons, image, open-graph
// metadata, the post-back URL, and optional auxiliary state.
type Frame struct {
	Buttons       []Button
	ImageSrc      string
	OGTitle       string
	OGDescription string
	PostURL       string
	State         map[string]string
}

// RenderHTML produces the frame response document. Every interaction path,
// success or failure, answers with one of these; clients read the fc:frame
// meta tags and ignore the body.
func RenderHTML(f Frame) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html><head>\n")
	writeMeta(&b, "fc:frame", "vNext")
	writeMeta(&b, "fc:frame:image", f.ImageSrc)
	writeMeta(&b, "og:image", f.ImageSrc)

	for i, btn := range f.Buttons {
		n := i + 1
		writeMeta(&b, fmt.Sprintf("fc:frame:button:%d", n), btn.Label)
		writeMeta(&b, fmt.Sprintf("fc:frame:button:%d:action", n), btn.Action)
		writeMeta(&b, fmt.Sprintf("fc:frame:button:%d:target", n), btn.Target)
	}

	if f.PostURL != "" {
		writeMeta(&b, "fc:frame:post_url", f.PostURL)
	}
	if len(f.State) > 0 {
		// State travels as URL-encoded JSON, matching what frame clients echo
		// back on the next post.
		encoded, err := json.Marshal(f.State)
		if err == nil {
			writeMeta(&b, "fc:frame:state", url.QueryEscape(string(encoded)))
		}
	}
	if f.OGTitle != "" {
		writeMeta(&b, "og:title", f.OGTitle)
	}
	if f.OGDescription != "" {
		writeMeta(&b, "og:description", f.OGDescription)
	}

	b.WriteString("</head><body></body></html>")
	return b.String()
}

func writeMeta(b *strings.Builder, property, content string) {
	fmt.Fprintf(b, "<meta property=%q content=%q />\n",
		html.EscapeString(property), html.EscapeString(content))
}

// ErrorFrame renders the default error frame document returned on every
// failed interaction path.
func ErrorFrame(baseURL string) string {
	return errorFrame(baseURL, "Something went wrong")
}

// NoProductsFrame renders the distinct error document for an empty catalog,
// the one condition the recommendation policy cannot fall back from.
func NoProductsFrame(baseURL string) string {
	return errorFrame(baseURL, "This store has no products yet")
}

func errorFrame(baseURL, title string) string {
	query := url.Values{}
	query.Set("title", title)
	query.Set("width", "600")
	// No buttons, so no post_url: the document is terminal.
	return RenderHTML(Frame{
		ImageSrc: baseURL + "/api/og?" + query.Encode(),
		OGTitle:  "Target Onchain",
	})
}
