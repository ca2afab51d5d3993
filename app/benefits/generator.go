package benefits

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"html"
	"mime"
	"net/url"
	"path"
	"time"
)

// Generator renders a payload as an RSS 2.0 channel.
type Generator struct {
	title   string
	selfURL string
	version string
}

func NewGenerator(title, selfURL, version string) *Generator {
	return &Generator{title: title, selfURL: selfURL, version: version}
}

func (g *Generator) Run(payload Payload) (string, error) {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`)
	buf.WriteString("\n  <channel>\n")

	g.writeElement(&buf, "title", g.title, 4)
	g.writeElement(&buf, "link", payload.SourceURL, 4)
	g.writeElement(&buf, "description", fmt.Sprintf("Member benefits from %s", payload.SourceURL), 4)

	if g.selfURL != "" {
		buf.WriteString(fmt.Sprintf("    <atom:link href=\"%s\" rel=\"self\" type=\"application/rss+xml\" />\n",
			html.EscapeString(g.selfURL)))
	}

	if payload.UpdatedAt != "" {
		updatedAt, err := ParseTimestamp(payload.UpdatedAt)
		if err != nil {
			return "", fmt.Errorf("invalid updatedAt %q: %w", payload.UpdatedAt, err)
		}
		g.writeElement(&buf, "lastBuildDate", updatedAt.Format(time.RFC1123Z), 4)
	}

	g.writeElement(&buf, "generator", fmt.Sprintf("Benefit-Slides/%s", g.version), 4)
	g.writeElement(&buf, "language", "da", 4)

	for _, item := range payload.Items {
		g.writeItem(&buf, item)
	}

	buf.WriteString("  </channel>\n</rss>")

	return buf.String(), nil
}

func (g *Generator) writeItem(buf *bytes.Buffer, item Item) {
	buf.WriteString("    <item>\n")

	buf.WriteString("      <guid isPermaLink=\"false\">")
	xml.EscapeText(buf, []byte(item.ID))
	buf.WriteString("</guid>\n")

	g.writeElement(buf, "title", item.Title, 6)
	g.writeElement(buf, "link", item.Link, 6)
	g.writeElement(buf, "description", item.Description, 6)

	if item.Image != nil {
		if mimeType := imageType(*item.Image); mimeType != "" {
			buf.WriteString(fmt.Sprintf("      <enclosure url=\"%s\" length=\"0\" type=\"%s\" />\n",
				html.EscapeString(*item.Image),
				html.EscapeString(mimeType)))
		}
	}

	buf.WriteString("    </item>\n")
}

func (g *Generator) writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}

func imageType(imageURL string) string {
	u, err := url.Parse(imageURL)
	if err != nil {
		return ""
	}
	return mime.TypeByExtension(path.Ext(u.Path))
}
