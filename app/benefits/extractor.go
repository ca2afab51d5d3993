package benefits

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	headingOpenRe = regexp.MustCompile(`(?i)<h([1-6])[^>]*>`)
	paragraphRe   = regexp.MustCompile(`(?i)<p[^>]*>([\s\S]*?)</p>`)
	linkRe        = regexp.MustCompile(`(?i)<a[^>]*href=["']([^"']+)["'][^>]*>`)
	imageRe       = regexp.MustCompile(`(?i)<img[^>]*src=["']([^"']+)["'][^>]*>`)

	// Indexed by heading level; a heading only closes with a tag of its own level.
	headingCloseRes = [7]*regexp.Regexp{
		1: regexp.MustCompile(`(?i)</h1>`),
		2: regexp.MustCompile(`(?i)</h2>`),
		3: regexp.MustCompile(`(?i)</h3>`),
		4: regexp.MustCompile(`(?i)</h4>`),
		5: regexp.MustCompile(`(?i)</h5>`),
		6: regexp.MustCompile(`(?i)</h6>`),
	}
)

type heading struct {
	index    int
	level    int
	rawTitle string
	length   int
}

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the benefit items found in html, in document order.
func Extract(html, pageURL string) []Item {
	return NewExtractor().Run(html, pageURL).Items
}

// Run segments html by headings and builds one item per level 3-6 heading
// that passes the Filterer. Level 1-2 headings only set the active section.
func (e *Extractor) Run(html, pageURL string) Result {
	headings := scanHeadings(html)
	filterer := NewFilterer()

	result := Result{Items: make([]Item, 0)}
	activeSection := ""

	for i, current := range headings {
		title := CleanText(current.rawTitle)

		if current.level <= 2 {
			activeSection = title
			continue
		}

		if rejected, reason := filterer.RejectHeading(title, activeSection); rejected {
			result.Skipped = append(result.Skipped, Skipped{Title: title, Reason: reason})
			continue
		}

		sectionStart := current.index + current.length
		sectionEnd := len(html)
		if i+1 < len(headings) {
			sectionEnd = headings[i+1].index
		}

		item := parseSection(html[sectionStart:sectionEnd], title, pageURL)
		if rejected, reason := filterer.RejectItem(item); rejected {
			result.Skipped = append(result.Skipped, Skipped{Title: title, Reason: reason})
			continue
		}

		filterer.Accept(item)
		result.Items = append(result.Items, item)
	}

	return result
}

// scanHeadings finds non-overlapping <hN>...</hN> elements. An opening tag
// without a matching close of the same level is ignored and scanning resumes
// right after its first character.
func scanHeadings(html string) []heading {
	var headings []heading

	pos := 0
	for pos < len(html) {
		open := headingOpenRe.FindStringSubmatchIndex(html[pos:])
		if open == nil {
			break
		}

		openStart := pos + open[0]
		openEnd := pos + open[1]
		level := int(html[pos+open[2]] - '0')

		closing := headingCloseRes[level].FindStringIndex(html[openEnd:])
		if closing == nil {
			pos = openStart + 1
			continue
		}

		closeStart := openEnd + closing[0]
		closeEnd := openEnd + closing[1]
		headings = append(headings, heading{
			index:    openStart,
			level:    level,
			rawTitle: html[openEnd:closeStart],
			length:   closeEnd - openStart,
		})
		pos = closeEnd
	}

	return headings
}

func parseSection(section, title, pageURL string) Item {
	var paragraphs []string
	for _, match := range paragraphRe.FindAllStringSubmatch(section, -1) {
		if text := CleanText(match[1]); text != "" {
			paragraphs = append(paragraphs, text)
		}
	}

	item := Item{
		ID:          SlugifyTitle(title),
		Title:       title,
		Description: strings.Join(paragraphs, " "),
	}

	if match := linkRe.FindStringSubmatch(section); match != nil {
		if link, ok := ToAbsoluteURL(match[1], pageURL); ok {
			item.Link = link
		}
	}

	if match := imageRe.FindStringSubmatch(section); match != nil {
		if image, ok := ToAbsoluteURL(match[1], pageURL); ok {
			item.Image = &image
		}
	}

	return item
}

func (s Skipped) String() string {
	return fmt.Sprintf("%s: %s", s.Title, s.Reason)
}
