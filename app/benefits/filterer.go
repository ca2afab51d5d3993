package benefits

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

// Lengths are counted in runes, not bytes or UTF-16 units.
const (
	minTitleLength       = 3
	maxTitleLength       = 90
	minDescriptionLength = 20
)

var (
	reservedTitleRe = regexp.MustCompile(`(?i)^(medlemsfordele|kontakt|om os)$`)

	// Sections about benefits for groups and associations rather than
	// individual members. Both keyword orders count.
	groupOnlyRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(fordele).*(grupper|foreninger|organisationer)`),
		regexp.MustCompile(`(?i)(grupper|foreninger|organisationer).*(fordele)`),
	}
)

// Filterer holds the inclusion rules applied to candidate headings and to
// the items built from them.
type Filterer struct {
	seen map[string]bool
}

func NewFilterer() *Filterer {
	return &Filterer{seen: make(map[string]bool)}
}

// RejectHeading reports whether a candidate heading must be skipped before
// its section is parsed, and why.
func (f *Filterer) RejectHeading(title, activeSection string) (bool, string) {
	length := utf8.RuneCountInString(title)
	if title == "" || length < minTitleLength || length > maxTitleLength {
		return true, fmt.Sprintf("title length %d outside %d-%d", length, minTitleLength, maxTitleLength)
	}

	if reservedTitleRe.MatchString(title) {
		return true, fmt.Sprintf("reserved title '%s'", title)
	}

	if activeSection != "" && IsGroupOnlySection(activeSection) {
		return true, fmt.Sprintf("inside group-only section '%s'", activeSection)
	}

	if f.seen[NormalizeTitle(title)] {
		return true, "duplicate title"
	}

	return false, ""
}

// RejectItem reports whether a parsed item lacks what the slideshow needs.
func (f *Filterer) RejectItem(item Item) (bool, string) {
	if item.Link == "" {
		return true, "no link"
	}

	if length := utf8.RuneCountInString(item.Description); length < minDescriptionLength {
		return true, fmt.Sprintf("description too short (%d)", length)
	}

	return false, ""
}

// Accept marks the item's title as taken for the rest of the run.
func (f *Filterer) Accept(item Item) {
	f.seen[NormalizeTitle(item.Title)] = true
}

func IsGroupOnlySection(title string) bool {
	normalized := NormalizeTitle(title)
	for _, re := range groupOnlyRes {
		if re.MatchString(normalized) {
			return true
		}
	}
	return false
}
