package benefits

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var (
	tagRe        = regexp.MustCompile(`<[^>]+>`)
	spaceRe      = regexp.MustCompile(`[\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]+`)
	decimalRefRe = regexp.MustCompile(`&#(\d+);`)
	hexRefRe     = regexp.MustCompile(`(?i)&#x([0-9a-f]+);`)
	nonSlugRe    = regexp.MustCompile(`[^a-z0-9]+`)
)

// Applied in order, each over the output of the previous one.
var namedEntities = [][2]string{
	{"&amp;", "&"},
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&quot;", `"`},
	{"&#39;", "'"},
	{"&nbsp;", " "},
}

var danishLetters = strings.NewReplacer("æ", "ae", "ø", "oe", "å", "aa", "%", "")

// DecodeHTML replaces the named entities the source page uses, then decimal
// and hexadecimal character references.
func DecodeHTML(s string) string {
	for _, entity := range namedEntities {
		s = strings.ReplaceAll(s, entity[0], entity[1])
	}
	s = decimalRefRe.ReplaceAllStringFunc(s, func(ref string) string {
		n, err := strconv.ParseUint(ref[2:len(ref)-1], 10, 32)
		if err != nil {
			return ref
		}
		return string(rune(n))
	})
	s = hexRefRe.ReplaceAllStringFunc(s, func(ref string) string {
		n, err := strconv.ParseUint(ref[3:len(ref)-1], 16, 32)
		if err != nil {
			return ref
		}
		return string(rune(n))
	})
	return s
}

// CleanText turns an HTML fragment into a single line of display text.
func CleanText(s string) string {
	s = tagRe.ReplaceAllString(s, " ")
	s = spaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(DecodeHTML(s))
}

// ToAbsoluteURL resolves href against base. It reports false for an empty
// href or when either URL cannot be parsed.
func ToAbsoluteURL(href, base string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", false
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return "", false
	}

	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}

	resolved := baseURL.ResolveReference(ref)
	if !resolved.IsAbs() {
		return "", false
	}
	if resolved.Host != "" && resolved.Path == "" && resolved.Opaque == "" {
		resolved.Path = "/"
	}

	return resolved.String(), true
}

// SlugifyTitle derives the item id from its title.
func SlugifyTitle(title string) string {
	slug := cases.Lower(language.Danish).String(norm.NFC.String(title))
	slug = danishLetters.Replace(slug)
	slug = nonSlugRe.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// NormalizeTitle is the comparison key used for de-duplication.
func NormalizeTitle(title string) string {
	lowered := cases.Lower(language.Danish).String(norm.NFC.String(title))
	return strings.TrimSpace(spaceRe.ReplaceAllString(lowered, " "))
}
