package socials

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Filter rewrites resolved suffix text, usually to change its case.
type Filter func(string) string

// Normal upper-cases the first letter and leaves the rest untouched:
// "this is a test." becomes "This is a test.".
func Normal(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Title capitalizes every word.
func Title(s string) string {
	return cases.Title(language.English).String(s)
}

// Upper upper-cases the whole string.
func Upper(s string) string {
	return cases.Upper(language.English).String(s)
}

// Lower lower-cases the whole string.
func Lower(s string) string {
	return cases.Lower(language.English).String(s)
}

// FilterByName returns the filter called name. "none" and "" return a nil
// filter, which leaves text unchanged.
func FilterByName(name string) (Filter, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return nil, nil
	case "normal":
		return Normal, nil
	case "title":
		return Title, nil
	case "upper":
		return Upper, nil
	case "lower":
		return Lower, nil
	}
	return nil, fmt.Errorf("unknown case filter %q", name)
}

// filterFor picks the factory filter matching how suffix was written.
func (f *Factory) filterFor(suffix string) Filter {
	switch {
	case isUpper(suffix):
		return f.UpperCaseFilter
	case startsUpper(suffix):
		return f.TitleCaseFilter
	default:
		return f.LowerCaseFilter
	}
}

// isUpper reports whether s has at least one letter and no lower-case ones.
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}
