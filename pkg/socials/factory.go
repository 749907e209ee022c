// Package socials generates multi-perspective emote strings.
//
// A template such as
//
//	%1N smile%1s at %2 with %1his eyes sparkling.
//
// is rendered once for every object in a perspective list plus once for
// everyone else, so the actor reads "You smile at Jane ..." while Jane reads
// "Bill smiles at you ..." and bystanders read "Bill smiles at Jane ...".
//
// Directives are %<index><suffix>. The index is 1-based into the
// perspective list and the suffix names a Resolver registered on a Factory.
// Either part may be omitted, in which case the factory defaults are used,
// so a bare % means %1n. Use %% for a literal percent sign.
//
// Emote strings typed by players use {token} to refer to other objects;
// ConvertEmote turns those into numbered directives first.
package socials

import (
	"fmt"
	"sort"
	"strings"
)

// Object is anything that can take part in a social. The engine never looks
// inside objects; it hands them to resolvers and compares them with ==, so
// objects should be pointers.
type Object any

// Resolver produces the text for one suffix. this is shown to obj itself and
// other to everyone else. suffix is the name exactly as it appeared in the
// template.
type Resolver func(obj Object, suffix string) (this, other string)

// Suffix describes one registered resolver and every name it answers to.
type Suffix struct {
	Resolver Resolver
	Names    []string // sorted
}

type suffixEntry struct {
	fn    Resolver
	names []string
}

// Factory holds the registered suffixes and the defaults used when a
// directive omits its index or suffix.
//
// Register everything before the first call to GetStrings. A fully
// populated Factory is safe for concurrent use by readers; registration is
// not synchronized.
type Factory struct {
	// DefaultIndex is the 0-based perspective used by a directive with no digits.
	DefaultIndex int
	// DefaultSuffix is used by a directive with no letters.
	DefaultSuffix string

	// Case filters applied to resolved text according to how the suffix name
	// is written: "N" (upper), "Name" (title) or "n" (lower). A nil filter
	// leaves the text alone.
	UpperCaseFilter Filter
	TitleCaseFilter Filter
	LowerCaseFilter Filter

	suffixes map[string]*suffixEntry
	entries  []*suffixEntry // registration order
}

// New creates an empty Factory with the usual defaults.
func New() *Factory {
	return &Factory{
		DefaultIndex:    0,
		DefaultSuffix:   "n",
		UpperCaseFilter: Normal,
		suffixes:        make(map[string]*suffixEntry),
	}
}

// Register makes fn available under every one of names. Either every name is
// added or, on error, none is.
func (f *Factory) Register(fn Resolver, names ...string) error {
	if len(names) == 0 {
		return &NoNamesError{}
	}
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if _, ok := f.suffixes[name]; ok || seen[name] {
			return &DuplicateNameError{Name: name}
		}
		seen[name] = true
	}

	if f.suffixes == nil {
		f.suffixes = make(map[string]*suffixEntry)
	}
	entry := &suffixEntry{fn: fn, names: append([]string(nil), names...)}
	for _, name := range names {
		f.suffixes[name] = entry
	}
	f.entries = append(f.entries, entry)
	return nil
}

// MustRegister is like Register but panics on error. Meant for set-up code.
func (f *Factory) MustRegister(fn Resolver, names ...string) {
	if err := f.Register(fn, names...); err != nil {
		panic(fmt.Sprintf("socials: %v", err))
	}
}

// Lookup finds the resolver for name, ignoring case.
func (f *Factory) Lookup(name string) (Resolver, error) {
	entry, ok := f.suffixes[strings.ToLower(name)]
	if !ok {
		return nil, &NoSuffixError{Suffix: name, Valid: f.Names()}
	}
	return entry.fn, nil
}

// Names returns every registered suffix name, sorted.
func (f *Factory) Names() []string {
	names := make([]string, 0, len(f.suffixes))
	for name := range f.suffixes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Suffixes lists the registered resolvers in registration order.
func (f *Factory) Suffixes() []Suffix {
	out := make([]Suffix, 0, len(f.entries))
	for _, entry := range f.entries {
		names := append([]string(nil), entry.names...)
		sort.Strings(names)
		out = append(out, Suffix{Resolver: entry.fn, Names: names})
	}
	return out
}
