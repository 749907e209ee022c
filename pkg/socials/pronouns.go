package socials

import "fmt"

// Gender selects the pronouns used for an object.
type Gender int

const (
	Neuter Gender = iota // it
	Female               // she
	Male                 // he
	Plural               // they
)

func (g Gender) String() string {
	switch g {
	case Neuter:
		return "neuter"
	case Female:
		return "female"
	case Male:
		return "male"
	case Plural:
		return "plural"
	default:
		return "unknown"
	}
}

// ParseGender reads a TinyMUSH-style SEX value. Only the first letter
// matters: M is male, F or W female, P plural and anything else neuter.
func ParseGender(sex string) Gender {
	if len(sex) == 0 {
		return Neuter
	}
	switch sex[0] {
	case 'M', 'm':
		return Male
	case 'F', 'f', 'W', 'w':
		return Female
	case 'P', 'p':
		return Plural
	}
	return Neuter
}

var (
	subjective = [...]string{Neuter: "it", Female: "she", Male: "he", Plural: "they"}
	objective  = [...]string{Neuter: "it", Female: "her", Male: "him", Plural: "them"}
	possessive = [...]string{Neuter: "its", Female: "her", Male: "his", Plural: "their"}
	absolute   = [...]string{Neuter: "its", Female: "hers", Male: "his", Plural: "theirs"}
	reflexive  = [...]string{Neuter: "itself", Female: "herself", Male: "himself", Plural: "themselves"}
)

// Named is implemented by objects that have a display name.
type Named interface {
	Name() string
}

// Gendered is implemented by objects that have pronouns.
type Gendered interface {
	Gender() Gender
}

// NameOf returns obj's display name, falling back to fmt.Sprint.
func NameOf(obj Object) string {
	if n, ok := obj.(Named); ok {
		return n.Name()
	}
	return fmt.Sprint(obj)
}

// GenderOf returns obj's gender, or Neuter if it has none.
func GenderOf(obj Object) Gender {
	if g, ok := obj.(Gendered); ok {
		if gender := g.Gender(); gender >= Neuter && gender <= Plural {
			return gender
		}
	}
	return Neuter
}

// verb returns a resolver for verb agreement. Plural objects take the
// same form as "you".
func verb(this, other string) Resolver {
	return func(obj Object, _ string) (string, string) {
		if GenderOf(obj) == Plural {
			return this, this
		}
		return this, other
	}
}

func pronoun(this string, table *[4]string) Resolver {
	return func(obj Object, _ string) (string, string) {
		return this, table[GenderOf(obj)]
	}
}

// NewPopulated returns a Factory with the common English suffixes already
// registered:
//
//	n name                     you / name
//	s                          "" / s          (smile%s)
//	e es                       "" / es         (punch%es)
//	y ies                      y / ies         (cr%y)
//	are is, have has, were was verb agreement; plural objects take the
//	                           first form throughout
//	sub subj he she they       you / he
//	o obj him them             you / him
//	p poss his their           your / his
//	a aposs hers theirs        yours / hers
//	r reflexive yourself       yourself / himself
func NewPopulated() *Factory {
	f := New()
	f.MustRegister(func(obj Object, _ string) (string, string) {
		return "you", NameOf(obj)
	}, "n", "name")
	f.MustRegister(verb("", "s"), "s")
	f.MustRegister(verb("", "es"), "e", "es")
	f.MustRegister(verb("y", "ies"), "y", "ies")
	f.MustRegister(verb("are", "is"), "are", "is")
	f.MustRegister(verb("have", "has"), "have", "has")
	f.MustRegister(verb("were", "was"), "were", "was")
	f.MustRegister(pronoun("you", &subjective), "sub", "subj", "he", "she", "they")
	f.MustRegister(pronoun("you", &objective), "o", "obj", "him", "them")
	f.MustRegister(pronoun("your", &possessive), "p", "poss", "his", "their")
	f.MustRegister(pronoun("yours", &absolute), "a", "aposs", "hers", "theirs")
	f.MustRegister(pronoun("yourself", &reflexive), "r", "reflexive", "yourself")
	return f
}
