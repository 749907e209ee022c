package socials

import (
	"strconv"
	"strings"
)

// PercentKey is the named value that %% renders as. It defaults to "%".
const PercentKey = "percent"

// segment is a piece of a parsed template: literal text, or a slot filled
// with the resolved text of the slot'th directive.
type segment struct {
	text string
	slot int
}

const literal = -1

// GetStrings expands every suffix directive in template and returns one
// string per perspective followed by the string for everyone else, so the
// result always has len(perspectives)+1 entries.
//
// values supplies {key} substitutions for the template text. A reference to
// a key that isn't in values is left as written. The "percent" key controls
// what %% turns into.
func (f *Factory) GetStrings(template string, perspectives []Object, values map[string]string) ([]string, error) {
	percent := "%"
	if v, ok := values[PercentKey]; ok {
		percent = v
	}

	// replacements[len(perspectives)] belongs to the bystanders.
	replacements := make([][]string, len(perspectives)+1)
	bystander := len(perspectives)

	var (
		segments []segment
		lit      strings.Builder
		slots    int
	)
	flush := func() {
		if lit.Len() > 0 {
			segments = append(segments, segment{text: lit.String(), slot: literal})
			lit.Reset()
		}
	}

	for i := 0; i < len(template); {
		switch template[i] {
		case '%':
			if i+1 < len(template) && template[i+1] == '%' {
				lit.WriteString(percent)
				i += 2
				continue
			}
			d, digits, letters := scanDirective(template, i+1)
			i = d

			this, other, obj, err := f.resolve(digits, letters, perspectives)
			if err != nil {
				return nil, err
			}
			for pos, p := range perspectives {
				if p == obj {
					replacements[pos] = append(replacements[pos], this)
				} else {
					replacements[pos] = append(replacements[pos], other)
				}
			}
			replacements[bystander] = append(replacements[bystander], other)

			flush()
			segments = append(segments, segment{slot: slots})
			slots++

		case '{':
			end := strings.IndexByte(template[i+1:], '}')
			if end >= 0 {
				if v, ok := values[template[i+1:i+1+end]]; ok {
					lit.WriteString(v)
					i += end + 2
					continue
				}
			}
			lit.WriteByte('{')
			i++

		default:
			lit.WriteByte(template[i])
			i++
		}
	}
	flush()

	strs := make([]string, 0, len(replacements))
	for _, args := range replacements {
		strs = append(strs, render(segments, args))
	}
	return strs, nil
}

// resolve finds the object and suffix a directive refers to and returns the
// filtered texts for it.
func (f *Factory) resolve(digits, letters string, perspectives []Object) (this, other string, obj Object, err error) {
	index := f.DefaultIndex
	if digits != "" {
		// Overlong numbers clamp to MaxInt and fail the bounds check below.
		n, _ := strconv.Atoi(digits)
		index = n - 1
	}
	suffix := letters
	if suffix == "" {
		suffix = f.DefaultSuffix
	}

	if index < 0 || index >= len(perspectives) {
		return "", "", nil, &NoObjectError{Index: index + 1}
	}
	obj = perspectives[index]

	fn, err := f.Lookup(suffix)
	if err != nil {
		return "", "", nil, err
	}
	this, other = fn(obj, suffix)
	if filter := f.filterFor(suffix); filter != nil {
		this = filter(this)
		other = filter(other)
	}
	return this, other, obj, nil
}

// scanDirective reads the digits and letters of a directive starting at pos,
// just past the '%'. It returns the position after the directive.
func scanDirective(s string, pos int) (end int, digits, letters string) {
	start := pos
	for pos < len(s) && s[pos] >= '0' && s[pos] <= '9' {
		pos++
	}
	digits = s[start:pos]
	start = pos
	for pos < len(s) && isASCIILetter(s[pos]) {
		pos++
	}
	letters = s[start:pos]
	return pos, digits, letters
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func render(segments []segment, args []string) string {
	var b strings.Builder
	for _, seg := range segments {
		if seg.slot == literal {
			b.WriteString(seg.text)
		} else {
			b.WriteString(args[seg.slot])
		}
	}
	return b.String()
}
