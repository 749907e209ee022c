package socials

import (
	"strconv"
	"strings"
)

// MatchFunc turns the text between braces into an object, or returns nil if
// nothing matches. extra is whatever was passed to ConvertEmote.
type MatchFunc func(token string, extra ...any) Object

// ConvertEmote rewrites an emote such as
//
//	% smiles at {john}.
//
// into
//
//	% smiles at %2.
//
// ready for GetStrings. Each {token} is passed to match; objects not yet in
// perspectives are appended, and the token is replaced by the object's
// 1-based index. The extended perspective list is returned as a new slice;
// the caller's slice is never written to.
func (f *Factory) ConvertEmote(template string, match MatchFunc, perspectives []Object, extra ...any) (string, []Object, error) {
	perspectives = append([]Object(nil), perspectives...)

	var b strings.Builder
	b.Grow(len(template))

	rest := template
	for {
		start := strings.IndexByte(rest, '{')
		if start < 0 {
			break
		}
		end := strings.IndexByte(rest[start+1:], '}')
		if end < 0 {
			break
		}
		end += start + 1

		token := rest[start+1 : end]
		if token == "" {
			// "{}" is not an object reference.
			b.WriteString(rest[:end+1])
			rest = rest[end+1:]
			continue
		}

		obj := match(token, extra...)
		if obj == nil {
			return "", nil, &NoMatchError{Token: token}
		}
		index := indexOf(perspectives, obj)
		if index < 0 {
			perspectives = append(perspectives, obj)
			index = len(perspectives) - 1
		}

		b.WriteString(rest[:start])
		b.WriteByte('%')
		b.WriteString(strconv.Itoa(index + 1))
		rest = rest[end+1:]
	}
	b.WriteString(rest)
	return b.String(), perspectives, nil
}

func indexOf(perspectives []Object, obj Object) int {
	for i, p := range perspectives {
		if p == obj {
			return i
		}
	}
	return -1
}
