package pattern

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/httpgraph/pkg/errors"
)

// Splat is the capture key of a "*" wildcard.
const Splat = "splat"

const (
	segmentGroup  = `([^/?#]+)`
	wildcardGroup = `(.*?)`
)

// Compile turns a path template into an anchored expression and the ordered
// list of its capture keys. ":name" captures one path segment, "*" captures
// anything (lazily) under the key Splat.
func Compile(template string) (*regexp.Regexp, []string, error) {
	if template == "" {
		return nil, nil, errors.New(errors.ErrInvalidInput, "empty route template")
	}

	var (
		b    strings.Builder
		keys []string
	)
	b.WriteByte('^')
	for i := 0; i < len(template); {
		switch c := template[i]; {
		case c == ':':
			j := i + 1
			for j < len(template) && isKeyByte(template[j]) {
				j++
			}
			if j == i+1 {
				return nil, nil, errors.Newf(errors.ErrInvalidInput,
					"route template %q: placeholder without a name at offset %d", template, i).
					WithDetail("template", template)
			}
			keys = append(keys, template[i+1:j])
			b.WriteString(segmentGroup)
			i = j
		case c == '*':
			keys = append(keys, Splat)
			b.WriteString(wildcardGroup)
			i++
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
			i++
		}
	}
	b.WriteByte('$')

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, nil, errors.Wrapf(err, errors.ErrInvalidInput, "route template %q", template)
	}
	return re, keys, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(template string) (*regexp.Regexp, []string) {
	re, keys, err := Compile(template)
	if err != nil {
		panic(err)
	}
	return re, keys
}

func isKeyByte(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
