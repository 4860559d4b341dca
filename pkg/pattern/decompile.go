package pattern

import (
	"regexp"
	"strings"
)

// Decompile rebuilds the template p was compiled from. It returns p's
// source unchanged when the expression is not anchored, contains a group or
// escape it does not recognise, or when keys do not line up with the groups.
func Decompile(p *regexp.Regexp, keys []string) string {
	if p == nil {
		return ""
	}
	return DecompileString(p.String(), keys)
}

// DecompileString is Decompile on expression source text. Source written as
// "/^...$/" is accepted as well.
func DecompileString(src string, keys []string) string {
	if out, ok := decompile(src, keys); ok {
		return out
	}
	return src
}

// literalEscapes are the escaped bytes that stand for themselves in a
// template: what regexp.QuoteMeta escapes, less "*" (which Compile reads as
// a wildcard), plus "/" for sources written in "/^...$/" form.
const literalEscapes = `\\.+?()|[]{}^$/`

func decompile(src string, keys []string) (string, bool) {
	body := src
	if len(body) >= 2 && body[0] == '/' && body[len(body)-1] == '/' {
		body = body[1 : len(body)-1]
	}
	if len(body) < 2 || body[0] != '^' || body[len(body)-1] != '$' || escaped(body, len(body)-1) {
		return "", false
	}
	body = body[1 : len(body)-1]

	var (
		b    strings.Builder
		next int
	)
	for i := 0; i < len(body); {
		switch c := body[i]; c {
		case '\\':
			if i+1 >= len(body) || !strings.ContainsRune(literalEscapes, rune(body[i+1])) {
				return "", false
			}
			b.WriteByte(body[i+1])
			i += 2
		case '(':
			end := strings.IndexByte(body[i:], ')')
			if end < 0 {
				return "", false
			}
			group := body[i : i+end+1]
			if strings.Contains(group[1:], "(") {
				return "", false
			}
			switch group {
			case wildcardGroup:
				if next >= len(keys) || keys[next] != Splat {
					return "", false
				}
				b.WriteByte('*')
			case segmentGroup:
				if next >= len(keys) {
					return "", false
				}
				b.WriteString(":" + keys[next])
			default:
				return "", false
			}
			next++
			i += end + 1
		case '.', '+', '*', '?', '[', ']', '{', '}', '|', '^', '$', ')':
			return "", false
		default:
			b.WriteByte(c)
			i++
		}
	}
	if next != len(keys) {
		return "", false
	}
	return b.String(), true
}

// escaped reports whether s[i] is preceded by an odd number of backslashes.
func escaped(s string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}
