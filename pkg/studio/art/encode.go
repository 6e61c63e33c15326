package art

import "strings"

const upperhex = "0123456789ABCDEF"

// EncodeUriComponent escapes s the way browsers' encodeURIComponent does:
// every byte of the UTF-8 encoding is percent-encoded except
// A-Z a-z 0-9 - _ . ! ~ * ' ( ).
//
// url.PathEscape leaves characters such as '&', '+', '=' and '@' intact,
// which would change the meaning of the prompt segment.
func EncodeUriComponent(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreservedComponentByte(c) {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(upperhex[c>>4])
		sb.WriteByte(upperhex[c&15])
	}

	return sb.String()
}

func isUnreservedComponentByte(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}

	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}

	return false
}
