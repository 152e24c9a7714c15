// Package casemap rewrites object keys between the backend's snake_case wire
// format and the camelCase form the rest of the module works with.
package casemap

import "strings"

// CamelString converts a snake_case identifier to camelCase. Only an
// underscore followed by a lowercase letter is folded; other underscores are
// kept as-is so that unusual keys convert deterministically.
func CamelString(s string) string {
	if !strings.ContainsRune(s, '_') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '_' && i+1 < len(s) && s[i+1] >= 'a' && s[i+1] <= 'z' {
			b.WriteByte(s[i+1] - 'a' + 'A')
			i++
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// SnakeString converts a camelCase identifier to snake_case. Every uppercase
// letter becomes an underscore plus its lowercase form, so consecutive
// capitals expand one by one and round-trip through CamelString.
func SnakeString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			b.WriteByte('_')
			b.WriteByte(s[i] - 'A' + 'a')
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// ToCamel returns v with every map key renamed to camelCase at every nesting
// depth, recursing into slices element-wise. Primitives and nil pass through
// unchanged. Input is expected to be a decoded JSON value.
func ToCamel(v any) any {
	return mapKeys(v, CamelString)
}

// ToSnake is the inverse of ToCamel for the wire direction.
func ToSnake(v any) any {
	return mapKeys(v, SnakeString)
}

func mapKeys(v any, rename func(string) string) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[rename(k)] = mapKeys(inner, rename)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = mapKeys(inner, rename)
		}
		return out
	default:
		return v
	}
}
