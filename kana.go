package zengin

import (
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// halfWidth converts full-width katakana (and full-width ASCII) to half-width.
// Voiced kana such as ズ have no single half-width rune, so the string is
// first decomposed (ズ -> ス + U+3099) and the combining mark is narrowed to
// ﾞ, giving ｽﾞ.
func halfWidth(s string) string {
	if s == "" {
		return ""
	}
	// transform.Chain is stateful; build one per call.
	out, _, err := transform.String(transform.Chain(norm.NFD, width.Narrow), s)
	if err != nil {
		return s
	}
	return out
}
