package schema

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

// Check is a constraint on an already type-checked value. Numbers arrive as
// float64, lists as []any.
type Check struct {
	ok      func(v any) bool
	message string
}

// Msg overrides the field message for this check only.
func (c Check) Msg(message string) Check {
	c.message = message
	return c
}

func Min(n float64) Check {
	return Check{ok: func(v any) bool { f, _ := v.(float64); return f >= n }}
}

func Greater(n float64) Check {
	return Check{ok: func(v any) bool { f, _ := v.(float64); return f > n }}
}

func Between(lo, hi float64) Check {
	return Check{ok: func(v any) bool { f, _ := v.(float64); return f >= lo && f <= hi }}
}

func OneOf(values ...string) Check {
	return Check{ok: func(v any) bool { s, _ := v.(string); return slices.Contains(values, s) }}
}

// MaxLen counts characters, not bytes.
func MaxLen(n int) Check {
	return Check{ok: func(v any) bool { s, _ := v.(string); return utf8.RuneCountInString(s) <= n }}
}

func Matches(re *regexp.Regexp) Check {
	return Check{ok: func(v any) bool { s, _ := v.(string); return re.MatchString(s) }}
}

func NonEmpty() Check {
	return Check{ok: func(v any) bool { l, _ := v.([]any); return len(l) > 0 }}
}

// oneOfMessage renders "<field> must be one of: a, b, c".
func oneOfMessage(field string, values []string) string {
	return fmt.Sprintf("%s must be one of: %s", field, strings.Join(values, ", "))
}
