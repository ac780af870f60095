package format

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/goliatone/go-charsheet/pkg/schema"
)

var indexPattern = regexp.MustCompile(`\[\d+\]`)

// Format renders a single record value addressed by its field path (for
// example "spells.list[2].description") into SafeText. Strings are trimmed and
// escaped; numbers and booleans bypass escaping. Integers outside the range
// declared by the schema are clamped and reported, never rejected.
func Format(path string, value any, syntax Syntax) (SafeText, []Warning) {
	spec, _ := schema.Lookup(indexPattern.ReplaceAllString(path, ""))

	switch v := value.(type) {
	case nil:
		return "", nil
	case SafeText:
		return v, nil
	case string:
		return syntax.Escape(strings.TrimSpace(v)), nil
	case []string:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				parts = append(parts, trimmed)
			}
		}
		return syntax.Escape(strings.Join(parts, ", ")), nil
	case bool:
		if v {
			return "yes", nil
		}
		return "no", nil
	case int:
		n, warning := clampToSpec(path, v, spec)
		if warning != nil {
			return Number(n), []Warning{*warning}
		}
		return Number(n), nil
	case schema.Source:
		return syntax.Escape(string(v)), nil
	default:
		return syntax.Escape(strings.TrimSpace(fmt.Sprint(v))), nil
	}
}

// Truncate shortens text to at most maxRunes runes, cutting on a rune
// boundary. maxRunes <= 0 disables truncation.
func Truncate(text string, maxRunes int) (string, bool) {
	if maxRunes <= 0 || utf8.RuneCountInString(text) <= maxRunes {
		return text, false
	}
	runes := []rune(text)
	return strings.TrimRightFunc(string(runes[:maxRunes]), unicode.IsSpace), true
}

// FormatLimited formats a free-text value and, when it exceeds maxRunes,
// shortens it, appends the syntax's ellipsis marker and reports an overflow
// warning.
func FormatLimited(path, text string, maxRunes int, syntax Syntax) (SafeText, []Warning) {
	text = strings.TrimSpace(text)
	short, cut := Truncate(text, maxRunes)
	if !cut {
		return syntax.Escape(text), nil
	}
	return syntax.Escape(short) + syntax.Ellipsis(), []Warning{{
		Kind:    WarningOverflow,
		Path:    path,
		Message: fmt.Sprintf("text shortened to %d characters", maxRunes),
	}}
}

// Number renders an integer; digits and the minus sign need no escaping.
func Number(n int) SafeText {
	return SafeText(strconv.Itoa(n))
}

// Signed renders a bonus with an explicit sign, e.g. "+3", "+0", "-1".
func Signed(n int) SafeText {
	if n >= 0 {
		return SafeText("+" + strconv.Itoa(n))
	}
	return SafeText(strconv.Itoa(n))
}

func clampToSpec(path string, n int, spec schema.FieldSpec) (int, *Warning) {
	lo, hi := n, n
	if spec.Min != nil {
		lo = *spec.Min
	}
	if spec.Max != nil {
		hi = *spec.Max
	}
	if lo > n || hi < n {
		clamped := n
		if clamped < lo {
			clamped = lo
		}
		if clamped > hi {
			clamped = hi
		}
		return clamped, &Warning{
			Kind:    WarningDerivation,
			Path:    path,
			Message: fmt.Sprintf("value %d clamped to %d", n, clamped),
		}
	}
	return n, nil
}
