package section

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// label turns a camelCase field name into a title-cased label:
// "passivePerception" becomes "Passive Perception".
func label(field string) string {
	var words strings.Builder
	for i, r := range field {
		if i > 0 && unicode.IsUpper(r) {
			words.WriteByte(' ')
		}
		words.WriteRune(r)
	}
	return cases.Title(language.English).String(words.String())
}

// ordinal renders spell and slot levels: 0 is a cantrip.
func ordinal(level int) string {
	if level == 0 {
		return "cantrip"
	}
	suffix := "th"
	switch level % 10 {
	case 1:
		suffix = "st"
	case 2:
		suffix = "nd"
	case 3:
		suffix = "rd"
	}
	if level%100 >= 11 && level%100 <= 13 {
		suffix = "th"
	}
	return strconv.Itoa(level) + suffix
}

func feet(distance int) any {
	if distance == 0 {
		return nil
	}
	return strconv.Itoa(distance) + " ft"
}

func sourced(name string, source string) string {
	if source == "" {
		return name
	}
	return name + " (" + source + ")"
}
