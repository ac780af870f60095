package assemble

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/goliatone/go-charsheet/pkg/profile"
)

const (
	plainAccent      = "000000"
	defaultParchment = "F5ECD7"
)

// ErrInvalidColour reports a colour that is not six hex digits.
var ErrInvalidColour = errors.New("assemble: colour must be six hex digits")

var hexColour = regexp.MustCompile(`^[0-9A-F]{6}$`)

type palette struct {
	accent string
	paper  string
}

func (a *Assembler) palette(p profile.Profile) (palette, error) {
	themed := p.Theme.Name != "" || p.Theme.Accent != ""
	if !themed {
		return palette{accent: plainAccent}, nil
	}

	accent := p.Theme.Accent
	paper := ""
	if p.Theme.Parchment {
		paper = defaultParchment
	}

	if a.themes != nil && p.Theme.Name != "" {
		tokens, err := a.themeTokens(p.Theme.Name)
		if err != nil {
			return palette{}, err
		}
		if value := tokens["accent"]; value != "" {
			accent = value
		}
		if value := tokens["parchment"]; value != "" && p.Theme.Parchment {
			paper = value
		}
	}
	if a.accent != "" {
		accent = a.accent
	}
	if accent == "" {
		accent = plainAccent
	}

	var err error
	out := palette{}
	if out.accent, err = colour(accent); err != nil {
		return palette{}, err
	}
	if paper != "" {
		if out.paper, err = colour(paper); err != nil {
			return palette{}, err
		}
	}
	return out, nil
}

// themeTokens merges the manifest tokens with the selected variant's tokens.
func (a *Assembler) themeTokens(name string) (map[string]string, error) {
	selection, err := a.themes.Select(name, "")
	if err != nil {
		return nil, fmt.Errorf("assemble: theme %q: %w", name, err)
	}
	tokens := map[string]string{}
	if selection == nil || selection.Manifest == nil {
		return tokens, nil
	}
	for key, value := range selection.Manifest.Tokens {
		tokens[key] = value
	}
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		for key, value := range variant.Tokens {
			tokens[key] = value
		}
	}
	return tokens, nil
}

func colour(value string) (string, error) {
	hex := strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(value), "#"))
	if !hexColour.MatchString(hex) {
		return "", fmt.Errorf("%w: %q", ErrInvalidColour, value)
	}
	return hex, nil
}
