package format

import "strings"

// SafeText is text that can be embedded verbatim in the target markup.
type SafeText string

func (s SafeText) String() string {
	return string(s)
}

// Syntax escapes free text for one markup language. Escape must be lossless:
// Unescape(Escape(s)) == s for every s.
type Syntax interface {
	Name() string
	Escape(text string) SafeText
	Unescape(text SafeText) string
	// Ellipsis is the visible marker appended to shortened text.
	Ellipsis() SafeText
}

// LaTeX is the Syntax used by the built-in sheet templates.
var LaTeX Syntax = latexSyntax{}

var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`$`, `\$`,
	`&`, `\&`,
	`#`, `\#`,
	`^`, `\textasciicircum{}`,
	`_`, `\_`,
	`%`, `\%`,
	`~`, `\textasciitilde{}`,
	"\n", `\newline{}`,
)

var latexUnescaper = strings.NewReplacer(
	`\textbackslash{}`, `\`,
	`\textasciicircum{}`, `^`,
	`\textasciitilde{}`, `~`,
	`\newline{}`, "\n",
	`\{`, `{`,
	`\}`, `}`,
	`\$`, `$`,
	`\&`, `&`,
	`\#`, `#`,
	`\_`, `_`,
	`\%`, `%`,
)

type latexSyntax struct{}

func (latexSyntax) Name() string {
	return "latex"
}

func (latexSyntax) Escape(text string) SafeText {
	return SafeText(latexEscaper.Replace(text))
}

func (latexSyntax) Unescape(text SafeText) string {
	return latexUnescaper.Replace(string(text))
}

func (latexSyntax) Ellipsis() SafeText {
	return `\ldots{}`
}
