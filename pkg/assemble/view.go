package assemble

import "strconv"

// documentView feeds the outer document template. Title, Name and Body are
// already escaped markup.
type documentView struct {
	Options string
	Macros  string
	Accent  string
	Paper   string
	Title   string
	Name    string
	Columns int
	Body    string
}

func (v documentView) context() map[string]any {
	return map[string]any{
		"options":   v.Options,
		"macros":    v.Macros,
		"accent":    v.Accent,
		"paper":     v.Paper,
		"title":     v.Title,
		"name":      v.Name,
		"multicols": v.Columns > 1,
		"columns":   strconv.Itoa(v.Columns),
		"body":      v.Body,
	}
}
