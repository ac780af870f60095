// Package charsheet renders a character record into LaTeX character sheets.
//
// One validated record feeds two documents: the complete "long" sheet and a
// one-page "short" sheet. Both come from the same schema, field formatter and
// section renderers; a variant profile decides which groups and fields appear,
// in which order, and what happens when the estimated size exceeds the page
// budget.
//
// Quick start:
//
//	doc, err := charsheet.Render(ctx, yamlBytes, charsheet.Short)
//	if err != nil {
//		var verr *charsheet.ValidationError
//		if errors.As(err, &verr) { ... }
//	}
//	os.WriteFile("sheet.tex", []byte(doc.Markup), 0o644)
package charsheet
