package section

// Template view models. Every value is pre-escaped markup held as a plain
// string so templates can emit it verbatim.

type sectionView struct {
	Group   string
	Title   string
	Rows    []rowView
	Entries []entryView
	Omitted string
}

type rowView struct {
	Field string
	Label string
	Value string
}

type entryView struct {
	Index   int
	Name    string
	Details []rowView
	Values  map[string]string
}

func (v sectionView) context() map[string]any {
	rows := make([]any, 0, len(v.Rows))
	for _, row := range v.Rows {
		rows = append(rows, row.context())
	}
	entries := make([]any, 0, len(v.Entries))
	for _, entry := range v.Entries {
		details := make([]any, 0, len(entry.Details))
		for _, d := range entry.Details {
			details = append(details, d.context())
		}
		values := make(map[string]any, len(entry.Values))
		for key, value := range entry.Values {
			values[key] = value
		}
		entries = append(entries, map[string]any{
			"name":    entry.Name,
			"details": details,
			"values":  values,
		})
	}
	return map[string]any{
		"group":   v.Group,
		"title":   v.Title,
		"rows":    rows,
		"entries": entries,
		"omitted": v.Omitted,
	}
}

func (r rowView) context() map[string]any {
	return map[string]any{
		"field": r.Field,
		"label": r.Label,
		"value": r.Value,
	}
}
