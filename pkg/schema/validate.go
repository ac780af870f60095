package schema

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Validate checks a decoded raw record against the schema and binds it into a
// CharacterRecord. It is pure: the raw map is not modified. When any violation
// is found the returned error is a *ValidationError listing all of them,
// sorted by path, and the record is the zero value.
func Validate(raw map[string]any) (CharacterRecord, error) {
	if raw == nil {
		return CharacterRecord{}, &ValidationError{Issues: []Issue{{Reason: "record is empty"}}}
	}

	v := &validator{supplied: make(map[string]int)}
	v.object("", raw, definition)
	if len(v.issues) > 0 {
		sortIssues(v.issues)
		return CharacterRecord{}, &ValidationError{Issues: v.issues}
	}

	record, err := bind(raw)
	if err != nil {
		return CharacterRecord{}, err
	}
	if len(v.supplied) > 0 {
		record.Supplied = v.supplied
	}
	return record, nil
}

type validator struct {
	issues   []Issue
	supplied map[string]int
}

func (v *validator) add(path, reason string) {
	v.issues = append(v.issues, Issue{Path: path, Reason: reason})
}

func (v *validator) object(path string, obj map[string]any, spec FieldSpec) {
	known := make(map[string]struct{}, len(spec.Fields))
	for _, field := range spec.Fields {
		known[field.Name] = struct{}{}
		fieldPath := joinPath(path, field.Name)

		value, present := obj[field.Name]
		if !present || value == nil {
			if field.Required {
				v.add(fieldPath, "is required")
			}
			continue
		}
		v.value(fieldPath, value, field)
	}

	for key := range obj {
		if _, ok := known[key]; !ok {
			v.add(joinPath(path, key), "unknown field")
		}
	}

	if spec.Check != nil {
		v.issues = append(v.issues, spec.Check(path, obj)...)
	}
}

func (v *validator) value(path string, value any, field FieldSpec) {
	switch field.Kind {
	case KindString:
		s, ok := value.(string)
		if !ok {
			v.add(path, "must be a string")
			return
		}
		if field.Required && strings.TrimSpace(s) == "" {
			v.add(path, "must not be blank")
			return
		}
		if len(field.Enum) > 0 && s != "" && !containsString(field.Enum, s) {
			v.add(path, "must be one of: "+strings.Join(field.Enum, ", "))
		}
	case KindInteger:
		n, ok := intValue(value)
		if !ok {
			v.add(path, "must be an integer")
			return
		}
		switch {
		case field.Min != nil && field.Max != nil && (n < *field.Min || n > *field.Max):
			v.add(path, fmt.Sprintf("must be between %d and %d", *field.Min, *field.Max))
		case field.Min != nil && n < *field.Min:
			v.add(path, fmt.Sprintf("must be at least %d", *field.Min))
		case field.Max != nil && n > *field.Max:
			v.add(path, fmt.Sprintf("must be at most %d", *field.Max))
		}
		if field.Derived {
			v.supplied[path] = n
		}
	case KindBoolean:
		if _, ok := value.(bool); !ok {
			v.add(path, "must be a boolean")
		}
	case KindStrings:
		items, ok := value.([]any)
		if !ok {
			v.add(path, "must be a list of strings")
			return
		}
		for i, item := range items {
			if _, ok := item.(string); !ok {
				v.add(indexPath(path, i), "must be a string")
			}
		}
	case KindObject:
		obj, ok := asObject(value)
		if !ok {
			v.add(path, "must be an object")
			return
		}
		v.object(path, obj, field)
	case KindList:
		items, ok := value.([]any)
		if !ok {
			v.add(path, "must be a list")
			return
		}
		if field.Required && len(items) == 0 {
			v.add(path, "must not be empty")
			return
		}
		for i, item := range items {
			obj, ok := asObject(item)
			if !ok {
				v.add(indexPath(path, i), "must be an object")
				continue
			}
			v.object(indexPath(path, i), obj, field)
		}
	default:
		v.add(path, fmt.Sprintf("unsupported field kind %q", field.Kind))
	}
}

func bind(raw map[string]any) (CharacterRecord, error) {
	data, err := yaml.Marshal(raw)
	if err != nil {
		return CharacterRecord{}, fmt.Errorf("schema: encode record: %w", err)
	}
	var record CharacterRecord
	if err := yaml.Unmarshal(data, &record); err != nil {
		return CharacterRecord{}, fmt.Errorf("schema: bind record: %w", err)
	}
	return record, nil
}

func asObject(value any) (map[string]any, bool) {
	switch obj := value.(type) {
	case map[string]any:
		return obj, true
	case map[any]any:
		out := make(map[string]any, len(obj))
		for key, item := range obj {
			name, ok := key.(string)
			if !ok {
				return nil, false
			}
			out[name] = item
		}
		return out, true
	default:
		return nil, false
	}
}

func intValue(value any) (int, bool) {
	switch n := value.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, false
		}
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int(n), true
	case float64:
		if math.IsInf(n, 0) || math.IsNaN(n) || n != math.Trunc(n) {
			return 0, false
		}
		// float64(math.MaxInt64) rounds up to 2^63, which is already out of range.
		if n >= math.MaxInt64 || n < math.MinInt64 {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}

func joinPath(parent, child string) string {
	if parent == "" {
		return child
	}
	if child == "" {
		return parent
	}
	return parent + "." + child
}

func indexPath(path string, index int) string {
	return path + "[" + strconv.Itoa(index) + "]"
}
