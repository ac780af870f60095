package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Issue is a single validation violation located by dotted field path, e.g.
// "proficiencies.languages[0].source".
type Issue struct {
	Path   string `json:"path" yaml:"path"`
	Reason string `json:"reason" yaml:"reason"`
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Reason
	}
	return i.Path + ": " + i.Reason
}

// ValidationError carries every violation found in a raw record. Rendering
// never starts when Validate returns one.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return "schema: invalid record"
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.String())
	}
	return fmt.Sprintf("schema: invalid record (%d issues): %s", len(e.Issues), strings.Join(parts, "; "))
}

// Has reports whether an issue was raised for path.
func (e *ValidationError) Has(path string) bool {
	if e == nil {
		return false
	}
	for _, issue := range e.Issues {
		if issue.Path == path {
			return true
		}
	}
	return false
}

func sortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Path != issues[j].Path {
			return issues[i].Path < issues[j].Path
		}
		return issues[i].Reason < issues[j].Reason
	})
}
