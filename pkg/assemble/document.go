package assemble

import (
	"github.com/goliatone/go-charsheet/pkg/format"
	"github.com/goliatone/go-charsheet/pkg/section"
)

// State tracks how far a render request progressed.
type State string

const (
	StateReceived  State = "received"
	StateValidated State = "validated"
	StateFormatted State = "formatted"
	StateRendered  State = "rendered"
	StateAssembled State = "assembled"
	StateDone      State = "done"
	StateRejected  State = "rejected"
)

// Document is the assembled output for one variant.
type Document struct {
	Variant string
	// Markup is the complete, self-contained LaTeX source.
	Markup string
	// Pages is the estimated page count.
	Pages int
	// Lines is the estimated line count the page estimate derives from.
	Lines int
	// Fragments holds the rendered, non-empty groups in document order.
	Fragments []section.Fragment
	Warnings  []format.Warning
	State     State
}

// Group returns the fragment rendered for id.
func (d Document) Group(id string) (section.Fragment, bool) {
	for _, fragment := range d.Fragments {
		if string(fragment.Group) == id {
			return fragment, true
		}
	}
	return section.Fragment{}, false
}
