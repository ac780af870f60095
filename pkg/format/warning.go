package format

// WarningKind classifies non-fatal findings returned alongside a document.
type WarningKind string

const (
	// WarningDerivation flags clamped inputs and ignored caller-supplied
	// derived values.
	WarningDerivation WarningKind = "derivation"
	// WarningOverflow flags content cut to honour a profile limit or page
	// budget, or a soft budget that was exceeded.
	WarningOverflow WarningKind = "overflow"
)

// Warning is a non-fatal finding tied to a field path.
type Warning struct {
	Kind    WarningKind `json:"kind" yaml:"kind"`
	Path    string      `json:"path,omitempty" yaml:"path,omitempty"`
	Message string      `json:"message" yaml:"message"`
}

func (w Warning) String() string {
	if w.Path == "" {
		return string(w.Kind) + ": " + w.Message
	}
	return string(w.Kind) + ": " + w.Path + ": " + w.Message
}
