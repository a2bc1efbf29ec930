package field

// Field pairs a numeric state with the labels a view needs to render it.
type Field struct {
	// Label is the human-readable name used in error messages, e.g.
	// "Principal amount".
	Label       string
	Prompt      string
	Placeholder string
	State       State
}

// Edit returns a copy of f with text applied to its state.
func (f Field) Edit(text string) Field {
	f.State = Edit(f.State, text)
	return f
}

// Value returns the last accepted value.
func (f Field) Value() float64 {
	return f.State.Value
}

// Error returns the message to display under the field, or "".
func (f Field) Error() string {
	return Message(f.State, f.Label)
}
