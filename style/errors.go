package style

import "fmt"

// MissingFieldError is returned when a required style field was absent from
// the decoded wire payload — a per-node translation failure that the batch
// protocol recovers from by skipping the node (spec.md §7).
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("style: missing required field %q", e.Field)
}

// UnknownEnumVariantError is returned when a style enum carries a
// discriminant this engine does not recognize.
type UnknownEnumVariantError struct {
	Enum  string
	Value int
}

func (e *UnknownEnumVariantError) Error() string {
	return fmt.Sprintf("style: unknown %s variant %d", e.Enum, e.Value)
}
