package typeracer

import "fmt"

// StructureError reports markup that does not have the shape of a texts table row.
type StructureError struct {
	// Offset is the byte offset of the offending row in the markup.
	Offset int
	Reason string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("malformed row at offset %d: %s", e.Offset, e.Reason)
}

// CoercionError reports a captured cell that cannot be converted to its column type.
type CoercionError struct {
	Column string
	Raw    string
	Err    error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Column, e.Raw, e.Err)
}

func (e *CoercionError) Unwrap() error {
	return e.Err
}
