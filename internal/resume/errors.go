package resume

import "fmt"

// SectionError reports a section name that is unknown or not valid for the operation.
type SectionError struct {
	Section string
	Message string
}

func (e *SectionError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("section %q: %s", e.Section, e.Message)
	}
	return fmt.Sprintf("unknown section %q", e.Section)
}

// FieldError reports a field name that does not exist on the addressed record.
type FieldError struct {
	Section string
	Field   string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("unknown field %q for %s", e.Field, e.Section)
}

// OrderError reports a section order that is not a permutation of the section keys.
type OrderError struct {
	Message string
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("invalid section order: %s", e.Message)
}
