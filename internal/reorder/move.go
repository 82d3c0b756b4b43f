// Package reorder implements positional moves over resume lists and the section order,
// plus the two-phase drag gesture that drives them.
package reorder

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/resume"
)

// IndexError reports a move whose source or target lies outside the list.
type IndexError struct {
	Index  int
	Length int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range for length %d", e.Index, e.Length)
}

// Move removes the element at from and reinserts it at to, shifting the elements
// in between. It returns a new slice; the input is not modified.
func Move[T any](list []T, from, to int) ([]T, error) {
	if from < 0 || from >= len(list) {
		return list, &IndexError{Index: from, Length: len(list)}
	}
	if to < 0 || to >= len(list) {
		return list, &IndexError{Index: to, Length: len(list)}
	}

	out := make([]T, len(list))
	copy(out, list)
	if from == to {
		return out, nil
	}

	moved := out[from]
	if from < to {
		copy(out[from:to], out[from+1:to+1])
	} else {
		copy(out[to+1:from+1], out[to:from])
	}
	out[to] = moved
	return out, nil
}

// MoveItem moves one item within a list section of doc.
func MoveItem(doc resume.Document, section resume.SectionKey, from, to int) (resume.Document, error) {
	if !section.IsList() {
		return doc, &resume.SectionError{Section: string(section), Message: "not a list section"}
	}
	if from == to && from >= 0 && from < doc.ListLen(section) {
		return doc, nil
	}

	out := doc.Clone()
	var err error
	switch section {
	case resume.SectionExperience:
		out.Experience, err = Move(out.Experience, from, to)
	case resume.SectionEducation:
		out.Education, err = Move(out.Education, from, to)
	case resume.SectionProjects:
		out.Projects, err = Move(out.Projects, from, to)
	case resume.SectionSkills:
		out.Skills, err = Move(out.Skills, from, to)
	}
	if err != nil {
		return doc, err
	}
	return out, nil
}

// MoveSection moves one key within doc's section order. Because it only relocates
// existing keys, the result is always a permutation of the section keys.
func MoveSection(doc resume.Document, from, to int) (resume.Document, error) {
	order, err := Move(doc.SectionOrder, from, to)
	if err != nil {
		return doc, err
	}
	if from == to {
		return doc, nil
	}
	out := doc.Clone()
	out.SectionOrder = order
	return out, nil
}
