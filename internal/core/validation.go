package core

// validation.go checks parsed questions against the data-model rules
// before they are accepted into a result.

import (
	"errors"
	"fmt"
	"slices"
)

// UnitError reports why one row or question block was skipped.
type UnitError struct {
	Unit     string // "row" or "question block"
	Position int    // spreadsheet row number or 1-based block index
	Err      error
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("%s %d: %v", e.Unit, e.Position, e.Err)
}

func (e *UnitError) Unwrap() error {
	return e.Err
}

// Validate checks the structural rules every ParsedQuestion must satisfy.
func (q ParsedQuestion) Validate() error {
	if q.Content == "" {
		return errors.New("question text is empty")
	}
	if q.Points <= 0 {
		return fmt.Errorf("points must be positive, got %d", q.Points)
	}
	switch q.Type {
	case TrueFalse:
		if !slices.Equal(q.Options, TrueFalseOptions()) {
			return fmt.Errorf("true/false options must be %v", TrueFalseOptions())
		}
	case MultipleChoice:
		if len(q.Options) > MaxOptions {
			return fmt.Errorf("at most %d options allowed, got %d", MaxOptions, len(q.Options))
		}
	case ShortAnswer:
		if len(q.Options) != 0 {
			return fmt.Errorf("short answer questions take no options, got %d", len(q.Options))
		}
	default:
		return fmt.Errorf("unknown question type %v", q.Type)
	}
	return nil
}
