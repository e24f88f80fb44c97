// Package core provides the business logic for question file imports.
// This package has no UI dependencies and can be used by any frontend.
package core

import (
	"fmt"

	"github.com/vlikcc/izbo-sub001/internal/schema"
)

// DefaultPoints is the score assigned when a source does not provide one.
const DefaultPoints = 10

// MaxOptions is the number of option columns (A..E) a question can carry.
const MaxOptions = 5

// QuestionType is the closed set of question kinds an import can produce.
type QuestionType int

const (
	MultipleChoice QuestionType = iota
	TrueFalse
	ShortAnswer
)

// QuestionTypes returns every QuestionType. Tests iterate it to make sure
// each consumer handles all of them.
func QuestionTypes() []QuestionType {
	return []QuestionType{MultipleChoice, TrueFalse, ShortAnswer}
}

// String returns the wire name of the type.
func (t QuestionType) String() string {
	switch t {
	case MultipleChoice:
		return "MultipleChoice"
	case TrueFalse:
		return "TrueFalse"
	case ShortAnswer:
		return "ShortAnswer"
	default:
		return fmt.Sprintf("QuestionType(%d)", int(t))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t QuestionType) MarshalText() ([]byte, error) {
	switch t {
	case MultipleChoice, TrueFalse, ShortAnswer:
		return []byte(t.String()), nil
	default:
		return nil, fmt.Errorf("unknown question type %d", int(t))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *QuestionType) UnmarshalText(b []byte) error {
	switch string(b) {
	case "MultipleChoice":
		*t = MultipleChoice
	case "TrueFalse":
		*t = TrueFalse
	case "ShortAnswer":
		*t = ShortAnswer
	default:
		return fmt.Errorf("unknown question type %q", string(b))
	}
	return nil
}

// TrueFalseOptions returns a fresh copy of the canonical true/false pair.
func TrueFalseOptions() []string {
	return []string{schema.TrueLabel, schema.FalseLabel}
}

// ParsedQuestion is one question extracted from an imported file.
//
// Options holds exactly TrueFalseOptions() for TrueFalse, 0-5 entries in
// source order for MultipleChoice, and nothing for ShortAnswer.
type ParsedQuestion struct {
	Content       string       `json:"content"`
	Type          QuestionType `json:"type"`
	Options       []string     `json:"options"`
	CorrectAnswer string       `json:"correctAnswer,omitempty"`
	Points        int          `json:"points"`
	Explanation   string       `json:"explanation,omitempty"`
}

// ImportResult is the outcome of parsing one file.
// Success is true iff Questions is non-empty and no fatal error occurred.
// Warnings name rows or blocks that were skipped.
type ImportResult struct {
	Success   bool             `json:"success"`
	Questions []ParsedQuestion `json:"questions"`
	Errors    []string         `json:"errors"`
	Warnings  []string         `json:"warnings"`
}

// newResult returns an empty result with non-nil slices.
func newResult() ImportResult {
	return ImportResult{
		Questions: []ParsedQuestion{},
		Errors:    []string{},
		Warnings:  []string{},
	}
}

// fatalResult returns a failed result carrying a single error.
func fatalResult(err error) ImportResult {
	res := newResult()
	res.Errors = append(res.Errors, capitalize(err.Error()))
	return res
}

// CreateQuestionRequest is the per-question payload expected by the
// exam-creation API.
type CreateQuestionRequest struct {
	OrderIndex    int          `json:"orderIndex"`
	Type          QuestionType `json:"type"`
	Content       string       `json:"content"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correctAnswer,omitempty"`
	Points        int          `json:"points"`
	Explanation   string       `json:"explanation,omitempty"`
}

// ColumnMapping records which column index, if any, holds each role.
type ColumnMapping struct {
	cols [schema.RoleCount]int
	set  [schema.RoleCount]bool
}

// Index returns the zero-based column for role.
func (m ColumnMapping) Index(role schema.Role) (int, bool) {
	if role < 0 || int(role) >= schema.RoleCount || !m.set[role] {
		return 0, false
	}
	return m.cols[role], true
}

// assign maps role to col unless the role is already mapped.
func (m *ColumnMapping) assign(role schema.Role, col int) bool {
	if m.set[role] {
		return false
	}
	m.cols[role] = col
	m.set[role] = true
	return true
}

// Roles returns the mapped roles with their columns, in role order.
func (m ColumnMapping) Roles() map[string]int {
	out := make(map[string]int)
	for _, r := range schema.Roles() {
		if col, ok := m.Index(r); ok {
			out[r.String()] = col
		}
	}
	return out
}
