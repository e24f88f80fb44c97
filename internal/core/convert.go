package core

// convert.go turns raw cell and line text into typed question fields.

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vlikcc/izbo-sub001/internal/schema"
)

// cellValue returns the cleaned text of the column mapped to role,
// or "" when the role is unmapped or the row is too short.
func cellValue(row []string, m ColumnMapping, role schema.Role) string {
	col, ok := m.Index(role)
	if !ok || col >= len(row) {
		return ""
	}
	return cleanCell(row[col])
}

// cleanCell trims s, drops a leading byte order mark and replaces invalid
// UTF-8 (legacy .xls code pages) with U+FFFD.
func cleanCell(s string) string {
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "\uFFFD")
	}
	return strings.TrimSpace(strings.TrimPrefix(s, "\uFEFF"))
}

// ParsePoints reads the leading integer of s ("10", "10.0", "15 puan").
// Anything unparseable or not positive yields DefaultPoints.
func ParsePoints(s string) int {
	s = strings.TrimSpace(s)
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	start := i
	n := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		if n > (1<<31-1)/10 {
			return DefaultPoints
		}
		n = n*10 + int(s[i]-'0')
		i++
	}
	if i == start || s[0] == '-' || n <= 0 {
		return DefaultPoints
	}
	return n
}

// ClassifyType maps a type cell onto a QuestionType. True/false keywords
// are checked before short-answer keywords; anything else is multiple choice.
func ClassifyType(cell string) QuestionType {
	switch {
	case schema.IsTrueFalseType(cell):
		return TrueFalse
	case schema.IsShortAnswerType(cell):
		return ShortAnswer
	default:
		return MultipleChoice
	}
}

// nonEmptyLines splits text into trimmed lines, dropping blank ones.
func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// capitalize upper-cases the first rune so Go-style error strings read
// as sentences in user-facing results.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
