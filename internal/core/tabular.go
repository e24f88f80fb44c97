package core

// tabular.go parses question spreadsheets (.xlsx, .xls).
//
// The first sheet's first row is the header. Each header cell is matched
// against the synonym table in internal/schema to find which column holds
// the question text, the type, options A-E, the correct answer, points and
// explanation. Every later row becomes one question; rows that fail are
// reported as warnings and skipped.

import (
	"github.com/vlikcc/izbo-sub001/internal/schema"
)

// ParseTabular parses a spreadsheet question file. It never panics:
// decoder and per-row failures are reported through the result.
func ParseTabular(data []byte) ImportResult {
	rows, err := readGrid(data)
	if err != nil {
		return fatalResult(err)
	}
	if len(rows) < 2 {
		return fatalResult(ErrInsufficientData)
	}

	mapping, err := DetectColumns(rows[0])
	if err != nil {
		return fatalResult(err)
	}

	res := newResult()
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		res.collect("row", i+1, func() (ParsedQuestion, bool, error) {
			return questionFromRow(row, mapping)
		})
	}
	return res.finish(ErrNoQuestions)
}

// DetectColumns maps header cells to roles. Each cell takes the first role
// whose synonyms accept it; a role already claimed by an earlier column is
// ignored. The question role is mandatory.
func DetectColumns(header []string) (ColumnMapping, error) {
	var m ColumnMapping
	for col, h := range header {
		if role, ok := schema.Match(cleanCell(h)); ok {
			m.assign(role, col)
		}
	}
	if _, ok := m.Index(schema.RoleQuestion); !ok {
		return m, ErrQuestionColumnNotFound
	}
	return m, nil
}

// questionFromRow builds one question from a data row. A row whose
// question cell is empty is skipped without a warning.
func questionFromRow(row []string, m ColumnMapping) (ParsedQuestion, bool, error) {
	content := cellValue(row, m, schema.RoleQuestion)
	if content == "" {
		return ParsedQuestion{}, true, nil
	}

	q := ParsedQuestion{
		Content:     content,
		Type:        ClassifyType(cellValue(row, m, schema.RoleType)),
		Points:      ParsePoints(cellValue(row, m, schema.RolePoints)),
		Explanation: cellValue(row, m, schema.RoleExplanation),
	}

	answer := cellValue(row, m, schema.RoleCorrectAnswer)
	switch q.Type {
	case TrueFalse:
		q.Options = TrueFalseOptions()
		q.CorrectAnswer, _ = schema.NormalizeTrueFalseAnswer(answer)
	case MultipleChoice:
		q.Options = rowOptions(row, m)
		q.CorrectAnswer = answer
	case ShortAnswer:
		q.Options = []string{}
		q.CorrectAnswer = answer
	}
	return q, false, nil
}

// rowOptions returns the non-empty option cells A-E in letter order.
func rowOptions(row []string, m ColumnMapping) []string {
	options := []string{}
	for _, role := range schema.OptionRoles() {
		if v := cellValue(row, m, role); v != "" {
			options = append(options, v)
		}
	}
	return options
}
