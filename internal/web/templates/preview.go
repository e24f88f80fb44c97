// Package templates renders the HTML fragments returned to HTMX clients.
//
// Components are written in .templ files; the _templ.go files are
// generated with `templ generate`.
package templates

import (
	"fmt"
	"strings"

	"github.com/vlikcc/izbo-sub001/internal/core"
)

func summaryLine(s core.ImportSummary) string {
	return fmt.Sprintf("%d questions: %d multiple choice, %d true/false, %d short answer",
		s.Total, s.MultipleChoice, s.TrueFalse, s.ShortAnswer)
}

// errorDetails returns the coded messages for a failed preview, mapping
// the result's errors when the preview was built without them.
func errorDetails(p *core.ImportPreview) []core.UserMessage {
	if len(p.ErrorDetails) > 0 {
		return p.ErrorDetails
	}
	return core.ErrorDetails(p.Result)
}

// isCorrect reports whether option i is the answer. Multiple choice answers
// are letters; true/false answers are the option text itself.
func isCorrect(q core.ParsedQuestion, i int, opt string) bool {
	if q.CorrectAnswer == "" {
		return false
	}
	if q.Type == core.MultipleChoice {
		return strings.EqualFold(q.CorrectAnswer, string(rune('A'+i)))
	}
	return opt == q.CorrectAnswer
}
