package core

// ImportSummary counts what a preview found, for the review screen.
type ImportSummary struct {
	Total          int `json:"total"`
	MultipleChoice int `json:"multipleChoice"`
	TrueFalse      int `json:"trueFalse"`
	ShortAnswer    int `json:"shortAnswer"`
	Warnings       int `json:"warnings"`
}

// ImportPreview is the parse outcome shown to the user before confirming.
type ImportPreview struct {
	ImportID         string        `json:"importId"`
	FileName         string        `json:"fileName"`
	Format           string        `json:"format"`
	Result           ImportResult  `json:"result"`
	Summary          ImportSummary `json:"summary"`
	ProcessingTimeMs int64         `json:"processingTimeMs"`

	// ErrorDetails maps each fatal error in Result to a coded user message.
	ErrorDetails []UserMessage `json:"errorDetails,omitempty"`
}

// ErrorDetails maps the fatal errors of r, in order.
func ErrorDetails(r ImportResult) []UserMessage {
	if r.Success || len(r.Errors) == 0 {
		return nil
	}
	details := make([]UserMessage, len(r.Errors))
	for i, e := range r.Errors {
		details[i] = MapMessage(e)
	}
	return details
}

// Summarize counts the questions in r by type.
func Summarize(r ImportResult) ImportSummary {
	s := ImportSummary{
		Total:    len(r.Questions),
		Warnings: len(r.Warnings),
	}
	for _, q := range r.Questions {
		switch q.Type {
		case MultipleChoice:
			s.MultipleChoice++
		case TrueFalse:
			s.TrueFalse++
		case ShortAnswer:
			s.ShortAnswer++
		}
	}
	return s
}
