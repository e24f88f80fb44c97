package core

// ToCreateRequests converts reviewed questions into exam-creation payloads.
// Order is preserved and OrderIndex counts up from startIndex. Empty
// options and an empty correct answer are left out of the payload.
func ToCreateRequests(questions []ParsedQuestion, startIndex int) []CreateQuestionRequest {
	out := make([]CreateQuestionRequest, len(questions))
	for i, q := range questions {
		req := CreateQuestionRequest{
			OrderIndex:    startIndex + i,
			Type:          q.Type,
			Content:       q.Content,
			CorrectAnswer: q.CorrectAnswer,
			Points:        q.Points,
			Explanation:   q.Explanation,
		}
		if len(q.Options) > 0 {
			req.Options = append([]string(nil), q.Options...)
		}
		out[i] = req
	}
	return out
}
