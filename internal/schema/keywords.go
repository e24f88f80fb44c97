package schema

import "strings"

// Canonical true/false option labels, in display order.
const (
	TrueLabel  = "Doğru"
	FalseLabel = "Yanlış"
)

// Type-cell keywords. A cell containing any of these (after folding)
// selects the corresponding question type.
var (
	trueFalseTypeKeywords   = []string{"doğru", "yanlış", "true", "false", "d/y", "t/f"}
	shortAnswerTypeKeywords = []string{"kısa", "short", "açık uçlu", "open"}
)

// Answer spellings normalized onto the canonical labels for true/false rows.
var (
	trueAnswers  = []string{"d", "doğru", "true", "t", "1", "evet", "yes"}
	falseAnswers = []string{"y", "yanlış", "false", "f", "0", "hayır", "no"}
)

// Labels that introduce a correct-answer line in flowing text, longest first.
var correctAnswerLabels = []string{"doğru cevap", "correct answer", "cevap", "correct", "answer"}

// IsTrueFalseType reports whether a type cell names a true/false question.
func IsTrueFalseType(cell string) bool {
	return containsAny(Fold(cell), trueFalseTypeKeywords)
}

// IsShortAnswerType reports whether a type cell names a short-answer question.
func IsShortAnswerType(cell string) bool {
	return containsAny(Fold(cell), shortAnswerTypeKeywords)
}

// NormalizeTrueFalseAnswer maps common spellings onto TrueLabel or FalseLabel.
// Unrecognized input is returned trimmed with ok=false.
func NormalizeTrueFalseAnswer(s string) (string, bool) {
	folded := Fold(s)
	if equalsAny(folded, trueAnswers) {
		return TrueLabel, true
	}
	if equalsAny(folded, falseAnswers) {
		return FalseLabel, true
	}
	return strings.TrimSpace(s), false
}

// IsTrueFalseMarker reports whether a line of flowing text mentions both
// the true and the false label, e.g. "( ) Doğru  ( ) Yanlış".
func IsTrueFalseMarker(line string) bool {
	folded := Fold(line)
	return strings.Contains(folded, Fold(TrueLabel)) && strings.Contains(folded, Fold(FalseLabel))
}

// CorrectAnswerLabels returns the labels that introduce a correct answer in
// flowing text, longest first.
func CorrectAnswerLabels() []string {
	out := make([]string, len(correctAnswerLabels))
	copy(out, correctAnswerLabels)
	return out
}

func containsAny(folded string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(folded, Fold(k)) {
			return true
		}
	}
	return false
}

func equalsAny(folded string, words []string) bool {
	for _, w := range words {
		if folded == Fold(w) {
			return true
		}
	}
	return false
}
