package core

// document.go parses questions written as flowing text in a Word document.
//
// The text is split into blocks at question markers ("1.", "2)", "Soru 3:",
// "Question:") found at the start of a line. In each block the first line
// is the question text and the remaining lines are run through an ordered
// list of classifiers: option lines, correct-answer lines and true/false
// marker lines. Unclassified lines are ignored.

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vlikcc/izbo-sub001/internal/schema"
)

var (
	questionMarker = regexp.MustCompile(`(?im)^[ \t]*(?:\d+[.)]|(?:soru|question)[ \t]*\d*[ \t]*[:.])`)
	optionLine     = regexp.MustCompile(`(?i)^([a-e])[.)]\s*(.+)$`)
	correctLine    = regexp.MustCompile(correctLinePattern())
)

// correctLinePattern matches a folded line such as "dogru cevap: b" or
// "answer - (c)" and captures the letter.
func correctLinePattern() string {
	labels := schema.CorrectAnswerLabels()
	alts := make([]string, len(labels))
	for i, l := range labels {
		alts[i] = strings.ReplaceAll(regexp.QuoteMeta(schema.Fold(l)), " ", `\s*`)
	}
	return `^(?:` + strings.Join(alts, "|") + `)\s*[:.=\-]?\s*\(?([a-e])\b`
}

// ParseDocument parses a .docx question file. It never panics: extraction
// and per-block failures are reported through the result.
func ParseDocument(data []byte) ImportResult {
	text, err := ExtractDocumentText(data)
	if err != nil {
		return fatalResult(fmt.Errorf("%w: %v", ErrUnreadableDocument, err))
	}
	if strings.TrimSpace(text) == "" {
		return fatalResult(ErrNoText)
	}

	blocks := SegmentBlocks(text)
	if len(blocks) == 0 {
		return fatalResult(ErrNoDocumentQuestions)
	}

	res := newResult()
	for i, block := range blocks {
		res.collect("question block", i+1, func() (ParsedQuestion, bool, error) {
			return questionFromBlock(block)
		})
	}
	return res.finish(ErrNoDocumentQuestions)
}

// SegmentBlocks splits text at question markers. Marker text and anything
// before the first marker are dropped; without markers the whole text is
// one block. Blank blocks are omitted.
func SegmentBlocks(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	locs := questionMarker.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		// Unnumbered documents hold a single question.
		if s := strings.TrimSpace(text); s != "" {
			return []string{s}
		}
		return nil
	}

	var blocks []string
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		if s := strings.TrimSpace(text[loc[1]:end]); s != "" {
			blocks = append(blocks, s)
		}
	}
	return blocks
}

type lineKind int

const (
	lineOther lineKind = iota
	lineOption
	lineCorrectAnswer
	lineTrueFalse
)

// classifyLine runs the classifiers in order and returns the first hit
// with its captured value.
func classifyLine(line string) (lineKind, string) {
	if m := optionLine.FindStringSubmatch(line); m != nil {
		return lineOption, strings.TrimSpace(m[2])
	}
	if m := correctLine.FindStringSubmatch(schema.Fold(line)); m != nil {
		return lineCorrectAnswer, strings.ToUpper(m[1])
	}
	if schema.IsTrueFalseMarker(line) {
		return lineTrueFalse, ""
	}
	return lineOther, ""
}

// questionFromBlock builds one question from a block of text.
func questionFromBlock(block string) (ParsedQuestion, bool, error) {
	lines := nonEmptyLines(block)
	if len(lines) == 0 {
		return ParsedQuestion{}, true, nil
	}

	q := ParsedQuestion{Content: lines[0], Points: DefaultPoints}
	options := []string{}
	sawOption, trueFalse := false, false

	for _, line := range lines[1:] {
		kind, value := classifyLine(line)
		switch kind {
		case lineOption:
			if trueFalse {
				continue
			}
			options = append(options, value)
			sawOption = true
		case lineCorrectAnswer:
			q.CorrectAnswer = value
		case lineTrueFalse:
			trueFalse = true
			options = TrueFalseOptions()
		}
	}

	switch {
	case trueFalse:
		q.Type = TrueFalse
	case sawOption:
		q.Type = MultipleChoice
	default:
		q.Type = ShortAnswer
	}

	switch q.Type {
	case TrueFalse, MultipleChoice:
		q.Options = options
	case ShortAnswer:
		q.Options = []string{}
	}
	return q, false, nil
}
