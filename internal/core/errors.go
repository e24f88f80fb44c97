package core

import "errors"

// Fatal import errors. Messages are lower-case Go errors; results carry
// them capitalized.
var (
	ErrUnsupportedFormat      = errors.New("unsupported file format")
	ErrUnreadableWorkbook     = errors.New("could not read workbook")
	ErrNoSheet                = errors.New("no sheet found in the workbook")
	ErrInsufficientData       = errors.New("insufficient data: a header row and at least one data row are required")
	ErrQuestionColumnNotFound = errors.New(`question column not found (expected a header such as "Soru" or "Question")`)
	ErrNoQuestions            = errors.New("no question could be parsed")
	ErrUnreadableDocument     = errors.New("could not read document")
	ErrNoText                 = errors.New("no text found in the document")
	ErrNoDocumentQuestions    = errors.New("no question could be parsed; check the document format")
)

// Service-level errors.
var (
	ErrEmptyFile    = errors.New("empty file")
	ErrFileTooLarge = errors.New("file too large")
)
