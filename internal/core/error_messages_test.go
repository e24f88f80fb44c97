package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "nil error returns empty",
			err:         nil,
			wantCode:    "",
			wantMessage: "",
		},
		{
			name:        "unsupported format",
			err:         fmt.Errorf("%w: notes.pdf", ErrUnsupportedFormat),
			wantCode:    "IMP001",
			wantMessage: "This file type is not supported",
		},
		{
			name:        "unreadable workbook",
			err:         fmt.Errorf("%w: zip: not a valid zip file", ErrUnreadableWorkbook),
			wantCode:    "IMP002",
			wantMessage: "The spreadsheet could not be opened",
		},
		{
			name:     "no sheet",
			err:      ErrNoSheet,
			wantCode: "IMP003",
		},
		{
			name:     "insufficient data",
			err:      ErrInsufficientData,
			wantCode: "IMP004",
		},
		{
			name:        "question column missing",
			err:         ErrQuestionColumnNotFound,
			wantCode:    "IMP005",
			wantMessage: "No question column was found",
		},
		{
			name:     "unreadable document",
			err:      ErrUnreadableDocument,
			wantCode: "IMP006",
		},
		{
			name:     "no text",
			err:      ErrNoText,
			wantCode: "IMP007",
		},
		{
			name:     "no questions from sheet",
			err:      ErrNoQuestions,
			wantCode: "IMP008",
		},
		{
			name:     "no questions from document",
			err:      ErrNoDocumentQuestions,
			wantCode: "IMP008",
		},
		{
			name:        "file too large",
			err:         fmt.Errorf("%w: 20971520 bytes", ErrFileTooLarge),
			wantCode:    "FILE001",
			wantMessage: "File exceeds maximum size limit",
		},
		{
			name:     "empty file",
			err:      ErrEmptyFile,
			wantCode: "FILE005",
		},
		{
			name:     "too many imports",
			err:      ErrTooManyImports,
			wantCode: "UPL002",
		},
		{
			name:     "cancelled",
			err:      context.Canceled,
			wantCode: "UPL004",
		},
		{
			name:     "rate limited",
			err:      errors.New("rate limit exceeded"),
			wantCode: "RATE001",
		},
		{
			name:        "unknown error returns default",
			err:         errors.New("some random internal error"),
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
		{
			name:     "case insensitive matching",
			err:      errors.New("NO SHEET FOUND in the workbook"),
			wantCode: "IMP003",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if tt.wantMessage != "" && got.Message != tt.wantMessage {
				t.Errorf("MapError() message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestMapMessage_ResultErrors(t *testing.T) {
	res := ParseQuestionFile([]byte("x"), "notes.pdf")
	if len(res.Errors) != 1 {
		t.Fatalf("expected one error, got %v", res.Errors)
	}
	if got := MapMessage(res.Errors[0]).Code; got != "IMP001" {
		t.Errorf("code = %q, want IMP001", got)
	}
}

func TestUserMessage_String(t *testing.T) {
	got := MapError(ErrEmptyFile).String()
	want := "The uploaded file is empty (Code: FILE005). Please upload a file that contains questions"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := MapError(nil).String(); got != "" {
		t.Errorf("String() of empty message = %q, want empty", got)
	}
}
