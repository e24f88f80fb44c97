package core

// error_messages.go maps technical errors to user-facing messages with a
// support code.
//
// # Error Codes Reference
//
// # Import Errors (IMP001-IMP099)
//
// Fatal outcomes of parsing a question file:
//
//	IMP001 - Unsupported format: the extension is not .xlsx, .xls or .docx
//	         Patterns: "unsupported file format"
//	IMP002 - Unreadable workbook: the spreadsheet could not be decoded
//	         Patterns: "could not read workbook"
//	IMP003 - No sheet: the workbook contains no sheets
//	         Patterns: "no sheet found"
//	IMP004 - Insufficient data: header row or data rows missing
//	         Patterns: "insufficient data"
//	IMP005 - Question column missing: no header names the question column
//	         Patterns: "question column not found"
//	IMP006 - Unreadable document: the .docx could not be opened
//	         Patterns: "could not read document"
//	IMP007 - No text: the document body is empty
//	         Patterns: "no text found"
//	IMP008 - No questions: nothing in the file was recognized as a question
//	         Patterns: "no question could be parsed"
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL001 - Invalid request: the request body could not be decoded
//	         Patterns: "invalid request"
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large          Patterns: "file too large", "request body too large"
//	FILE004 - No file                 Patterns: "no file provided"
//	FILE005 - Empty file              Patterns: "empty file"
//
// # Upload Errors (UPL001-UPL099)
//
//	UPL002 - System busy              Patterns: "too many imports"
//	UPL004 - Request cancelled        Patterns: "context canceled"
//	UPL005 - Request timeout          Patterns: "context deadline exceeded"
//
// # Rate Limiting (RATE001-RATE099)
//
//	RATE001 - Rate limited            Patterns: "rate limit"
//
// # Default Error (ERR000)
//
// Fallback when no pattern matches. Check the server log for the original error.
//
// Patterns are matched case-insensitively with strings.Contains and the first
// match wins, so specific patterns come before general ones.

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string `json:"message"` // What happened (user-friendly)
	Action  string `json:"action"`  // What to do about it
	Code    string `json:"code"`    // Error code for support reference
}

// String formats m for display: "Message (Code: XXX). Action".
func (m UserMessage) String() string {
	if m.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", m.Message, m.Code, m.Action)
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// =========================================================================
	// Import Errors (IMP001-IMP008)
	// =========================================================================
	{
		pattern: "unsupported file format",
		msg: UserMessage{
			Message: "This file type is not supported",
			Action:  "Upload an .xlsx, .xls or .docx file",
			Code:    "IMP001",
		},
	},
	{
		pattern: "could not read workbook",
		msg: UserMessage{
			Message: "The spreadsheet could not be opened",
			Action:  "Save the file again as .xlsx and retry",
			Code:    "IMP002",
		},
	},
	{
		pattern: "no sheet found",
		msg: UserMessage{
			Message: "The workbook has no sheets",
			Action:  "Put the questions on the first sheet",
			Code:    "IMP003",
		},
	},
	{
		pattern: "insufficient data",
		msg: UserMessage{
			Message: "The sheet has no question rows",
			Action:  "Add a header row followed by one row per question",
			Code:    "IMP004",
		},
	},
	{
		pattern: "question column not found",
		msg: UserMessage{
			Message: "No question column was found",
			Action:  `Name the question column "Soru" or "Question"`,
			Code:    "IMP005",
		},
	},
	{
		pattern: "could not read document",
		msg: UserMessage{
			Message: "The document could not be opened",
			Action:  "Save the file again as .docx and retry",
			Code:    "IMP006",
		},
	},
	{
		pattern: "no text found",
		msg: UserMessage{
			Message: "The document is empty",
			Action:  "Check that the questions are typed as text, not pasted as images",
			Code:    "IMP007",
		},
	},
	{
		pattern: "no question could be parsed",
		msg: UserMessage{
			Message: "No questions were recognized",
			Action:  "Check the column headers, or number each question (1., 2., ...)",
			Code:    "IMP008",
		},
	},

	// =========================================================================
	// Validation Errors (VAL001)
	// =========================================================================
	{
		pattern: "invalid request",
		msg: UserMessage{
			Message: "The request could not be read",
			Action:  "Send a JSON body with questions and startIndex",
			Code:    "VAL001",
		},
	},

	// =========================================================================
	// File Errors (FILE001-FILE005)
	// =========================================================================
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds maximum size limit",
			Action:  "Split the questions into smaller files",
			Code:    "FILE001",
		},
	},
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "File exceeds maximum size limit",
			Action:  "Split the questions into smaller files",
			Code:    "FILE001",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Please select a question file to upload",
			Code:    "FILE004",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The uploaded file is empty",
			Action:  "Please upload a file that contains questions",
			Code:    "FILE005",
		},
	},

	// =========================================================================
	// Upload Errors (UPL002-UPL005)
	// =========================================================================
	{
		pattern: "too many imports",
		msg: UserMessage{
			Message: "System is busy processing other imports",
			Action:  "Please wait a moment and try again",
			Code:    "UPL002",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "UPL004",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try a smaller file or check your connection",
			Code:    "UPL005",
		},
	},

	// =========================================================================
	// Rate Limiting (RATE001)
	// =========================================================================
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// It returns the first pattern match, or ERR000 when nothing matches.
//
// Example:
//
//	msg := MapError(ErrNoSheet)
//	// msg.Code == "IMP003"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}
	return MapMessage(err.Error())
}

// MapMessage maps an error string, such as an ImportResult error entry.
func MapMessage(s string) UserMessage {
	lower := strings.ToLower(s)
	for _, ep := range errorPatterns {
		if strings.Contains(lower, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}
