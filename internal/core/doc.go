// Package core provides the business logic for question file imports.
//
// This package turns an uploaded spreadsheet or Word document into a
// reviewable list of questions and then into exam-creation payloads. It has
// no UI or transport dependencies and is used by the web handlers, the
// importq CLI and tests alike.
//
// # Pipeline
//
//	bytes + filename
//	  -> ParseQuestionFile (extension decides the format)
//	  -> ParseTabular (.xlsx, .xls) or ParseDocument (.docx)
//	  -> ImportResult (questions, fatal errors, per-unit warnings)
//	  -> review by the user
//	  -> ToCreateRequests -> []CreateQuestionRequest
//
// Parsers are synchronous and keep no state between calls, so they are safe
// to call from any number of goroutines.
//
// # Failures
//
// A fatal problem (unreadable file, missing question column, nothing parsed)
// yields Success=false with a single entry in Errors. A problem confined to
// one spreadsheet row or one document block is recorded in Warnings as
// "row <n>: ..." or "question block <n>: ..." and the unit is skipped; the
// rest of the file is still parsed. Panics raised while decoding or while
// handling a unit are recovered and reported the same way.
//
// # Error Codes
//
// Technical errors are mapped to user-friendly messages using [MapError]:
//
//   - IMP001-IMP008: Import errors (format, workbook, document, no questions)
//   - VAL001: Malformed API request
//   - FILE001-FILE005: File errors (size, missing, empty)
//   - UPL002-UPL005: Capacity and cancellation
//   - RATE001: Rate limiting
//
// # Service
//
// [Service] wraps the parsers for servers: it rejects oversized or empty
// input, bounds concurrent imports with an [ImportLimiter], assigns each
// import an ID and logs its outcome.
package core
