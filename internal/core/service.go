package core

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/vlikcc/izbo-sub001/internal/logging"
)

// DefaultMaxFileSize caps uploaded question files.
const DefaultMaxFileSize int64 = 10 << 20

// ServiceConfig holds the service's limits. Zero values select defaults.
type ServiceConfig struct {
	MaxFileSize       int64
	MaxConcurrent     int
	MaxWaitTime       time.Duration
	DefaultStartIndex int
}

// Service runs question imports for any frontend: it bounds size and
// concurrency, assigns import IDs and logs each import.
type Service struct {
	cfg     ServiceConfig
	limiter *ImportLimiter
}

// NewService creates a Service.
func NewService(cfg ServiceConfig) *Service {
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = DefaultMaxFileSize
	}
	return &Service{
		cfg:     cfg,
		limiter: NewImportLimiter(cfg.MaxConcurrent, cfg.MaxWaitTime),
	}
}

// MaxFileSize returns the largest accepted file in bytes.
func (s *Service) MaxFileSize() int64 {
	return s.cfg.MaxFileSize
}

// DefaultStartIndex is the order index used when a caller does not give one.
func (s *Service) DefaultStartIndex() int {
	return s.cfg.DefaultStartIndex
}

// Limiter exposes the import limiter for status reporting and shutdown.
func (s *Service) Limiter() *ImportLimiter {
	return s.limiter
}

// Preview parses an uploaded file and returns what it contains.
// A file that parses to nothing is not an error: the preview's Result
// carries the fatal message. Errors are returned only for rejected input
// or when no import slot is available.
func (s *Service) Preview(ctx context.Context, filename string, data []byte) (preview *ImportPreview, err error) {
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if int64(len(data)) > s.cfg.MaxFileSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds the %d byte limit", ErrFileTooLarge, len(data), s.cfg.MaxFileSize)
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	id := uuid.NewString()
	ctx = logging.ContextWithFields(ctx, "import_id", id, "file", filename)
	if c, ok := ClientFromContext(ctx); ok {
		ctx = logging.ContextWithFields(ctx, "client_ip", c.IP)
	}
	logger := logging.FromContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic in import", "panic", r, "stack", string(debug.Stack()))
			preview, err = nil, fmt.Errorf("import %s failed: %v", id, r)
		}
	}()

	start := time.Now()
	logger.Info("import started", "bytes", len(data))

	res := ParseQuestionFile(data, filename)
	format := ""
	if f, ok := FormatFor(filename); ok {
		format = f.Name
	}

	preview = &ImportPreview{
		ImportID:         id,
		FileName:         filename,
		Format:           format,
		Result:           res,
		Summary:          Summarize(res),
		ProcessingTimeMs: time.Since(start).Milliseconds(),
		ErrorDetails:     ErrorDetails(res),
	}
	logImport(logger, preview)
	return preview, nil
}

func logImport(logger *slog.Logger, p *ImportPreview) {
	attrs := []any{
		"format", p.Format,
		"questions", p.Summary.Total,
		"warnings", p.Summary.Warnings,
		"duration_ms", p.ProcessingTimeMs,
	}
	if !p.Result.Success {
		codes := make([]string, len(p.ErrorDetails))
		for i, d := range p.ErrorDetails {
			codes[i] = d.Code
		}
		logger.Warn("import produced no questions", append(attrs, "errors", p.Result.Errors, "codes", codes)...)
		return
	}
	logger.Info("import parsed", attrs...)
}

// Confirm turns reviewed questions into exam-creation requests.
func (s *Service) Confirm(questions []ParsedQuestion, startIndex int) []CreateQuestionRequest {
	return ToCreateRequests(questions, startIndex)
}
