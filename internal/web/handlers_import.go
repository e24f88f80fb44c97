package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/vlikcc/izbo-sub001/internal/core"
	"github.com/vlikcc/izbo-sub001/internal/logging"
	"github.com/vlikcc/izbo-sub001/internal/web/templates"
)

var (
	errInvalidRequest = errors.New("invalid request")
	errNoFile         = errors.New("no file provided")
	errBodyTooLarge   = errors.New("request body too large")
)

// FormatsResponse lists what the preview endpoint accepts.
type FormatsResponse struct {
	Formats     []core.Format `json:"formats"`
	Extensions  []string      `json:"extensions"`
	MaxFileSize int64         `json:"maxFileSize"`
}

// CreateRequestsRequest is the body of POST /api/import/requests.
// StartIndex defaults to the configured start index when omitted.
type CreateRequestsRequest struct {
	Questions  []core.ParsedQuestion `json:"questions"`
	StartIndex *int                  `json:"startIndex,omitempty"`
}

// CreateRequestsResponse carries the exam-creation payloads.
type CreateRequestsResponse struct {
	Requests []core.CreateQuestionRequest `json:"requests"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, FormatsResponse{
		Formats:     core.Formats(),
		Extensions:  core.SupportedExtensions(),
		MaxFileSize: s.service.MaxFileSize(),
	})
}

func (s *Server) handleImportStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.service.Limiter().Status())
}

// handleImportPreview parses an uploaded question file and returns the
// questions found, without creating anything.
//
// A file that yields no questions is still a 200: the preview's result
// carries the reason. Only rejected uploads produce error responses.
func (s *Server) handleImportPreview(w http.ResponseWriter, r *http.Request) {
	maxSize := s.service.MaxFileSize()
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			respondError(w, r, fmt.Errorf("%w: limit is %d bytes", errBodyTooLarge, mbe.Limit), http.StatusRequestEntityTooLarge)
			return
		}
		respondError(w, r, fmt.Errorf("%w: %v", errInvalidRequest, err), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, r, fmt.Errorf("%w: %v", errNoFile, err), http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		respondError(w, r, fmt.Errorf("read upload: %w", err), http.StatusInternalServerError)
		return
	}

	preview, err := s.service.Preview(withClient(r), header.Filename, data)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	if isHTMX(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := templates.ImportPreview(preview).Render(r.Context(), w); err != nil {
			logging.FromContext(r.Context()).Error("render import preview", "error", err)
		}
		return
	}
	writeJSON(w, r, http.StatusOK, preview)
}

// handleCreateRequests turns reviewed questions into exam-creation
// payloads. Every question must pass validation.
func (s *Server) handleCreateRequests(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.service.MaxFileSize())

	var req CreateRequestsRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			respondError(w, r, fmt.Errorf("%w: limit is %d bytes", errBodyTooLarge, mbe.Limit), http.StatusRequestEntityTooLarge)
			return
		}
		respondError(w, r, fmt.Errorf("%w: %v", errInvalidRequest, err), http.StatusBadRequest)
		return
	}

	if len(req.Questions) == 0 {
		respondError(w, r, fmt.Errorf("%w: no questions", errInvalidRequest), http.StatusBadRequest)
		return
	}
	for i, q := range req.Questions {
		if err := q.Validate(); err != nil {
			unitErr := &core.UnitError{Unit: "question", Position: i + 1, Err: err}
			respondError(w, r, fmt.Errorf("%w: %v", errInvalidRequest, unitErr), http.StatusBadRequest)
			return
		}
	}

	start := s.service.DefaultStartIndex()
	if req.StartIndex != nil {
		start = *req.StartIndex
	}

	writeJSON(w, r, http.StatusOK, CreateRequestsResponse{
		Requests: s.service.Confirm(req.Questions, start),
	})
}
