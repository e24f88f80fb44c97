package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/vlikcc/izbo-sub001/internal/config"
	"github.com/vlikcc/izbo-sub001/internal/core"
	"github.com/vlikcc/izbo-sub001/internal/logging"
)

// =============================================================================
// Helpers
// =============================================================================

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{RequestTimeout: 5 * time.Second},
		Import: config.ImportConfig{
			MaxFileSize:       1 << 20,
			MaxConcurrent:     2,
			MaxWaitTime:       time.Second,
			DefaultStartIndex: 1,
		},
		Rate:     config.RateLimitConfig{Enabled: false, RequestsPerMinute: 100, ImportLimit: 20},
		Security: config.SecurityConfig{EnableCSP: true},
		Logging:  config.LoggingConfig{Level: "error", Format: "text"},
	}
}

func newTestServer(t *testing.T, mutate func(*config.Config)) *Server {
	t.Helper()

	cfg := testConfig()
	if mutate != nil {
		mutate(cfg)
	}
	svc := core.NewService(core.ServiceConfig{
		MaxFileSize:       cfg.Import.MaxFileSize,
		MaxConcurrent:     cfg.Import.MaxConcurrent,
		MaxWaitTime:       cfg.Import.MaxWaitTime,
		DefaultStartIndex: cfg.Import.DefaultStartIndex,
	})
	s, err := NewServer(svc, cfg)
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	t.Cleanup(func() { s.Shutdown(context.Background()) })
	return s
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

// uploadRequest builds a multipart preview request carrying one file.
func uploadRequest(t *testing.T, filename string, data []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	part.Write(data)
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/import/preview", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func questionWorkbook(t *testing.T) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	rows := [][]any{
		{"Soru", "Tip", "A", "B", "C", "Doğru Cevap", "Puan"},
		{"2+2=?", "Çoktan Seçmeli", "3", "4", "5", "B", "5"},
		{"Ankara başkenttir", "Doğru/Yanlış", "", "", "", "Evet", ""},
	}
	sheet := f.GetSheetName(0)
	for i := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}
	return buf.Bytes()
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("error body is not JSON: %v (%s)", err, rec.Body.String())
	}
	return resp
}

// =============================================================================
// Health & formats
// =============================================================================

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)
	rec := serve(s, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	for _, h := range []string{"X-Content-Type-Options", "X-Frame-Options", "Content-Security-Policy"} {
		if rec.Header().Get(h) == "" {
			t.Errorf("missing security header %s", h)
		}
	}
}

func TestSecurityHeaders_CSPDisabled(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) { c.Security.EnableCSP = false })
	rec := serve(s, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if got := rec.Header().Get("Content-Security-Policy"); got != "" {
		t.Errorf("CSP = %q, want none", got)
	}
}

func TestFormats(t *testing.T) {
	s := newTestServer(t, nil)
	rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/formats", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp FormatsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := strings.Join(resp.Extensions, ","); got != ".xlsx,.xls,.docx" {
		t.Errorf("extensions = %s", got)
	}
	if len(resp.Formats) != 2 || resp.MaxFileSize != 1<<20 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestImportStatus(t *testing.T) {
	s := newTestServer(t, nil)
	rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/import/status", nil))

	var st core.LimiterStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if st.MaxConcurrent != 2 || st.Available != 2 || st.Active != 0 {
		t.Errorf("status = %+v", st)
	}
}

// =============================================================================
// Preview
// =============================================================================

func TestImportPreview_Spreadsheet(t *testing.T) {
	s := newTestServer(t, nil)
	rec := serve(s, uploadRequest(t, "sinav.xlsx", questionWorkbook(t)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var p core.ImportPreview
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if p.ImportID == "" || p.FileName != "sinav.xlsx" || p.Format != "spreadsheet" {
		t.Errorf("preview metadata = %+v", p)
	}
	if !p.Result.Success || p.Summary.Total != 2 {
		t.Fatalf("result = %+v", p.Result)
	}
	if p.Summary.MultipleChoice != 1 || p.Summary.TrueFalse != 1 {
		t.Errorf("summary = %+v", p.Summary)
	}
	tf := p.Result.Questions[1]
	if tf.Type != core.TrueFalse || tf.CorrectAnswer != "Doğru" {
		t.Errorf("true/false question = %+v", tf)
	}
}

func TestImportPreview_HTMXFragment(t *testing.T) {
	s := newTestServer(t, nil)
	req := uploadRequest(t, "sinav.xlsx", questionWorkbook(t))
	req.Header.Set("HX-Request", "true")
	rec := serve(s, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), `class="import-preview"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestImportPreview_UnsupportedFormatIsResult(t *testing.T) {
	s := newTestServer(t, nil)
	rec := serve(s, uploadRequest(t, "notes.txt", []byte("1. Soru?")))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var p core.ImportPreview
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Result.Success || len(p.Result.Errors) != 1 {
		t.Fatalf("result = %+v", p.Result)
	}
	if !strings.HasPrefix(p.Result.Errors[0], "Unsupported file format") {
		t.Errorf("error = %q", p.Result.Errors[0])
	}
	if len(p.ErrorDetails) != 1 || p.ErrorDetails[0].Code != "IMP001" || p.ErrorDetails[0].Action == "" {
		t.Errorf("errorDetails = %+v, want one IMP001 entry with an action", p.ErrorDetails)
	}
}

func TestImportPreview_HTMXFailedResult(t *testing.T) {
	s := newTestServer(t, nil)
	req := uploadRequest(t, "notes.txt", []byte("1. Soru?"))
	req.Header.Set("HX-Request", "true")
	rec := serve(s, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{`class="import-preview"`, `role="alert"`, `data-code="IMP001"`} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q: %s", want, body)
		}
	}
}

func TestImportPreview_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*config.Config)
		req      func(t *testing.T) *http.Request
		wantCode int
		wantErr  string
	}{
		{
			name: "no file field",
			req: func(t *testing.T) *http.Request {
				var body bytes.Buffer
				mw := multipart.NewWriter(&body)
				mw.WriteField("note", "hi")
				mw.Close()
				req := httptest.NewRequest(http.MethodPost, "/api/import/preview", &body)
				req.Header.Set("Content-Type", mw.FormDataContentType())
				return req
			},
			wantCode: http.StatusBadRequest,
			wantErr:  "FILE004",
		},
		{
			name: "not multipart",
			req: func(t *testing.T) *http.Request {
				return httptest.NewRequest(http.MethodPost, "/api/import/preview", strings.NewReader("{}"))
			},
			wantCode: http.StatusBadRequest,
			wantErr:  "VAL001",
		},
		{
			name:     "empty file",
			req:      func(t *testing.T) *http.Request { return uploadRequest(t, "bos.xlsx", nil) },
			wantCode: http.StatusBadRequest,
			wantErr:  "FILE005",
		},
		{
			name:     "file over limit",
			mutate:   func(c *config.Config) { c.Import.MaxFileSize = 64 },
			req:      func(t *testing.T) *http.Request { return uploadRequest(t, "big.xlsx", bytes.Repeat([]byte("x"), 100)) },
			wantCode: http.StatusRequestEntityTooLarge,
			wantErr:  "FILE001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, tt.mutate)
			rec := serve(s, tt.req(t))

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantCode, rec.Body.String())
			}
			if got := decodeError(t, rec).Code; got != tt.wantErr {
				t.Errorf("code = %s, want %s", got, tt.wantErr)
			}
		})
	}
}

func TestRespondError_LogsRequestFields(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(logging.New(&buf, "debug", "text"))
	defer slog.SetDefault(prev)

	s := newTestServer(t, nil)
	if rec := serve(s, uploadRequest(t, "bos.xlsx", nil)); rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}

	out := buf.String()
	for _, want := range []string{"request rejected", "request_id=", "path=/api/import/preview", "method=POST", "code=FILE005"} {
		if !strings.Contains(out, want) {
			t.Errorf("log is missing %q:\n%s", want, out)
		}
	}
}

func TestImportPreview_HTMXError(t *testing.T) {
	s := newTestServer(t, nil)
	req := uploadRequest(t, "bos.docx", nil)
	req.Header.Set("HX-Request", "true")
	rec := serve(s, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `role="alert"`) || !strings.Contains(rec.Body.String(), "FILE005") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

// =============================================================================
// Create requests
// =============================================================================

func TestCreateRequests(t *testing.T) {
	s := newTestServer(t, nil)

	body := `{"questions":[
		{"content":"2+2=?","type":"MultipleChoice","options":["3","4"],"correctAnswer":"B","points":5},
		{"content":"Başkent?","type":"ShortAnswer","options":[],"correctAnswer":"Ankara","points":10}
	],"startIndex":3}`
	req := httptest.NewRequest(http.MethodPost, "/api/import/requests", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := serve(s, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp CreateRequestsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Requests) != 2 {
		t.Fatalf("requests = %+v", resp.Requests)
	}
	if resp.Requests[0].OrderIndex != 3 || resp.Requests[1].OrderIndex != 4 {
		t.Errorf("order indexes = %d, %d", resp.Requests[0].OrderIndex, resp.Requests[1].OrderIndex)
	}
	if resp.Requests[1].Options != nil {
		t.Errorf("short answer options = %v, want omitted", resp.Requests[1].Options)
	}
}

func TestCreateRequests_DefaultStartIndex(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) { c.Import.DefaultStartIndex = 7 })

	body := `{"questions":[{"content":"Q","type":"ShortAnswer","options":[],"points":10}]}`
	rec := serve(s, httptest.NewRequest(http.MethodPost, "/api/import/requests", strings.NewReader(body)))

	var resp CreateRequestsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v (%s)", err, rec.Body.String())
	}
	if len(resp.Requests) != 1 || resp.Requests[0].OrderIndex != 7 {
		t.Errorf("requests = %+v", resp.Requests)
	}
}

func TestCreateRequests_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"questions":`},
		{"unknown field", `{"questions":[],"extra":1}`},
		{"no questions", `{"questions":[]}`},
		{"unknown type", `{"questions":[{"content":"Q","type":"Essay","points":1}]}`},
		{"empty content", `{"questions":[{"content":"","type":"ShortAnswer","points":1}]}`},
		{"too many options", `{"questions":[{"content":"Q","type":"MultipleChoice","options":["1","2","3","4","5","6"],"points":1}]}`},
	}

	s := newTestServer(t, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(s, httptest.NewRequest(http.MethodPost, "/api/import/requests", strings.NewReader(tt.body)))

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (%s)", rec.Code, rec.Body.String())
			}
			if got := decodeError(t, rec).Code; got != "VAL001" {
				t.Errorf("code = %s, want VAL001", got)
			}
		})
	}
}

// =============================================================================
// Cross-cutting middleware
// =============================================================================

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) {
		c.Rate.Enabled = true
		c.Rate.RequestsPerMinute = 2
	})

	for i := 0; i < 2; i++ {
		if rec := serve(s, httptest.NewRequest(http.MethodGet, "/healthz", nil)); rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i+1, rec.Code)
		}
	}

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "60" {
		t.Errorf("Retry-After = %q", rec.Header().Get("Retry-After"))
	}
	if got := decodeError(t, rec).Code; got != "RATE001" {
		t.Errorf("code = %s, want RATE001", got)
	}
}

func TestRateLimit_ImportBudget(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) {
		c.Rate.Enabled = true
		c.Rate.ImportLimit = 1
	})
	data := questionWorkbook(t)

	if rec := serve(s, uploadRequest(t, "a.xlsx", data)); rec.Code != http.StatusOK {
		t.Fatalf("first preview status = %d", rec.Code)
	}
	if rec := serve(s, uploadRequest(t, "b.xlsx", data)); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second preview status = %d, want 429", rec.Code)
	}
	if rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/formats", nil)); rec.Code != http.StatusOK {
		t.Errorf("other routes should keep their own budget, got %d", rec.Code)
	}
}

func TestRateLimiter_WindowReset(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := newRateLimiter(1, time.Minute)
	rl.now = func() time.Time { return now }

	if !rl.allow("192.0.2.1") {
		t.Fatal("first request denied")
	}
	if rl.allow("192.0.2.1") {
		t.Fatal("second request allowed within window")
	}
	if !rl.allow("192.0.2.2") {
		t.Error("budgets must be per IP")
	}

	now = now.Add(61 * time.Second)
	if !rl.allow("192.0.2.1") {
		t.Error("request denied after window reset")
	}

	now = now.Add(3 * time.Minute)
	rl.prune()
	if len(rl.visitors) != 0 {
		t.Errorf("stale visitors not pruned: %d left", len(rl.visitors))
	}
}

func TestAPIKeyRequired(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) {
		c.Security.RequireAPIKey = true
		c.Security.APIKeys = []string{"secret"}
	})

	if rec := serve(s, httptest.NewRequest(http.MethodGet, "/healthz", nil)); rec.Code != http.StatusOK {
		t.Errorf("/healthz status = %d, must stay open", rec.Code)
	}
	if rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/formats", nil)); rec.Code != http.StatusUnauthorized {
		t.Errorf("/api/formats without key status = %d, want 401", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/formats", nil)
	req.Header.Set("Authorization", "Bearer secret")
	if rec := serve(s, req); rec.Code != http.StatusOK {
		t.Errorf("/api/formats with key status = %d", rec.Code)
	}
}

func TestCORS(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) {
		c.Security.AllowedOrigins = []string{"https://exam.example.com"}
	})

	req := httptest.NewRequest(http.MethodGet, "/api/formats", nil)
	req.Header.Set("Origin", "https://exam.example.com")
	rec := serve(s, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://exam.example.com" {
		t.Errorf("Allow-Origin = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/formats", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = serve(s, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Allow-Origin for unknown origin = %q", got)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: 11 bytes", core.ErrFileTooLarge), http.StatusRequestEntityTooLarge},
		{core.ErrEmptyFile, http.StatusBadRequest},
		{core.ErrTooManyImports, http.StatusServiceUnavailable},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{context.Canceled, 499},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
