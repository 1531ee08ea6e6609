package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/scorepager/pkg/errors"
	scoreio "github.com/matzehuels/scorepager/pkg/io"
	"github.com/matzehuels/scorepager/pkg/observability"
	"github.com/matzehuels/scorepager/pkg/session"
)

// fiveStaves is a score of five 100x20 staves, each on its own source page.
const fiveStaves = `{"version": 1, "title": "etudes", "staves": [
	{"page": 0, "start": {"x": 0, "y": 0}, "end": {"x": 100, "y": 20}},
	{"page": 1, "start": {"x": 0, "y": 0}, "end": {"x": 100, "y": 20}},
	{"page": 2, "start": {"x": 0, "y": 0}, "end": {"x": 100, "y": 20}},
	{"page": 3, "start": {"x": 0, "y": 0}, "end": {"x": 100, "y": 20}},
	{"page": 4, "start": {"x": 0, "y": 0}, "end": {"x": 100, "y": 20}}
]}`

func newTestServer() *Server {
	return New(nil, session.NewMemoryStore(), nil)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response: %v\n%s", err, rec.Body.String())
	}
	return v
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) errors.Code {
	t.Helper()
	return decode[errorBody](t, rec).Error.Code
}

func TestHealthAndVersion(t *testing.T) {
	s := newTestServer()

	rec := do(t, s, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "ok") {
		t.Errorf("GET /healthz = %d %s", rec.Code, rec.Body.String())
	}

	rec = do(t, s, http.MethodGet, "/version", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"version"`) {
		t.Errorf("GET /version = %d %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestLayout(t *testing.T) {
	s := newTestServer()
	body := fmt.Sprintf(`{"score": %s, "options": {"width": 1000, "height": 100, "mode": "zoom", "zoom": 1}}`, fiveStaves)

	rec := do(t, s, http.MethodPost, "/v1/layout", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /v1/layout = %d %s", rec.Code, rec.Body.String())
	}
	doc := decode[scoreio.LayoutDocument](t, rec)
	if doc.ID == "" || doc.Title != "etudes" {
		t.Errorf("ID/Title = %q/%q", doc.ID, doc.Title)
	}
	if doc.CanvasWidth != 1000 || doc.CanvasHeight != 100 || doc.Scale != 1 {
		t.Errorf("canvas/scale = %v x %v @ %v", doc.CanvasWidth, doc.CanvasHeight, doc.Scale)
	}
	if len(doc.Pages) != 1 || len(doc.Pages[0].Staves) != 5 {
		t.Fatalf("unexpected pages: %+v", doc.Pages)
	}
	for i, st := range doc.Pages[0].Staves {
		if st.Index != i || st.X != 450 || st.Height != 20 {
			t.Errorf("staff %d = %+v", i, st)
		}
	}
}

func TestLayoutErrors(t *testing.T) {
	s := newTestServer()

	tests := []struct {
		name   string
		body   string
		status int
		code   errors.Code
	}{
		{"malformed body", `{"score":`, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"missing score", `{"options": {}}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"empty score", `{"score": {"version": 1, "staves": []}}`, http.StatusBadRequest, errors.ErrCodeEmptyScore},
		{"future version", `{"score": {"version": 7, "staves": []}}`, http.StatusBadRequest, errors.ErrCodeUnsupported},
		{"bad canvas", fmt.Sprintf(`{"score": %s, "options": {"width": -5}}`, fiveStaves), http.StatusBadRequest, errors.ErrCodeInvalidCanvas},
		{"bad mode", fmt.Sprintf(`{"score": %s, "options": {"mode": "fit"}}`, fiveStaves), http.StatusBadRequest, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/v1/layout", tt.body)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d (%s)", rec.Code, tt.status, rec.Body.String())
			}
			if got := errorCode(t, rec); got != tt.code {
				t.Errorf("code = %s, want %s", got, tt.code)
			}
		})
	}
}

func TestScale(t *testing.T) {
	s := newTestServer()
	body := fmt.Sprintf(`{"score": %s, "options": {"width": 1000, "height": 90, "mode": "staves", "staves": 4}}`, fiveStaves)

	rec := do(t, s, http.MethodPost, "/v1/scale", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /v1/scale = %d %s", rec.Code, rec.Body.String())
	}
	got := decode[ScaleResponse](t, rec)
	if got.Mode != "staves" || got.Target != 4 {
		t.Errorf("mode/target = %s/%v", got.Mode, got.Target)
	}
	if d := got.Scale - 1; d > 1e-9 || d < -1e-9 {
		t.Errorf("scale = %v, want 1", got.Scale)
	}

	rec = do(t, s, http.MethodPost, "/v1/scale", fmt.Sprintf(`{"score": %s, "options": {"mode": "columns", "columns": -1}}`, fiveStaves))
	if rec.Code != http.StatusBadRequest || errorCode(t, rec) != errors.ErrCodeInvalidTarget {
		t.Errorf("negative target = %d %s", rec.Code, rec.Body.String())
	}
}

func TestSessions(t *testing.T) {
	s := newTestServer()
	path := "/v1/sessions/partita"

	rec := do(t, s, http.MethodGet, path, "")
	if rec.Code != http.StatusNotFound || errorCode(t, rec) != errors.ErrCodeSessionNotFound {
		t.Fatalf("GET missing = %d %s", rec.Code, rec.Body.String())
	}

	rec = do(t, s, http.MethodPut, path, `{"staff": 3, "options": {"mode": "staves", "staves": 5}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT = %d %s", rec.Code, rec.Body.String())
	}
	created := decode[session.Session](t, rec)
	if created.ScoreID != "partita" || created.Staff != 3 || created.Options.Staves != 5 {
		t.Errorf("PUT returned %+v", created)
	}

	rec = do(t, s, http.MethodPut, path, `{"staff": 9}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("second PUT = %d %s", rec.Code, rec.Body.String())
	}
	if updated := decode[session.Session](t, rec); updated.ID != created.ID || updated.Staff != 9 {
		t.Errorf("second PUT returned %+v, want same ID at staff 9", updated)
	}

	rec = do(t, s, http.MethodGet, path, "")
	if rec.Code != http.StatusOK || decode[session.Session](t, rec).Staff != 9 {
		t.Errorf("GET = %d %s", rec.Code, rec.Body.String())
	}

	rec = do(t, s, http.MethodPut, path, `{"staff": -2}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("PUT negative staff = %d, want 400", rec.Code)
	}

	rec = do(t, s, http.MethodDelete, path, "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("DELETE = %d, want 204", rec.Code)
	}
	rec = do(t, s, http.MethodGet, path, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET after DELETE = %d, want 404", rec.Code)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New(errors.ErrCodeInvalidStaff, "x"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeMissingPieceStart, "x"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeNotFound, "x"), http.StatusNotFound},
		{errors.New(errors.ErrCodeSessionNotFound, "x"), http.StatusNotFound},
		{errors.New(errors.ErrCodeInternal, "x"), http.StatusInternalServerError},
		{fmt.Errorf("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	mu       sync.Mutex
	statuses []int
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses = append(h.statuses, status)
}

func TestRequestHooks(t *testing.T) {
	h := &recordingHTTPHooks{}
	observability.SetHTTPHooks(h)
	defer observability.Reset()

	s := newTestServer()
	do(t, s, http.MethodGet, "/healthz", "")
	do(t, s, http.MethodGet, "/v1/sessions/missing", "")

	if len(h.statuses) != 2 || h.statuses[0] != http.StatusOK || h.statuses[1] != http.StatusNotFound {
		t.Errorf("statuses = %v, want [200 404]", h.statuses)
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("cannot listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := newTestServer()

	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/healthz"
	var resp *http.Response
	for range 50 {
		resp, err = http.Get(url)
		if err == nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

