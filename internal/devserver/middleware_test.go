package devserver

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bft-labs/chatshell/pkg/log"
)

func TestWithRecovery(t *testing.T) {
	h := withRecovery(log.NewNoopLogger(), http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestWithRecovery_AbortHandler(t *testing.T) {
	h := withRecovery(log.NewNoopLogger(), http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	defer func() {
		if r := recover(); r != http.ErrAbortHandler {
			t.Errorf("recovered %v, want http.ErrAbortHandler re-panicked", r)
		}
	}()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}

type captureLogger struct {
	log.NoopLogger
	fields map[string]any
}

func (c *captureLogger) Info(_ string, fields ...log.Field) {
	c.fields = make(map[string]any)
	for _, f := range fields {
		c.fields[f.Key] = f.Value
	}
}

func TestWithAccessLog(t *testing.T) {
	logger := &captureLogger{}
	h := withRequestID(withAccessLog(logger, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("tea"))
	})))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ask?secret=1", nil))

	if logger.fields["status"] != http.StatusTeapot || logger.fields["bytes"] != 3 {
		t.Errorf("logged fields = %v", logger.fields)
	}
	if logger.fields["path"] != "/ask" {
		t.Errorf("path = %v, want /ask without query", logger.fields["path"])
	}
	if id, _ := logger.fields["request_id"].(string); id == "" {
		t.Error("request_id not logged")
	}
}

func TestWithAccessLog_SkipsHealthz(t *testing.T) {
	logger := &captureLogger{}
	h := withAccessLog(logger, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if logger.fields != nil {
		t.Errorf("healthz was logged: %v", logger.fields)
	}
}

func TestWithRequestID_LeavesRequestUntouched(t *testing.T) {
	var inbound string
	var fromCtx string
	h := withRequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		inbound = r.Header.Get(RequestIDHeader)
		fromCtx = RequestID(r.Context())
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/chat", nil))
	if inbound != "" {
		t.Errorf("request header set to %q, want untouched", inbound)
	}
	if fromCtx == "" || fromCtx != rec.Header().Get(RequestIDHeader) {
		t.Errorf("context id %q, response id %q", fromCtx, rec.Header().Get(RequestIDHeader))
	}
}
