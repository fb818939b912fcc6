package adapthttp

import (
	"net/http"
	"net/http/httptest"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestLoggingMiddleware(t *testing.T) {
	logger, hook := test.NewNullLogger()
	s := &Server{logger: logger}

	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("OK"))
	})
	handler := s.loggingMiddleware(nextHandler)

	req := httptest.NewRequest(http.MethodGet, "/test-path", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusTeapot {
		t.Errorf("Expected status %d, got %d", http.StatusTeapot, w.Code)
	}

	entry := hook.LastEntry()
	if entry == nil {
		t.Fatal("expected a log entry")
	}
	if entry.Level != log.WarnLevel {
		t.Errorf("expected warn level for 4xx, got %s", entry.Level)
	}
	if entry.Data["method"] != http.MethodGet || entry.Data["path"] != "/test-path" || entry.Data["status"] != http.StatusTeapot {
		t.Errorf("log entry missing expected fields. Got: %v", entry.Data)
	}
}

func TestWorkspaceMiddlewareIssuesCookie(t *testing.T) {
	s := &Server{}
	var seen string
	handler := s.workspaceMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = workspaceID(r)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cart", nil))
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != workspaceCookie || cookies[0].Value != seen || seen == "" {
		t.Fatalf("expected sid cookie matching %q, got %v", seen, cookies)
	}

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if len(w.Result().Cookies()) != 0 {
		t.Error("existing sid should not be reissued")
	}

	req = httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: workspaceCookie, Value: "not-a-uuid"})
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if seen == "not-a-uuid" || len(w.Result().Cookies()) != 1 {
		t.Error("malformed sid should be replaced")
	}
}
