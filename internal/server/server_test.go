package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/lazypower/leitner/internal/leitner"
	"github.com/lazypower/leitner/internal/store"
)

type testEnv struct {
	srv   *Server
	db    *store.DB
	clock *leitner.FixedClock
}

func testServer(t *testing.T, opts ...func(*leitner.Options)) *testEnv {
	t.Helper()
	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	clock := &leitner.FixedClock{T: time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)}
	o := leitner.Options{
		Clock:             clock,
		Location:          time.UTC,
		DailyLimitEnabled: true,
		MaxNewPerDay:      20,
	}
	for _, fn := range opts {
		fn(&o)
	}
	sched, err := leitner.New(db.Profile("test"), o)
	if err != nil {
		t.Fatalf("leitner.New: %v", err)
	}
	return &testEnv{
		srv:   New(db, sched, "test", "test-version", zerolog.Nop()),
		db:    db,
		clock: clock,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	e.srv.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return v
}

func TestHealthEndpoint(t *testing.T) {
	env := testServer(t)

	w := env.do(t, "GET", "/api/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	body := decode[map[string]any](t, w)
	if body["status"] != "ok" {
		t.Errorf("status = %v, want ok", body["status"])
	}
	if body["version"] != "test-version" {
		t.Errorf("version = %v, want test-version", body["version"])
	}
	if body["profile"] != "test" {
		t.Errorf("profile = %v, want test", body["profile"])
	}
	if body["db"] != true {
		t.Errorf("db = %v, want true", body["db"])
	}
}

func TestUnknownRoute(t *testing.T) {
	env := testServer(t)

	w := env.do(t, "GET", "/api/nope", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestServerStats(t *testing.T) {
	env := testServer(t)

	id := leitner.NewCardID("Go", "", "What is a goroutine?")
	if _, err := env.srv.sched.RecordAnswer(id, leitner.Great); err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}
	st := env.srv.Stats()
	if st.Seen != 1 || st.PerBox[1] != 1 {
		t.Errorf("stats = %+v, want one card in box 1", st)
	}
}
