package app

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testApp() *App {
	a := New(slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	a.router.HandleFunc("GET /ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return a
}

func TestHandlerBasePath(t *testing.T) {
	tests := []struct {
		name     string
		basePath string
		path     string
		want     int
	}{
		{"no base path", "", "/ping", http.StatusNoContent},
		{"prefixed path", "/api", "/api/ping", http.StatusNoContent},
		{"prefix required once set", "/api", "/ping", http.StatusNotFound},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			h := testApp().handler(test.basePath)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, test.path, nil))
			assert.Equal(t, test.want, rec.Code)
		})
	}
}
