package httpserver

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRootRedirects(t *testing.T) {
	mux := http.NewServeMux()
	RegisterStaticRoutes(mux, t.TempDir(), "")

	tests := []struct {
		name   string
		target string
		ua     string
		want   string
	}{
		{"desktop", "/", "Mozilla/5.0 (X11; Linux x86_64)", "/web/"},
		{"phone", "/", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0)", "/web_mobile/"},
		{"override", "/?view=desktop", "Mozilla/5.0 (Linux; Android 14)", "/web/?view=desktop"},
		{"share link", "/?share=abc", "", "/web/?share=abc"},
		{"bare dir", "/web_mobile", "", "/web_mobile/"},
		{"bare dir with share", "/web?share=abc", "", "/web/?share=abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			req.Header.Set("User-Agent", tt.ua)
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)
			if rr.Code != http.StatusFound {
				t.Fatalf("status: got=%d want=%d", rr.Code, http.StatusFound)
			}
			if got := rr.Header().Get("Location"); got != tt.want {
				t.Fatalf("location: got=%s want=%s", got, tt.want)
			}
		})
	}

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/missing", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("unknown path: got=%d want=%d", rr.Code, http.StatusNotFound)
	}
}

func TestStaticFilesAndCookie(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o644); err != nil {
		t.Fatal(err)
	}
	srv := NewServer(dir, "")

	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/web/app.js", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "console.log") {
		t.Fatalf("static file: %d %q", rr.Code, rr.Body.String())
	}
	if rr.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatalf("missing nosniff header")
	}

	rr = httptest.NewRecorder()
	srv.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/?view=m", nil))
	if !strings.Contains(rr.Header().Get("Set-Cookie"), viewCookieName+"=mobile") {
		t.Fatalf("view not remembered: %q", rr.Header().Get("Set-Cookie"))
	}

	rr = httptest.NewRecorder()
	srv.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("healthz: got=%d", rr.Code)
	}

	rr = httptest.NewRecorder()
	srv.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/new_game", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("api through server: got=%d", rr.Code)
	}
}
