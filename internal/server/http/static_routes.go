package httpserver

import (
	"net/http"
	"strings"
)

const viewCookieName = "kniazhych_view"

const htmlCSP = "default-src 'self'; script-src 'self'; style-src 'self'; img-src 'self' data:; connect-src 'self'; frame-ancestors 'none'; base-uri 'none'; form-action 'self'"

type view string

const (
	viewDesktop view = "web"
	viewMobile  view = "mobile"
)

func (v view) prefix() string {
	if v == viewMobile {
		return "/web_mobile/"
	}
	return "/web/"
}

// RegisterStaticRoutes mounts the desktop UI on /web/, the mobile UI on
// /web_mobile/ and redirects / to one of them. The query string survives the
// redirect, so shared links of the form /?share=<token> keep working.
func RegisterStaticRoutes(mux *http.ServeMux, desktopDir string, mobileDir string) {
	if mux == nil {
		return
	}
	if desktopDir == "" {
		desktopDir = "."
	}
	if mobileDir == "" {
		mobileDir = desktopDir
	}

	mux.Handle("/web/", staticDir("/web/", desktopDir))
	mux.Handle("/web_mobile/", staticDir("/web_mobile/", mobileDir))

	// Exact patterns win over the mux's own 301 to the subtree, so the bare
	// directory names get the same 302 and keep their query.
	for _, dir := range []string{"/web", "/web_mobile"} {
		mux.HandleFunc(dir, func(w http.ResponseWriter, r *http.Request) {
			redirectKeepingQuery(w, r, dir+"/")
		})
	}

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Vary", "User-Agent, Cookie")
		redirectKeepingQuery(w, r, pickView(w, r).prefix())
	})
}

func redirectKeepingQuery(w http.ResponseWriter, r *http.Request, target string) {
	if q := r.URL.RawQuery; q != "" {
		target += "?" + q
	}
	http.Redirect(w, r, target, http.StatusFound)
}

func staticDir(prefix, dir string) http.Handler {
	fs := http.StripPrefix(prefix, http.FileServer(http.Dir(dir)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", htmlCSP)
		w.Header().Set("X-Content-Type-Options", "nosniff")
		fs.ServeHTTP(w, r)
	})
}

// pickView: explicit ?view= first, then the remembered cookie, then the User-Agent.
func pickView(w http.ResponseWriter, r *http.Request) view {
	if v, ok := parseView(r.URL.Query().Get("view")); ok {
		http.SetCookie(w, &http.Cookie{
			Name:     viewCookieName,
			Value:    string(v),
			Path:     "/",
			MaxAge:   30 * 24 * 60 * 60,
			SameSite: http.SameSiteLaxMode,
		})
		return v
	}
	if c, err := r.Cookie(viewCookieName); err == nil {
		if v, ok := parseView(c.Value); ok {
			return v
		}
	}
	if isMobileUA(r.UserAgent()) {
		return viewMobile
	}
	return viewDesktop
}

func parseView(v string) (view, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "web", "desktop", "pc":
		return viewDesktop, true
	case "mobile", "m", "phone", "web_mobile":
		return viewMobile, true
	default:
		return "", false
	}
}

var mobileUANeedles = []string{"android", "iphone", "ipad", "ipod", "mobile", "windows phone"}

func isMobileUA(ua string) bool {
	s := strings.ToLower(ua)
	for _, n := range mobileUANeedles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
