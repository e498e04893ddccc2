package server

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gogpu/logotype"
)

var errBadParam = errors.New("bad parameter")

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Logo Generator</title></head>
<body>
<form action="/" method="get">
  <input type="text" name="text" value="{{.Text}}" placeholder="Enter text" autofocus>
  <select name="preset">
  {{- range .Presets}}
    <option value="{{.}}"{{if eq . $.Preset}} selected{{end}}>{{.}}</option>
  {{- end}}
  </select>
  <button type="submit">Generate</button>
</form>
{{- if .Text}}
<p><img src="{{.ImageURL}}" alt="{{.Text}}"></p>
<p><a href="{{.DownloadURL}}">Download</a></p>
{{- end}}
</body>
</html>
`))

type indexData struct {
	Text    string
	Preset  string
	Presets []string

	ImageURL    template.URL
	DownloadURL template.URL
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if !allowGet(w, r) {
		return
	}

	q := r.URL.Query()
	data := indexData{
		Text:    q.Get("text"),
		Preset:  q.Get("preset"),
		Presets: s.renderer.Presets(),
	}
	if data.Preset == "" {
		data.Preset = s.renderer.DefaultPreset()
	}
	if data.Text != "" {
		query := url.Values{"text": {data.Text}, "preset": {data.Preset}}.Encode()
		data.ImageURL = template.URL("/img?" + query)
		data.DownloadURL = template.URL("/generate-logo?" + query)
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		http.Error(w, fmt.Sprintf("template: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleImage(attachment bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !allowGet(w, r) {
			return
		}
		req, err := parseRequest(r.URL.Query())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		data, err := s.renderPNG(r, req)
		if err != nil {
			status := http.StatusInternalServerError
			if logotype.IsInvalidRequest(err) {
				status = http.StatusBadRequest
			} else {
				logotype.Logger().Error("logod: render failed", "path", r.URL.Path, "err", err)
			}
			http.Error(w, err.Error(), status)
			return
		}

		h := w.Header()
		h.Set("Content-Type", "image/png")
		h.Set("Content-Length", strconv.Itoa(len(data)))
		h.Set("Cache-Control", "no-store")
		if attachment {
			h.Set("Content-Disposition", `attachment; filename="logo.png"`)
		}
		_, _ = w.Write(data)
	}
}

// renderPNG encodes req fully before anything is written to the response.
func (s *Server) renderPNG(r *http.Request, req logotype.Request) ([]byte, error) {
	render := func() ([]byte, error) {
		var buf bytes.Buffer
		if err := s.renderer.RenderPNG(r.Context(), &buf, req); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	if s.opts.Cache == nil {
		return render()
	}
	return s.opts.Cache.GetOrRender(cacheKey(req), render)
}

func cacheKey(req logotype.Request) string {
	return fmt.Sprintf("%q|%q|%q|%d|%d", req.Preset, req.Text, req.Background, req.Width, req.Height)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// parseRequest maps query parameters onto a render request. "text" wins over
// "name"; underscores in "name" become spaces.
func parseRequest(q url.Values) (logotype.Request, error) {
	req := logotype.Request{
		Text:       q.Get("text"),
		Preset:     q.Get("preset"),
		Background: q.Get("background"),
	}
	if req.Text == "" {
		req.Text = logotype.NameToText(q.Get("name"))
	}

	var err error
	if req.Width, err = intParam(q, "width"); err != nil {
		return req, err
	}
	if req.Height, err = intParam(q, "height"); err != nil {
		return req, err
	}
	return req, nil
}

func intParam(q url.Values, key string) (int, error) {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", key, v, errBadParam)
	}
	return n, nil
}

func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set("Allow", "GET, HEAD")
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	return false
}

// statusRecorder captures the status code for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logotype.Logger().Info("logod: request",
			"method", r.Method, "path", r.URL.Path,
			"status", rec.status, "duration", time.Since(start))
	})
}

func recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logotype.Logger().Error("logod: panic", "path", r.URL.Path, "panic", rec)
				http.Error(w, fmt.Sprintf("panic: %v", rec), http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
