package adapthttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"

	"emberguard/internal/app"
	"emberguard/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{"error": err.Error()})
}

// writeServiceError maps service errors to statuses. Anything unrecognised is
// logged and reported as a 500 without detail.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, app.ErrCartItemNotFound):
		writeJSON(w, http.StatusNotFound, map[string]any{"error": err.Error(), "found": false})
	case errors.Is(err, app.ErrProductNotFound), errors.Is(err, app.ErrBundleNotFound), errors.Is(err, app.ErrTaskNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, app.ErrEmptyCart):
		writeError(w, http.StatusConflict, err)
	case errors.Is(err, domain.ErrInvalidProduct):
		writeError(w, http.StatusUnprocessableEntity, err)
	default:
		s.logger.WithError(err).WithField("path", r.URL.Path).Error("request failed")
		writeError(w, http.StatusInternalServerError, errors.New("internal error"))
	}
}

func parseJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("invalid json: empty body")
		}
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

func errMissingField(name string) error {
	return fmt.Errorf("missing field %q", name)
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
}

func withNoCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

func spaFromDisk(dir string) http.Handler {
	fileServer := http.FileServer(http.Dir(dir))
	indexPath := path.Join(dir, "index.html")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqPath := path.Clean(r.URL.Path)
		if reqPath == "/" {
			http.ServeFile(w, r, indexPath)
			return
		}

		staticPath := path.Join(dir, reqPath)
		if _, err := os.Stat(staticPath); err == nil {
			fileServer.ServeHTTP(w, r)
			return
		}

		http.ServeFile(w, r, indexPath)
	})
}
