package api

import (
	"crypto/subtle"
	"net/http"

	"github.com/vmunix/massflix/internal/ingest"
)

// requireScannerToken wraps a handler and rejects requests without the
// configured scanner token. A no-op when no token is configured.
func (s *Server) requireScannerToken(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.ScannerToken != "" {
			got := r.Header.Get(ingest.TokenHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(s.cfg.ScannerToken)) != 1 {
				writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing or invalid scanner token")
				return
			}
		}
		next(w, r)
	}
}
