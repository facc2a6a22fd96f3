// Package profiling exposes the net/http/pprof endpoints on a localhost
// side port. Disabled unless ENABLE_PROFILING=true, so production binaries
// opt in explicitly.
package profiling

import (
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/quipshot/phrase-gate/internal/logging"
)

const defaultPort = "6060"

// Start launches the pprof server in a goroutine when profiling is enabled.
// The listener binds to localhost only; profiles are reachable under
// /debug/pprof/ on the side port (PPROF_PORT, default 6060).
func Start(logger logging.Logger) {
	if os.Getenv("ENABLE_PROFILING") != "true" {
		return
	}

	port := os.Getenv("PPROF_PORT")
	if port == "" {
		port = defaultPort
	}
	addr := "localhost:" + port

	go func() {
		logger.Info("pprof server listening", logging.String("address", addr))
		//nolint:gosec // debug-only listener, localhost-bound and off by default
		if err := http.ListenAndServe(addr, nil); err != nil {
			logger.Warn("pprof server stopped", logging.Error(err))
		}
	}()
}
