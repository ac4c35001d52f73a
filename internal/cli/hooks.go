package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ossinfo/pkg/observability"
)

// debugHTTPHooks logs repository requests at debug level.
type debugHTTPHooks struct {
	logger *log.Logger
}

func (h *debugHTTPHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("request", "method", method, "host", host, "path", path)
}

func (h *debugHTTPHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("response", "host", host, "path", path, "status", status, "took", d.Round(time.Millisecond))
}

func (h *debugHTTPHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("request failed", "host", host, "path", path, "err", err)
}

var _ observability.HTTPHooks = (*debugHTTPHooks)(nil)
