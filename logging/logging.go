// Package logging provides the slog loggers used by the generator: compact
// JSON for normal runs, pretty-printed JSON when verbose output is wanted.
package logging

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"time"
)

// PrettyJSONHandler pretty prints records for interactive use.
type PrettyJSONHandler struct {
	*slog.JSONHandler
	writer io.Writer
}

func (h *PrettyJSONHandler) Handle(ctx context.Context, r slog.Record) error {
	attrs := make(map[string]interface{})
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	attrs["time"] = r.Time.Format(time.RFC3339)
	attrs["level"] = r.Level.String()
	attrs["msg"] = r.Message

	prettyJSON, err := json.MarshalIndent(attrs, "", "  ")
	if err != nil {
		return err
	}

	_, err = h.writer.Write(append(prettyJSON, '\n'))
	return err
}

func newPrettyJSONHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyJSONHandler {
	return &PrettyJSONHandler{
		JSONHandler: slog.NewJSONHandler(w, opts),
		writer:      w,
	}
}

// ProdLogger emits compact JSON at info level.
var ProdLogger = slog.New(slog.NewJSONHandler(os.Stderr, nil))

// DevLogger pretty prints and keeps debug records.
var DevLogger = slog.New(newPrettyJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

// New returns the logger for a generator run: DevLogger for verbose runs,
// ProdLogger otherwise.
func New(verbose bool) *slog.Logger {
	if verbose {
		return DevLogger
	}
	return ProdLogger
}

// NewWriter returns a compact JSON logger targeting w. Tests use it to
// capture generator output.
func NewWriter(w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, nil))
}
