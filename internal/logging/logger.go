package logging

import (
	"log/slog"
	"os"
)

// Setup installs a JSON stdout logger as the process default. Once the
// database is up, main swaps it for a MultiHandler that also feeds the
// system_logs table.
func Setup() {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, opts)))
}
