package log_test

import (
	"log/slog"
	"os"

	"github.com/ardnew/jexpr/log"
)

func ExampleMake() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelDebug),
		log.WithPretty(true),
		log.WithTimeLayout("none"))

	logger.Debug("filter applied", slog.String("name", "tojson"), slog.Int("indent", 2))
	// Output:
	// DEBUG  filter applied name=tojson indent=2
}
