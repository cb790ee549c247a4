// Command crakhack-admin queries the analytics provider with the server's configuration.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/crakhack/crakhack-web/internal/bootstrap"
)

func main() {
	logger := bootstrap.InitLogger(slog.LevelWarn)

	root := newRootCmd(loadServices)
	if err := root.ExecuteContext(context.Background()); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal failure to shell scripts
	}
}
