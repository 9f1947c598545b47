// objview displays a Wavefront OBJ model in an OpenGL window.
package main

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/objview/internal/app"
	"github.com/Faultbox/objview/internal/config"
	"github.com/Faultbox/objview/internal/logger"
	"github.com/Faultbox/objview/internal/prompt"
	"github.com/Faultbox/objview/internal/prompt/filedialog"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== OBJ Viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	a, err := app.New(cfg, newPrompter(cfg), os.Stdout)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer a.Close()

	if err := a.Open(cfg.Model.Path); err != nil {
		if errors.Is(err, prompt.ErrCancelled) {
			logger.Info("no model chosen, exiting")
			return
		}
		logger.Error("failed to open model", zap.Error(err))
		exit(a, 1)
	}

	if err := a.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		exit(a, 1)
	}

	logger.Info("viewer closed normally")
}

// exit skips deferred calls, so the viewer and the log are closed here.
func exit(a *app.App, code int) {
	a.Close()
	logger.Sync()
	os.Exit(code)
}

func newPrompter(cfg *config.Config) prompt.Prompter {
	if cfg.Prompt.Mode == config.PromptDialog {
		return filedialog.New(cfg.Window.Title)
	}
	return prompt.NewConsole(os.Stdin, os.Stdout)
}
