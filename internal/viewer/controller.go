package viewer

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/Faultbox/objview/internal/config"
	"github.com/Faultbox/objview/internal/engine/model"
	"github.com/Faultbox/objview/internal/logger"
	"github.com/Faultbox/objview/internal/prompt"
)

// Command is a user request handled by the Controller.
type Command int

const (
	CommandNone Command = iota
	CommandQuit
	CommandOpen
	CommandPoints
	CommandLines
	CommandFill
)

// PolygonModeSetter switches the rasterization mode.
type PolygonModeSetter interface {
	SetPolygonMode(mode string) error
}

// Controller ties a Session to a path prompt and a rasterizer.
type Controller struct {
	Session  *Session
	Prompter prompt.Prompter
	Modes    PolygonModeSetter
	Out      io.Writer // Receives the mesh summary after each load
}

// Execute runs cmd and reports whether the viewer should exit.
func (c *Controller) Execute(cmd Command) (quit bool, err error) {
	switch cmd {
	case CommandQuit:
		return true, nil
	case CommandOpen:
		openErr := c.PromptAndOpen()
		if errors.Is(openErr, prompt.ErrCancelled) {
			logger.Info("prompt cancelled, keeping current mesh", zap.String("path", c.Session.Path()))
			return false, nil
		}
		return false, openErr
	case CommandPoints:
		return false, c.Modes.SetPolygonMode(config.PolygonPoint)
	case CommandLines:
		return false, c.Modes.SetPolygonMode(config.PolygonLine)
	case CommandFill:
		return false, c.Modes.SetPolygonMode(config.PolygonFill)
	}
	return false, nil
}

// PromptAndOpen asks for paths until one loads or the prompt is cancelled.
func (c *Controller) PromptAndOpen() error {
	for {
		path, err := c.Prompter.Prompt()
		if err != nil {
			return err
		}

		err = c.Open(path)
		if err == nil {
			return nil
		}
		c.tell(failureMessage(err))
	}
}

// Open loads path into the session and prints its summary.
func (c *Controller) Open(path string) error {
	if err := c.Session.Open(path); err != nil {
		if !errors.Is(err, ErrAlreadyLoaded) {
			logger.Warn("failed to open mesh", zap.String("path", path), zap.Error(err))
		}
		return err
	}

	if c.Out != nil {
		fmt.Fprint(c.Out, model.Summarize(c.Session.Source()))
		fmt.Fprintln(c.Out)
		fmt.Fprintln(c.Out, "Press Esc to exit, Press Tab to render next file, F1/F2/F3 for points/lines/fill")
	}
	return nil
}

func (c *Controller) tell(msg string) {
	if t, ok := c.Prompter.(prompt.Teller); ok {
		t.Tell(msg)
	}
}

func failureMessage(err error) string {
	switch {
	case errors.Is(err, ErrAlreadyLoaded):
		return "Already rendered, please enter new one"
	case errors.Is(err, ErrNoPath):
		return "No path given"
	case errors.Is(err, ErrEmptyMesh):
		return "No triangles could be loaded from the file, please enter another one"
	case errors.Is(err, model.ErrCannotOpen):
		return "Failed to open file: " + err.Error()
	default:
		return "Failed to load mesh: " + err.Error()
	}
}
