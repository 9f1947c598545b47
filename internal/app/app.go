// Package app runs the interactive viewer: window, event loop and the
// session holding the displayed mesh.
package app

import (
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/objview/internal/config"
	"github.com/Faultbox/objview/internal/engine/camera"
	"github.com/Faultbox/objview/internal/engine/debug"
	"github.com/Faultbox/objview/internal/engine/input"
	"github.com/Faultbox/objview/internal/engine/model"
	"github.com/Faultbox/objview/internal/engine/renderer"
	"github.com/Faultbox/objview/internal/engine/window"
	"github.com/Faultbox/objview/internal/logger"
	"github.com/Faultbox/objview/internal/prompt"
	"github.com/Faultbox/objview/internal/viewer"
	"github.com/Faultbox/objview/pkg/math"
)

// App is the main viewer instance.
type App struct {
	config   *config.Config
	running  bool
	camera   camera.Camera
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	ctrl     *viewer.Controller
	shots    *debug.Screenshotter
}

// uploader adapts the renderer to viewer.Uploader.
type uploader struct {
	r *renderer.Renderer
}

func (u uploader) Upload(m *model.Mesh) (viewer.Handle, error) {
	gpu, err := u.r.Upload(m)
	if err != nil {
		return nil, err
	}
	return gpu, nil
}

// New creates the window, GL renderer and an empty session.
func New(cfg *config.Config, p prompt.Prompter, out io.Writer) (*App, error) {
	logger.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	a := &App{
		config: cfg,
		camera: camera.FromConfig(cfg.Camera),
	}

	// Creates the GL context as well.
	var err error
	a.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	width, height := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:       width,
		Height:      height,
		ClearColor:  cfg.Render.ClearColor,
		MeshColor:   cfg.Render.MeshColor,
		PolygonMode: cfg.Render.PolygonMode,
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.input = input.New()
	a.shots = debug.NewScreenshotter(cfg.Render.ScreenshotDir, "objview")

	session := viewer.NewSession(
		uploader{a.renderer},
		model.LoadOptions{Normalize: cfg.Model.Normalize},
		a.mvp(width, height),
	)
	a.ctrl = &viewer.Controller{
		Session:  session,
		Prompter: p,
		Modes:    a.renderer,
		Out:      out,
	}

	logger.Info("viewer initialized")
	return a, nil
}

func (a *App) mvp(width, height int) math.Mat4 {
	return a.camera.MVP(math.Identity(), camera.Aspect(width, height))
}

// Open loads the first mesh. An explicit path is tried once; after that, or
// without one, the user is prompted until a mesh loads.
func (a *App) Open(path string) error {
	if path != "" {
		err := a.ctrl.Open(path)
		if err == nil {
			return nil
		}
		logger.Warn("startup model could not be loaded", zap.String("path", path), zap.Error(err))
	}
	if err := a.ctrl.PromptAndOpen(); err != nil {
		return fmt.Errorf("no model to show: %w", err)
	}
	return nil
}

// Run starts the main loop. It returns when the window is closed or Esc is
// pressed.
func (a *App) Run() error {
	a.running = true
	a.updateTitle()

	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting render loop")

	for a.running {
		if a.input.Update() {
			a.running = false
			break
		}

		for _, event := range a.input.Events() {
			if err := a.handle(event); err != nil {
				return err
			}
			if !a.running {
				break
			}
		}
		if !a.running {
			break
		}

		a.render()
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (a *App) handle(event input.Event) error {
	switch event.Type {
	case input.EventQuit:
		a.running = false

	case input.EventWindowResize:
		width, height := a.window.DrawableSize()
		a.renderer.Resize(width, height)
		if err := a.ctrl.Session.SetTransform(a.mvp(width, height)); err != nil {
			return fmt.Errorf("re-uploading mesh after resize: %w", err)
		}

	case input.EventKeyDown:
		if event.Key == input.KeyF12 {
			a.screenshot()
			return nil
		}
		quit, err := a.ctrl.Execute(commandForKey(event.Key))
		if event.Key == input.KeyTab {
			// Keys typed into a console prompt must not reach the window.
			a.input.Flush()
			a.window.Raise()
		}
		a.updateTitle()
		if err != nil {
			logger.Warn("command failed", zap.Stringer("key", event.Key), zap.Error(err))
		}
		if quit {
			a.running = false
		}
	}
	return nil
}

func (a *App) screenshot() {
	pixels, width, height := a.renderer.ReadPixels()
	path, err := a.shots.Save(pixels, width, height)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

func commandForKey(k input.Key) viewer.Command {
	switch k {
	case input.KeyEscape:
		return viewer.CommandQuit
	case input.KeyTab:
		return viewer.CommandOpen
	case input.KeyF1:
		return viewer.CommandPoints
	case input.KeyF2:
		return viewer.CommandLines
	case input.KeyF3:
		return viewer.CommandFill
	default:
		return viewer.CommandNone
	}
}

func (a *App) updateTitle() {
	a.window.SetTitle(windowTitle(a.config.Window.Title, a.ctrl.Session.Path(), a.renderer.PolygonMode()))
}

// windowTitle shows the loaded file and the rasterization mode.
func windowTitle(base, path, mode string) string {
	if path == "" {
		return fmt.Sprintf("%s [%s]", base, mode)
	}
	return fmt.Sprintf("%s - %s [%s]", base, path, mode)
}

func (a *App) render() {
	a.renderer.Begin()
	if gpu, ok := a.ctrl.Session.GPU().(*renderer.GPUMesh); ok {
		a.renderer.Draw(gpu)
	}
}

// Close releases the mesh and tears down GL and the window.
func (a *App) Close() {
	logger.Info("closing viewer")

	if a.ctrl != nil {
		a.ctrl.Session.Close()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
