// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Polygon modes accepted by render.polygon_mode.
const (
	PolygonPoint = "point"
	PolygonLine  = "line"
	PolygonFill  = "fill"
)

// Prompt modes accepted by prompt.mode.
const (
	PromptConsole = "console"
	PromptDialog  = "dialog"
)

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Camera  CameraConfig  `yaml:"camera"`
	Render  RenderConfig  `yaml:"render"`
	Model   ModelConfig   `yaml:"model"`
	Prompt  PromptConfig  `yaml:"prompt"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// CameraConfig describes the fixed camera used to project a loaded mesh.
type CameraConfig struct {
	Position [3]float32 `yaml:"position"`
	Target   [3]float32 `yaml:"target"`
	Up       [3]float32 `yaml:"up"`
	FOV      float32    `yaml:"fov"` // vertical, degrees
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
}

// RenderConfig holds rasterization settings.
type RenderConfig struct {
	PolygonMode string     `yaml:"polygon_mode"`
	ClearColor  [4]float32 `yaml:"clear_color"`
	MeshColor   [4]float32 `yaml:"mesh_color"`

	ScreenshotDir string `yaml:"screenshot_dir"` // F12 saves here
}

// ModelConfig holds mesh loading settings.
type ModelConfig struct {
	Path      string `yaml:"path"` // Loaded at startup; empty means prompt
	Normalize bool   `yaml:"normalize"`
}

// PromptConfig selects how a new model path is requested.
type PromptConfig struct {
	Mode string `yaml:"mode"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "OBJ Viewer",
			Width:  600,
			Height: 600,
			VSync:  true,
		},
		Camera: CameraConfig{
			Position: [3]float32{0, 0.5, 2},
			Target:   [3]float32{0, 0, 0},
			Up:       [3]float32{0, 1, 0},
			FOV:      40,
			Near:     0.1,
			Far:      100,
		},
		Render: RenderConfig{
			PolygonMode: PolygonLine,
			ClearColor:  [4]float32{0.44, 0.57, 0.75, 1},
			MeshColor:   [4]float32{1, 1, 1, 1},

			ScreenshotDir: "screenshots",
		},
		Model: ModelConfig{
			Normalize: true,
		},
		Prompt: PromptConfig{
			Mode: PromptConsole,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports every setting the viewer cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		errs = append(errs, fmt.Errorf("camera fov %v must be in (0, 180)", c.Camera.FOV))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera near/far %v/%v must satisfy 0 < near < far", c.Camera.Near, c.Camera.Far))
	}
	if c.Camera.Position == c.Camera.Target {
		errs = append(errs, errors.New("camera position and target coincide"))
	}
	switch c.Render.PolygonMode {
	case PolygonPoint, PolygonLine, PolygonFill:
	default:
		errs = append(errs, fmt.Errorf("unknown polygon mode %q", c.Render.PolygonMode))
	}
	switch c.Prompt.Mode {
	case PromptConsole, PromptDialog:
	default:
		errs = append(errs, fmt.Errorf("unknown prompt mode %q", c.Prompt.Mode))
	}

	return errors.Join(errs...)
}
