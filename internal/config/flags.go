package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagModel       = flag.String("model", "", "OBJ file to load at startup")
	flagNoNormalize = flag.Bool("no-normalize", false, "Keep model coordinates as written")
	flagDialog      = flag.Bool("dialog", false, "Pick files with a native dialog instead of the console")
	flagMode        = flag.String("mode", "", "Polygon mode: point, line or fill")
	flagFullscreen  = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth       = flag.Int("width", 0, "Window width")
	flagHeight      = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config. A bare positional
// argument is taken as the model path when -model is not given.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagModel != "" {
		cfg.Model.Path = *flagModel
	} else if flag.NArg() > 0 {
		cfg.Model.Path = flag.Arg(0)
	}
	if *flagNoNormalize {
		cfg.Model.Normalize = false
	}
	if *flagDialog {
		cfg.Prompt.Mode = PromptDialog
	}
	if *flagMode != "" {
		cfg.Render.PolygonMode = *flagMode
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
}
