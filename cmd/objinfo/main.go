// objinfo inspects Wavefront OBJ files without opening a window.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Faultbox/objview/internal/config"
	"github.com/Faultbox/objview/internal/engine/model"
	"github.com/Faultbox/objview/internal/logger"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run dispatches one subcommand and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 1
	}

	command := args[0]
	args = args[1:]

	switch command {
	case "info":
		return cmdInfo(args, stdout, stderr)
	case "check":
		return cmdCheck(args, stdout, stderr)
	case "config":
		return cmdConfig(args, stdout, stderr)
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		printUsage(stderr)
		return 1
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `objinfo - Wavefront OBJ inspector

Usage:
  objinfo <command> [options]

Commands:
  info [-normalize] [-v] <file.obj>  Show vertex, triangle and bounds information
  check <file.obj>                   List every skipped line; exit 1 if any
  config [path]                      Write the default viewer config

Examples:
  objinfo info models/teapot.obj
  objinfo info -normalize models/teapot.obj
  objinfo check models/broken.obj
  objinfo config ./objview.yaml`)
}

func cmdInfo(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	fs.SetOutput(stderr)
	normalize := fs.Bool("normalize", false, "Normalize into the unit cube before reporting bounds")
	verbose := fs.Bool("v", false, "Log loader diagnostics to stderr")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "Usage: objinfo info [-normalize] [-v] <file.obj>")
		return 1
	}

	level := "error"
	if *verbose {
		level = "debug"
	}
	logger.InitWriter(level, stderr)

	m, err := model.Load(fs.Arg(0), model.LoadOptions{Normalize: *normalize})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "File: %s\n", fs.Arg(0))
	fmt.Fprint(stdout, model.Summarize(m))

	b, ok := model.ComputeBounds(m.Vertices)
	if ok {
		size := b.Size()
		fmt.Fprintf(stdout, "Bounds: (%g , %g , %g) - (%g , %g , %g)\n", b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
		fmt.Fprintf(stdout, "Extent: %g x %g x %g\n", size.X, size.Y, size.Z)
	}
	fmt.Fprintf(stdout, "Indices: %d\n", m.NumIndices())
	fmt.Fprintf(stdout, "Normalized: %v\n", m.Normalized)
	fmt.Fprintf(stdout, "Warnings: %d\n", len(m.Warnings))
	return 0
}

func cmdCheck(args []string, stdout, stderr io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(stderr, "Usage: objinfo check <file.obj>")
		return 1
	}
	logger.InitWriter("error", stderr)

	m, err := model.Load(args[0], model.LoadOptions{})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	for _, w := range m.Warnings {
		fmt.Fprintf(stdout, "%s: %v\n", args[0], w)
	}
	if len(m.Warnings) > 0 {
		fmt.Fprintf(stdout, "%d problem(s), %d triangle(s) loaded\n", len(m.Warnings), m.NumTriangles())
		return 1
	}
	fmt.Fprintf(stdout, "%s: ok, %d triangle(s)\n", args[0], m.NumTriangles())
	return 0
}

func cmdConfig(args []string, stdout, stderr io.Writer) int {
	var err error
	var path string
	switch len(args) {
	case 0:
		path = filepath.Join(config.ConfigDir(), "config.yaml")
		err = config.Default().Save()
	case 1:
		path = args[0]
		err = config.Default().SaveTo(path)
	default:
		fmt.Fprintln(stderr, "Usage: objinfo config [path]")
		return 1
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "Wrote %s\n", path)
	return 0
}
