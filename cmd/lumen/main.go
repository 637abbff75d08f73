// lumen - Phong ray caster for the terminal, the desktop and image files.
//
// Commands:
//
//	view    - Interactive terminal viewer (half-block pixels)
//	window  - Interactive desktop window
//	render  - Trace one frame to a PNG
//	export  - Trace a light orbit to an animated GIF or PNG sequence
//	version - Print the version
//
// Without --scene every command shows the built-in reference scene: three
// spheres lit by three cyan lights over a green background.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var version = "dev"

// options holds the flags shared by every command.
type options struct {
	scene       string
	width       int
	height      int
	fov         float64
	maxDistance float64
	bg          string
	nearest     bool
	noCull      bool
	logLevel    string
	logFile     string
}

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:   "lumen",
		Short: "Phong ray caster for spheres and planes",
		Long: "lumen casts one primary ray per pixel into a scene of spheres and planes,\n" +
			"shades hits with the Phong model under point lights, and shows the result\n" +
			"in the terminal, in a desktop window, or writes it to image files.",
		SilenceUsage: true,
	}

	f := root.PersistentFlags()
	f.StringVarP(&o.scene, "scene", "s", "", "scene file (.json, .glb or .gltf); empty uses the reference scene")
	f.IntVar(&o.width, "width", 0, "image width in pixels (overrides the scene file)")
	f.IntVar(&o.height, "height", 0, "image height in pixels (overrides the scene file)")
	f.Float64Var(&o.fov, "fov", 0, "vertical field of view in degrees (overrides the scene file)")
	f.Float64Var(&o.maxDistance, "max-distance", 0, "ignore hits farther than this along a ray; 0 keeps the scene's")
	f.StringVar(&o.bg, "bg", "", "background color: name, #rrggbb[aa] or r,g,b[,a]")
	f.BoolVar(&o.nearest, "nearest", false, "color each pixel from the nearest hit instead of the last")
	f.BoolVar(&o.noCull, "no-cull", false, "trace every surface instead of culling those outside the view")
	f.StringVar(&o.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	f.StringVar(&o.logFile, "log-file", "", "write logs to this file")

	root.AddCommand(
		newViewCmd(o),
		newWindowCmd(o),
		newRenderCmd(o),
		newExportCmd(o),
		newVersionCmd(),
	)
	return root
}

// newLogger builds the command logger. Interactive terminal commands pass
// quiet so logs do not draw over the screen unless --log-file is set.
func newLogger(o *options, quiet bool) (*log.Logger, func() error, error) {
	level, err := log.ParseLevel(o.logLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("parse log level: %w", err)
	}

	var w io.Writer = os.Stderr
	closer := func() error { return nil }
	switch {
	case o.logFile != "":
		f, err := os.OpenFile(o.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, f.Close
	case quiet:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "lumen",
		ReportTimestamp: true,
	})
	return logger, closer, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), titleStyle.Render("lumen")+" "+version)
			return err
		},
	}
}
