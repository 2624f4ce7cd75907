package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/philipparndt/gopick/internal/config"
	"github.com/philipparndt/gopick/internal/logging"
	"github.com/philipparndt/gopick/pkg/viewer"
	"github.com/philipparndt/gopick/version"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	logFormat  string

	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "gopick",
	Short: "Pick entities of triangle mesh models",
	Long: `gopick loads triangle mesh models (mesh JSON payloads, STL and glTF) and
answers picking queries against them: which entity lies under a screen pixel
or along a ray, and how pointer gestures rotate, zoom and select.`,
	Version:           version.GetFullVersion(),
	PersistentPreRunE: setup,
	SilenceUsage:      true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Configuration file (.yaml or .toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format (text or json)")
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}

	logger, err = logging.Setup(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	return err
}

// newViewer builds a camera and viewer from the loaded configuration
func newViewer() (*viewer.Viewer, *viewer.Camera) {
	camera := viewer.NewCamera(cfg.CameraConfig())
	return viewer.New(camera, cfg.GestureConfig(), logger), camera
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
