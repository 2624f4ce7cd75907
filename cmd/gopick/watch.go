package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/philipparndt/gopick/pkg/meshio"
	"github.com/philipparndt/gopick/pkg/watcher"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Reload a model whenever it changes on disk",
	Long: `Load a model and keep it loaded, rebuilding the scene each time the file is
written. A failed reload keeps the previous model.`,
	Args: cobra.ExactArgs(1),
	Run:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) {
	filename := args[0]
	v, _ := newViewer()

	reload := func(path string) {
		entities, err := meshio.Load(path)
		if err != nil {
			logger.Error("reload failed", "file", path, "error", err)
			return
		}
		if err := v.LoadModel(entities); err != nil {
			logger.Error("reload failed", "file", path, "error", err)
			return
		}
		logger.Info("model loaded", "file", path, "entities", v.Snapshot().Entities)
	}

	entities, err := meshio.Load(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading model: %v\n", err)
		os.Exit(1)
	}
	if err := v.LoadModel(entities); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fw, err := watcher.NewFileWatcher(time.Duration(cfg.Watch.Debounce), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer fw.Close()

	if err := fw.Watch([]string{filename}, reload); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("watching model", "file", filename, "entities", v.Snapshot().Entities)
	fw.Run(ctx)
}
