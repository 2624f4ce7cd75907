package main

import (
	"fmt"
	"os"
	"time"

	"github.com/philipparndt/gopick/internal/trace"
	"github.com/philipparndt/gopick/pkg/analysis"
	"github.com/philipparndt/gopick/pkg/meshio"
	"github.com/spf13/cobra"
)

var replayQuiet bool

var replayCmd = &cobra.Command{
	Use:   "replay [model] [trace]",
	Short: "Replay a recorded pointer session against a model",
	Long: `Feed the events of a YAML trace through the gesture controller and apply
the resulting rotate, zoom and selection requests to the loaded model.`,
	Args: cobra.ExactArgs(2),
	Run:  runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().BoolVarP(&replayQuiet, "quiet", "q", false, "Only print the final state")
}

func runReplay(cmd *cobra.Command, args []string) {
	entities, err := meshio.Load(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading model: %v\n", err)
		os.Exit(1)
	}
	tr, err := trace.Load(args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	v, _ := newViewer()
	if err := v.LoadModel(entities); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	v.OnMetadataDisplay(func(id string) {
		fmt.Printf("    display metadata: %s\n", id)
	})

	results, err := trace.Replay(v, tr, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !replayQuiet {
		fmt.Println("Events")
		fmt.Println("======")
		for i, r := range results {
			fmt.Printf("%3d %-6s id=%d (%.1f, %.1f)\n", i, r.Event.Kind, r.Event.PointerID, r.Event.Position.X, r.Event.Position.Y)
			for _, e := range r.Effects {
				fmt.Printf("    %s\n", e)
			}
		}
		fmt.Println()
	}

	snap := v.Snapshot()
	fmt.Println("Final State")
	fmt.Println("===========")
	fmt.Printf("  Entities: %d\n", snap.Entities)
	fmt.Printf("  Zoom: %.6f\n", snap.Zoom)
	fmt.Printf("  Yaw: %.6f degrees\n", snap.Yaw)
	fmt.Printf("  Pitch: %.6f degrees\n", snap.Pitch)
	fmt.Printf("  Rotation: %.6f degrees around %s\n", snap.RotationAngle, analysis.FormatVector(snap.RotationAxis))
	fmt.Printf("  Selected: %s\n", orNone(snap.Selected))
	fmt.Printf("  Preselected: %s\n", orNone(snap.Preselected))
}

func orNone(id string) string {
	if id == "" {
		return "(none)"
	}
	return id
}
