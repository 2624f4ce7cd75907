package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/gopick/pkg/analysis"
	"github.com/philipparndt/gopick/pkg/geometry"
	"github.com/philipparndt/gopick/pkg/meshio"
	"github.com/philipparndt/gopick/pkg/scene"
	"github.com/spf13/cobra"
)

var (
	pickX, pickY  float64
	pickOrigin    []float64
	pickDirection []float64
	pickMetadata  string
	pickWidth     int
	pickHeight    int
)

var pickCmd = &cobra.Command{
	Use:   "pick [file]",
	Short: "Find the entity under a screen pixel or along a ray",
	Long: `Pick the closest entity of a model. Either give a device pixel with --x/--y,
which is unprojected through the configured camera, or a ray in model
coordinates with --origin and --dir.`,
	Args: cobra.ExactArgs(1),
	Run:  runPick,
}

func init() {
	rootCmd.AddCommand(pickCmd)

	pickCmd.Flags().Float64Var(&pickX, "x", 0, "Device pixel X")
	pickCmd.Flags().Float64Var(&pickY, "y", 0, "Device pixel Y")
	pickCmd.Flags().Float64SliceVar(&pickOrigin, "origin", nil, "Ray origin x,y,z")
	pickCmd.Flags().Float64SliceVar(&pickDirection, "dir", nil, "Ray direction x,y,z")
	pickCmd.Flags().StringVarP(&pickMetadata, "metadata", "m", "", "Metadata file (JSON payload or YAML) shown for the picked entity")
	pickCmd.Flags().IntVar(&pickWidth, "width", 0, "Viewport width (overrides config)")
	pickCmd.Flags().IntVar(&pickHeight, "height", 0, "Viewport height (overrides config)")

	pickCmd.MarkFlagsRequiredTogether("x", "y")
	pickCmd.MarkFlagsRequiredTogether("origin", "dir")
	pickCmd.MarkFlagsMutuallyExclusive("x", "origin")
	pickCmd.MarkFlagsOneRequired("x", "origin")
}

func vectorFlag(name string, values []float64) (geometry.Vector3, error) {
	if len(values) != 3 {
		return geometry.Vector3{}, fmt.Errorf("--%s needs three values, got %d", name, len(values))
	}
	return geometry.NewVector3(values[0], values[1], values[2]), nil
}

func runPick(cmd *cobra.Command, args []string) {
	filename := args[0]

	entities, err := meshio.Load(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading model: %v\n", err)
		os.Exit(1)
	}

	v, camera := newViewer()
	if err := v.LoadModel(entities); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if pickWidth > 0 && pickHeight > 0 {
		v.Resize(pickWidth, pickHeight)
	}

	var origin geometry.Point3
	var direction geometry.Vector3
	if cmd.Flags().Changed("origin") {
		o, err := vectorFlag("origin", pickOrigin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		direction, err = vectorFlag("dir", pickDirection)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		origin = geometry.PointOf(o)
	} else {
		var ok bool
		origin, direction, ok = camera.Unproject(pickX, pickY)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: pixel (%.1f, %.1f) cannot be unprojected\n", pickX, pickY)
			os.Exit(1)
		}
	}

	if direction.LengthSquared() == 0 {
		fmt.Fprintln(os.Stderr, "Error: ray direction must not be zero")
		os.Exit(1)
	}

	var (
		id      string
		local   geometry.Point3
		hit     bool
		offset  geometry.Vector3
		nearest geometry.Vector3
		dist    float64
	)
	v.ReadScene(func(s *scene.Scene) {
		offset = s.Offset()
		id, local, hit = s.ClosestHit(origin, direction.Normalize())
		if !hit {
			return
		}
		if e, ok := s.Entity(id); ok {
			nearest, dist = analysis.FindNearestVertex(e, local.Vector())
		}
	})

	fmt.Println("Pick Result")
	fmt.Println("===========")
	fmt.Printf("Ray origin: %s\n", analysis.FormatVector(origin.Vector()))
	fmt.Printf("Ray direction: %s\n\n", analysis.FormatVector(direction.Normalize()))

	if !hit {
		fmt.Println("No entity hit.")
		return
	}

	fmt.Printf("Entity: %s\n", id)
	fmt.Printf("  Hit point (model): %s\n", analysis.FormatVector(local.Vector()))
	fmt.Printf("  Hit point (world): %s\n", analysis.FormatVector(local.Offset(offset).Vector()))
	fmt.Printf("  Nearest vertex: %s (distance: %.6f)\n", analysis.FormatVector(nearest), dist)

	if !cmd.Flags().Changed("origin") {
		v.CheckSelection(pickX, pickY)
		fmt.Printf("  Selected: %s\n", orNone(v.Snapshot().Selected))
	}

	if pickMetadata != "" {
		printMetadata(pickMetadata, id)
	}
}

func printMetadata(path, id string) {
	md, err := meshio.LoadMetadata(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if md.ID != "" && md.ID != id {
		fmt.Printf("\nNo metadata for %s (payload describes %s).\n", id, md.ID)
		return
	}

	fmt.Println("\nMetadata:")
	fmt.Printf("  %-20s %-24s %s\n", "Category", "Name", "Value")
	for _, el := range md.Elements {
		fmt.Printf("  %-20s %-24s %v\n", el.Category, el.Name, el.Value)
	}
}
