package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/gopick/pkg/analysis"
	"github.com/philipparndt/gopick/pkg/meshio"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display information about a model file",
	Long:  "Show the entities of a model together with triangle counts, bounding boxes and edge statistics.",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	filename := args[0]

	entities, err := meshio.Load(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading model: %v\n", err)
		os.Exit(1)
	}

	result := analysis.AnalyzeModel(entities)

	fmt.Println("Model Information")
	fmt.Println("=================")
	fmt.Printf("File: %s\n\n", filename)

	fmt.Println("Model Statistics:")
	fmt.Printf("  Entities: %d\n", len(result.Entities))
	fmt.Printf("  Triangles: %d\n", result.TriangleCount)
	fmt.Printf("  Degenerate triangles: %d\n", result.Degenerate)
	fmt.Printf("  Surface Area: %.6f square units\n\n", result.SurfaceArea)

	if !result.BoundingBox.IsEmpty() {
		fmt.Println("Bounding Box:")
		fmt.Printf("  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
		fmt.Printf("  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
		fmt.Printf("  Center: %s\n\n", analysis.FormatVector(result.BoundingBox.Center()))

		fmt.Println("Dimensions:")
		fmt.Printf("  Width (X): %.6f units\n", result.Dimensions.X)
		fmt.Printf("  Depth (Y): %.6f units\n", result.Dimensions.Y)
		fmt.Printf("  Height (Z): %.6f units\n", result.Dimensions.Z)
		fmt.Printf("  Diagonal: %.6f units\n", result.BoundingBox.Diagonal())
		fmt.Printf("  Volume: %.6f cubic units\n\n", result.Volume)
	}

	fmt.Println("Edge Lengths:")
	fmt.Printf("  Minimum: %.6f units\n", result.MinEdgeLength)
	fmt.Printf("  Maximum: %.6f units\n", result.MaxEdgeLength)
	fmt.Printf("  Average: %.6f units\n\n", result.AvgEdgeLength)

	fmt.Printf("%-24s %-10s %-18s %-35s\n", "Entity", "Triangles", "Area", "Center")
	fmt.Println("------------------------------------------------------------------------------------------")
	for _, e := range result.Entities {
		center := "-"
		if !e.BoundingBox.IsEmpty() {
			center = analysis.FormatVector(e.BoundingBox.Center())
		}
		fmt.Printf("%-24s %-10d %-18.6f %-35s\n", e.ID, e.Triangles, e.SurfaceArea, center)
	}
}
