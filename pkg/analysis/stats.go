// Package analysis computes descriptive statistics for loaded models.
package analysis

import (
	"fmt"
	"math"

	"github.com/philipparndt/gopick/pkg/geometry"
	"github.com/philipparndt/gopick/pkg/scene"
)

// EntityStats summarizes one entity
type EntityStats struct {
	ID          string
	Triangles   int
	Degenerate  int
	SurfaceArea float64
	BoundingBox geometry.BoundingBox
}

// ModelStats summarizes a whole model
type ModelStats struct {
	Entities      []EntityStats
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	Volume        float64
	SurfaceArea   float64
	TriangleCount int
	Degenerate    int
	EdgeCount     int
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
}

// AnalyzeModel computes statistics for every entity and the model as a whole
func AnalyzeModel(entities []scene.EntityData) *ModelStats {
	result := &ModelStats{BoundingBox: geometry.NewBoundingBox()}

	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0

	for _, e := range entities {
		es := EntityStats{ID: e.ID, BoundingBox: geometry.BoundingBoxOf(e.Vertices)}

		for i := 0; i+2 < len(e.Vertices); i += 3 {
			tri := geometry.TriangleOf(e.Vertices[i], e.Vertices[i+1], e.Vertices[i+2])
			es.Triangles++
			es.SurfaceArea += tri.Area()
			if tri.IsDegenerate() {
				es.Degenerate++
			}

			for _, length := range tri.EdgeLengths() {
				totalLength += length
				minLength = math.Min(minLength, length)
				maxLength = math.Max(maxLength, length)
			}
		}

		result.Entities = append(result.Entities, es)
		result.TriangleCount += es.Triangles
		result.Degenerate += es.Degenerate
		result.SurfaceArea += es.SurfaceArea
		if !es.BoundingBox.IsEmpty() {
			result.BoundingBox.Extend(es.BoundingBox.Min)
			result.BoundingBox.Extend(es.BoundingBox.Max)
		}
	}

	result.EdgeCount = 3 * result.TriangleCount
	if result.EdgeCount > 0 {
		result.MinEdgeLength = minLength
		result.MaxEdgeLength = maxLength
		result.AvgEdgeLength = totalLength / float64(result.EdgeCount)
	}
	if !result.BoundingBox.IsEmpty() {
		result.Dimensions = result.BoundingBox.Size()
		result.Volume = result.BoundingBox.Volume()
	}

	return result
}

// FindNearestVertex finds the vertex of an entity nearest to a given point
func FindNearestVertex(entity *scene.MeshEntity, point geometry.Vector3) (geometry.Vector3, float64) {
	var nearestVertex geometry.Vector3
	minDistance := math.MaxFloat64

	for _, tri := range entity.Triangles() {
		for _, vertex := range [3]geometry.Vector3{tri.V1, tri.V2, tri.V3} {
			if d := point.Distance(vertex); d < minDistance {
				minDistance = d
				nearestVertex = vertex
			}
		}
	}

	return nearestVertex, minDistance
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
