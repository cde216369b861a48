// Package mesh holds decoded geometry of dff material splits.
package mesh

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

type Vertex = mgl32.Vec3

// Triangle holds indexes into vertices of same split
type Triangle [3]int

type MaterialSplit struct {
	MaterialIndex int32
	// nil when split block carried no supported vertex data
	Vertices  []Vertex
	Triangles []Triangle
}

// Name follows naming used by importers: dff_split_{i}_mat{material}
func (ms *MaterialSplit) Name(index int) string {
	return fmt.Sprintf("dff_split_%d_mat%d", index, ms.MaterialIndex)
}

// IsEmpty reports splits that consumers should skip
func (ms *MaterialSplit) IsEmpty() bool {
	return len(ms.Vertices) == 0 || len(ms.Triangles) == 0
}

// FlatIndexes returns triangles as flat list, 3 indexes per triangle
func (ms *MaterialSplit) FlatIndexes() []uint32 {
	indexes := make([]uint32, 0, len(ms.Triangles)*3)
	for _, t := range ms.Triangles {
		indexes = append(indexes, uint32(t[0]), uint32(t[1]), uint32(t[2]))
	}
	return indexes
}

// Bounds returns axis aligned bounding box of vertices.
// Zero box for empty input.
func Bounds(vertices []Vertex) (min, max mgl32.Vec3) {
	if len(vertices) == 0 {
		return
	}
	min, max = vertices[0], vertices[0]
	for _, v := range vertices[1:] {
		for i := range v {
			if v[i] < min[i] {
				min[i] = v[i]
			}
			if v[i] > max[i] {
				max[i] = v[i]
			}
		}
	}
	return
}
