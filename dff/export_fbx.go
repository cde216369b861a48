package dff

import (
	"github.com/mogaika/dff_browser/utils/fbxbuilder"
)

// ExportFbx creates fbx scene with Model+Geometry per renderable split
func (m *Model) ExportFbx() *fbxbuilder.FBXBuilder {
	f := fbxbuilder.NewFBXBuilder(m.Name)

	for _, ns := range m.Renderable() {
		vertices := make([]float64, 0, len(ns.Split.Vertices)*3)
		for _, v := range ns.Split.Vertices {
			vertices = append(vertices, float64(v[0]), float64(v[1]), float64(v[2]))
		}
		triangles := make([][3]int32, len(ns.Split.Triangles))
		for i, t := range ns.Split.Triangles {
			triangles[i] = [3]int32{int32(t[0]), int32(t[1]), int32(t[2])}
		}
		f.AddMesh(ns.Name, vertices, triangles)
	}
	return f
}
