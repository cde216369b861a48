package dff

import (
	"github.com/qmuntal/gltf"

	"github.com/mogaika/dff_browser/utils/gltfutils"
)

// ExportGLTF creates document with mesh and node per renderable split
func (m *Model) ExportGLTF() *gltf.Document {
	doc := gltfutils.NewDocument()
	material := gltfutils.AddDefaultMaterial(doc)

	for _, ns := range m.Renderable() {
		positions := make([][3]float32, len(ns.Split.Vertices))
		for i, v := range ns.Split.Vertices {
			positions[i] = v
		}
		gltfutils.AddMesh(doc, ns.Name, positions, ns.Split.FlatIndexes(), gltf.Index(material))
	}
	return doc
}
