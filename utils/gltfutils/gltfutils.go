package gltfutils

import (
	"io"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

func NewDocument() *gltf.Document {
	return gltf.NewDocument()
}

// AddDefaultMaterial appends double sided material and returns its index
func AddDefaultMaterial(doc *gltf.Document) uint32 {
	doc.Materials = append(doc.Materials, &gltf.Material{
		Name:        "default",
		DoubleSided: true,
	})
	return uint32(len(doc.Materials) - 1)
}

// AddMesh writes positions and triangle indices as single primitive mesh
// and attaches it to new scene node. Returns mesh index.
func AddMesh(doc *gltf.Document, name string, positions [][3]float32, indices []uint32, material *uint32) uint32 {
	positionAccessor := modeler.WritePosition(doc, positions)
	indicesAccessor := modeler.WriteIndices(doc, indices)

	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: name,
		Primitives: []*gltf.Primitive{
			&gltf.Primitive{
				Indices:    &indicesAccessor,
				Attributes: map[string]uint32{"POSITION": positionAccessor},
				Material:   material,
			},
		},
	})
	meshIndex := uint32(len(doc.Meshes) - 1)

	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)))
	doc.Nodes = append(doc.Nodes, &gltf.Node{
		Name: name,
		Mesh: gltf.Index(meshIndex),
	})
	return meshIndex
}

func ExportBinary(w io.Writer, doc *gltf.Document) error {
	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = true
	return encoder.Encode(doc)
}
