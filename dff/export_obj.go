package dff

import (
	"bufio"
	"fmt"
	"io"
)

// ExportObj writes renderable splits as wavefront obj objects
func (m *Model) ExportObj(_w io.Writer) error {
	bw := bufio.NewWriter(_w)
	w := func(format string, args ...interface{}) {
		fmt.Fprintf(bw, format+"\n", args...)
	}

	w("# %s", m.Name)
	// obj indexes are global and start from 1
	iV := 1
	for _, ns := range m.Renderable() {
		w("o %s", ns.Name)
		for _, v := range ns.Split.Vertices {
			w("v %f %f %f", v[0], v[1], v[2])
		}
		for _, t := range ns.Split.Triangles {
			w("f %d %d %d", iV+t[0], iV+t[1], iV+t[2])
		}
		iV += len(ns.Split.Vertices)
	}
	return bw.Flush()
}
