package mesh

// StripToTriangles converts vertex stream of implicit triangle strip into
// triangle list. Window of three last vertices forms candidate triangle;
// candidate is dropped when any two of its vertices are exactly equal
// (encoder repeats vertices to restart strip). Winding alternates to keep
// front faces consistent: (i, i-2, i-1) on even i, (i-1, i-2, i) on odd i.
func StripToTriangles(vertices []Vertex) []Triangle {
	triangles := make([]Triangle, 0)
	for i := 2; i < len(vertices); i++ {
		a, b, c := vertices[i], vertices[i-1], vertices[i-2]
		if a == b || a == c || b == c {
			continue
		}
		if i%2 == 0 {
			triangles = append(triangles, Triangle{i, i - 2, i - 1})
		} else {
			triangles = append(triangles, Triangle{i - 1, i - 2, i})
		}
	}
	return triangles
}
