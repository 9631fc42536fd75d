package mesh

import (
	"bufio"
	"fmt"
	"io"
)

// WriteOBJ writes meshes as Wavefront OBJ text, one object per mesh.
// Vertex numbering is global across objects, per the OBJ convention,
// and material ranges become usemtl groups.
func WriteOBJ(w io.Writer, meshes []*Mesh) error {
	bw := bufio.NewWriter(w)
	offset := 1 // OBJ indices are 1-based

	for _, m := range meshes {
		fmt.Fprintf(bw, "o %s\n", m.Name)
		for _, v := range m.Vertices {
			fmt.Fprintf(bw, "v %g %g %g\n", v.Position[0], v.Position[1], v.Position[2])
		}
		for _, v := range m.Vertices {
			fmt.Fprintf(bw, "vn %g %g %g\n", v.Normal[0], v.Normal[1], v.Normal[2])
		}
		for _, v := range m.Vertices {
			fmt.Fprintf(bw, "vt %g %g\n", v.TexCoord[0], v.TexCoord[1])
		}
		for _, g := range m.Groups {
			if g.Name != "" {
				fmt.Fprintf(bw, "usemtl %s\n", g.Name)
			}
			end := g.StartIndex + g.IndexCount
			for i := g.StartIndex; i < end; i += 3 {
				a := int(m.Indices[i]) + offset
				b := int(m.Indices[i+1]) + offset
				c := int(m.Indices[i+2]) + offset
				fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
			}
		}
		offset += len(m.Vertices)
	}
	return bw.Flush()
}
