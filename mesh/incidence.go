package mesh

import (
	"fmt"
	"sort"

	"github.com/notargets/scaffoldgroup/utils"
)

// ParentRef locates a face within one of its parent elements
type ParentRef struct {
	Element *Element
	Face    int // Local face index within the parent, see utils.ElementType.GetLocalFaces
}

// FaceIncidence is the sparse [faces x parents] incidence matrix between the elements of one
// dimension and the elements one dimension higher. Entry (i, j) holds 1 + the local face
// index of face i within parent j, so a face with one stored entry in its row is exterior.
type FaceIncidence struct {
	faces   *Mesh
	parents *Mesh
	csr     *utils.CSR
}

func buildFaceIncidence(faces, parents *Mesh) *FaceIncidence {
	fi := &FaceIncidence{faces: faces, parents: parents}
	if faces.Size() == 0 || parents.Size() == 0 {
		return fi
	}
	faceIndex := make(map[string]int, faces.Size())
	for i, f := range faces.elements {
		faceIndex[faceKey(f.Nodes)] = i
	}
	dok := utils.NewDOK(faces.Size(), parents.Size(),
		fmt.Sprintf("%dD faces x %dD parents", faces.dimension, parents.dimension))
	for j, p := range parents.elements {
		for localFace, faceNodes := range utils.GetElementFaces(p.Type, p.Nodes) {
			if i, ok := faceIndex[faceKey(faceNodes)]; ok {
				dok.Set(i, j, float64(localFace+1))
			}
		}
	}
	csr := dok.ToCSR()
	fi.csr = &csr
	return fi
}

// NumParents returns the number of higher dimension elements the face bounds
func (fi *FaceIncidence) NumParents(face *Element) int {
	if fi == nil || fi.csr == nil {
		return 0
	}
	return fi.csr.RowNNZ(face.index)
}

// Parents returns the parents of the face ordered by parent position in its mesh
func (fi *FaceIncidence) Parents(face *Element) []ParentRef {
	if fi == nil || fi.csr == nil {
		return nil
	}
	cols, vals := fi.csr.RowEntries(face.index)
	refs := make([]ParentRef, len(cols))
	for k, j := range cols {
		refs[k] = ParentRef{
			Element: fi.parents.elements[j],
			Face:    int(vals[k]) - 1,
		}
	}
	sort.Slice(refs, func(a, b int) bool { return refs[a].Element.index < refs[b].Element.index })
	return refs
}
