package mesh

import "github.com/notargets/scaffoldgroup/utils"

// DefineFaces creates every face and line element implied by the highest dimension elements
// that the region does not already hold, working down one dimension at a time. New elements
// take identifiers above those in use. Returns the number of elements created.
func (r *Region) DefineFaces() (int, error) {
	created := 0
	for d := r.HighestDimension(); d >= 2; d-- {
		existing := make(map[string]struct{}, r.meshes[d-1].Size())
		for _, f := range r.meshes[d-1].elements {
			existing[faceKey(f.Nodes)] = struct{}{}
		}
		nextID := r.NextElementID()
		for _, e := range r.meshes[d].elements {
			faces := utils.GetElementFaces(e.Type, e.Nodes)
			for i, lf := range e.Type.GetLocalFaces() {
				nodes := faces[i]
				key := faceKey(nodes)
				if _, ok := existing[key]; ok {
					continue
				}
				if _, err := r.AddElement(nextID, lf.Type, nodes); err != nil {
					return created, err
				}
				existing[key] = struct{}{}
				nextID++
				created++
			}
		}
	}
	return created, nil
}
