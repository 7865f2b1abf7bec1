package mesh

import (
	"fmt"

	"github.com/notargets/scaffoldgroup/utils"
)

// LayeredCube is a unit cube split into NX x NY x NZ hexahedra, with xi3 running along z so
// that each k index is one layer of a shell. Used to build synthetic scaffolds.
type LayeredCube struct {
	*Region
	NX, NY, NZ int
}

// NewLayeredCube builds the cube with a "coordinates" field and all faces and lines defined.
// Hexahedra are numbered first, from 1, in i, j, k order.
func NewLayeredCube(nx, ny, nz int) (*LayeredCube, error) {
	if nx < 1 || ny < 1 || nz < 1 {
		return nil, fmt.Errorf("cube divisions must be positive, got %d x %d x %d", nx, ny, nz)
	}
	c := &LayeredCube{Region: NewRegion("cube"), NX: nx, NY: ny, NZ: nz}
	coordinates, err := c.Fieldmodule().CreateFieldFiniteElement("coordinates", 3)
	if err != nil {
		return nil, err
	}
	coordinates.SetTypeCoordinate(true)
	for k := 0; k <= nz; k++ {
		for j := 0; j <= ny; j++ {
			for i := 0; i <= nx; i++ {
				id := c.NodeID(i, j, k)
				if err = c.AddNode(id); err != nil {
					return nil, err
				}
				x := []float64{float64(i) / float64(nx), float64(j) / float64(ny), float64(k) / float64(nz)}
				if err = coordinates.SetNodeValue(id, x); err != nil {
					return nil, err
				}
			}
		}
	}
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				nodes := []int{
					c.NodeID(i, j, k), c.NodeID(i+1, j, k), c.NodeID(i+1, j+1, k), c.NodeID(i, j+1, k),
					c.NodeID(i, j, k+1), c.NodeID(i+1, j, k+1), c.NodeID(i+1, j+1, k+1), c.NodeID(i, j+1, k+1),
				}
				if _, err = c.AddElement(c.HexID(i, j, k), utils.Hex, nodes); err != nil {
					return nil, err
				}
			}
		}
	}
	if _, err = c.DefineFaces(); err != nil {
		return nil, err
	}
	return c, nil
}

// NodeID returns the identifier of the node at lattice point (i, j, k)
func (c *LayeredCube) NodeID(i, j, k int) int {
	return 1 + i + (c.NX+1)*(j+(c.NY+1)*k)
}

// HexID returns the identifier of hexahedron (i, j, k)
func (c *LayeredCube) HexID(i, j, k int) int {
	return 1 + i + c.NX*(j+c.NY*k)
}

// Hex returns hexahedron (i, j, k)
func (c *LayeredCube) Hex(i, j, k int) *Element {
	e, _ := c.FindMeshByDimension(3).FindElementByID(c.HexID(i, j, k))
	return e
}

// FacesOf returns the face elements of a hexahedron in local face order
func (c *LayeredCube) FacesOf(hex *Element) []*Element {
	index := make(map[string]*Element)
	for _, f := range c.FindMeshByDimension(2).Elements() {
		index[faceKey(f.Nodes)] = f
	}
	var out []*Element
	for _, nodes := range utils.GetElementFaces(hex.Type, hex.Nodes) {
		if f, ok := index[faceKey(nodes)]; ok {
			out = append(out, f)
		}
	}
	return out
}

// LayerGroup creates a group holding the hexahedra of layer k and all of their faces
func (c *LayeredCube) LayerGroup(name string, k int) (*Group, error) {
	g := c.CreateGroup(name)
	volumes, err := g.CreateMeshGroup(3)
	if err != nil {
		return nil, err
	}
	faces, err := g.CreateMeshGroup(2)
	if err != nil {
		return nil, err
	}
	for j := 0; j < c.NY; j++ {
		for i := 0; i < c.NX; i++ {
			hex := c.Hex(i, j, k)
			if err = volumes.AddElement(hex); err != nil {
				return nil, err
			}
			for _, f := range c.FacesOf(hex) {
				if err = faces.AddElement(f); err != nil {
					return nil, err
				}
			}
		}
	}
	return g, nil
}
