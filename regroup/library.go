package regroup

import (
	"github.com/notargets/scaffoldgroup/mesh"
	"github.com/notargets/scaffoldgroup/mesh/readers"
)

// MeshLibrary is the file boundary of a run
type MeshLibrary interface {
	ReadRegion(path string) (*mesh.Region, error)
	WriteRegion(r *mesh.Region, path string) error
}

// FileLibrary reads and writes the formats known to mesh/readers, chosen by extension
type FileLibrary struct{}

func (FileLibrary) ReadRegion(path string) (*mesh.Region, error) {
	return readers.ReadMeshFile(path)
}

func (FileLibrary) WriteRegion(r *mesh.Region, path string) error {
	return readers.WriteMeshFile(r, path)
}
