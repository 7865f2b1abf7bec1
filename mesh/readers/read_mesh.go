package readers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/notargets/scaffoldgroup/mesh"
)

// ReadMeshFile reads a mesh file based on extension
func ReadMeshFile(filename string) (*mesh.Region, error) {
	var (
		r   *mesh.Region
		err error
	)
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".msh":
		r, err = ReadGmsh22(filename)
	case ".yaml", ".yml", ".json":
		r, err = ReadDocument(filename)
	default:
		return nil, fmt.Errorf("unsupported mesh format: %q", ext)
	}
	if err != nil {
		return nil, err
	}
	if r.Name() == "" || ext == ".msh" {
		r.SetName(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
	}
	return r, nil
}

// WriteMeshFile writes the region in the format named by the extension. The file is written
// to a temporary sibling and renamed into place, so a failed write leaves no partial output.
func WriteMeshFile(r *mesh.Region, filename string) (err error) {
	var data []byte
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".msh":
		var sb strings.Builder
		if err = EncodeGmsh22(&sb, r); err != nil {
			return err
		}
		data = []byte(sb.String())
	case ".yaml", ".yml":
		if data, err = MarshalYAML(r); err != nil {
			return err
		}
	case ".json":
		if data, err = MarshalJSON(r); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported mesh format: %q", ext)
	}

	tmp, err := os.CreateTemp(filepath.Dir(filename), "."+filepath.Base(filename)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()
	if err = tmp.Chmod(0644); err != nil {
		tmp.Close()
		return err
	}
	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filename)
}
