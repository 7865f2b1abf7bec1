package regroup

import (
	"path/filepath"
	"strings"

	"github.com/notargets/scaffoldgroup/InputParameters"
	"github.com/notargets/scaffoldgroup/mesh"
)

// OutputSuffix is inserted between the input basename and its extension
const OutputSuffix = "_regrouped"

// Result of a successful run
type Result struct {
	OutputPath string
	Warnings   []Warning
	Groups     []GroupReport
}

// OutputPath returns <dir>/<basename>_regrouped<ext> for an input path
func OutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + OutputSuffix + ext
}

// Load reads the input mesh
func Load(lib MeshLibrary, path string, opts Options) (*mesh.Region, error) {
	r, err := lib.ReadRegion(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	log := opts.logger()
	if r.HighestDimension() < 3 {
		log.Warn("mesh has no 3D elements, no face is exterior", "path", path)
	}
	if coordinates, ok := r.CoordinateField(); ok {
		log.Debug("found coordinate field", "field", coordinates.Name())
	} else {
		log.Debug("no coordinate field", "path", path)
	}
	for d := 1; d <= mesh.MaxDimension; d++ {
		log.Debug("loaded mesh", "dimension", d, "elements", r.FindMeshByDimension(d).Size())
	}
	return r, nil
}

// Save writes the region next to the input and returns the output path
func Save(lib MeshLibrary, r *mesh.Region, inputPath string) (string, error) {
	out := OutputPath(inputPath)
	if err := lib.WriteRegion(r, out); err != nil {
		return "", &SaveError{Path: out, Err: err}
	}
	return out, nil
}

// Run loads the mesh, recomputes the face group of every entry, and saves the result. Entries
// are validated before the mesh is read, so a bad surface keyword never produces output.
func Run(lib MeshLibrary, inputPath string, entries []InputParameters.GroupEntry, opts Options) (*Result, error) {
	for _, entry := range entries {
		if err := ValidateSurfaces(entry.Name, entry.Surfaces); err != nil {
			return nil, err
		}
	}

	r, err := Load(lib, inputPath, opts)
	if err != nil {
		return nil, err
	}
	log := opts.logger()
	r.Fieldmodule().AddListener(func(ev mesh.ChangeEvent) {
		if ev.Changed() {
			log.Debug("groups changed", "groups", ev.Groups, "added", ev.Added, "removed", ev.Removed)
		}
	})

	sp := ClassifySurfaces(r)
	result := &Result{}
	for _, entry := range entries {
		report, warnings, err := RebuildGroup(r, sp, entry, opts)
		if err != nil {
			return nil, err
		}
		result.Groups = append(result.Groups, report)
		result.Warnings = append(result.Warnings, warnings...)
	}

	if result.OutputPath, err = Save(lib, r, inputPath); err != nil {
		return nil, err
	}
	log.Info("wrote regrouped mesh", "path", result.OutputPath,
		"groups", len(result.Groups), "warnings", len(result.Warnings))
	return result, nil
}
