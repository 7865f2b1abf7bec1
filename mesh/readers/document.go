package readers

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ghodss/yaml"

	"github.com/notargets/scaffoldgroup/mesh"
	"github.com/notargets/scaffoldgroup/utils"
)

// Document is the structured (YAML or JSON) form of a region. Unlike Gmsh it keeps every
// field and every group, including groups with no elements.
type Document struct {
	Region   string            `json:"region"`
	Nodes    []int             `json:"nodes"`
	Elements []DocumentElement `json:"elements"`
	Fields   []DocumentField   `json:"fields,omitempty"`
	Groups   []DocumentGroup   `json:"groups,omitempty"`
}

type DocumentElement struct {
	ID    int    `json:"id"`
	Type  string `json:"type"`
	Nodes []int  `json:"nodes"`
}

type DocumentField struct {
	Name       string          `json:"name"`
	Coordinate bool            `json:"coordinate,omitempty"`
	Components int             `json:"components"`
	Values     []DocumentValue `json:"values"`
}

type DocumentValue struct {
	Node  int       `json:"node"`
	Value []float64 `json:"value"`
}

type DocumentGroup struct {
	Name       string              `json:"name"`
	MeshGroups []DocumentMeshGroup `json:"meshGroups,omitempty"`
}

type DocumentMeshGroup struct {
	Dimension int   `json:"dimension"`
	Elements  []int `json:"elements"`
}

// NewDocument captures the region
func NewDocument(r *mesh.Region) *Document {
	doc := &Document{
		Region: r.Name(),
		Nodes:  append([]int(nil), r.NodeIDs()...),
	}
	for d := 1; d <= mesh.MaxDimension; d++ {
		for _, e := range r.FindMeshByDimension(d).Elements() {
			doc.Elements = append(doc.Elements, DocumentElement{ID: e.ID, Type: e.Type.String(), Nodes: e.Nodes})
		}
	}
	for _, f := range r.Fieldmodule().Fields() {
		df := DocumentField{Name: f.Name(), Coordinate: f.IsTypeCoordinate(), Components: f.NumberOfComponents()}
		for _, id := range f.NodeIDs() {
			v, _ := f.NodeValue(id)
			df.Values = append(df.Values, DocumentValue{Node: id, Value: v})
		}
		doc.Fields = append(doc.Fields, df)
	}
	for _, g := range r.Groups() {
		dg := DocumentGroup{Name: g.Name()}
		for d := 1; d <= mesh.MaxDimension; d++ {
			if mg, ok := g.GetMeshGroup(d); ok {
				dg.MeshGroups = append(dg.MeshGroups, DocumentMeshGroup{Dimension: d, Elements: mg.ElementIDs()})
			}
		}
		doc.Groups = append(doc.Groups, dg)
	}
	return doc
}

// Build creates a new region from the document
func (doc *Document) Build() (*mesh.Region, error) {
	r := mesh.NewRegion(doc.Region)
	for _, id := range doc.Nodes {
		if err := r.AddNode(id); err != nil {
			return nil, err
		}
	}
	for _, de := range doc.Elements {
		et, err := utils.ParseElementType(de.Type)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", de.ID, err)
		}
		if _, err = r.AddElement(de.ID, et, de.Nodes); err != nil {
			return nil, err
		}
	}
	for _, df := range doc.Fields {
		f, err := r.Fieldmodule().CreateFieldFiniteElement(df.Name, df.Components)
		if err != nil {
			return nil, err
		}
		f.SetTypeCoordinate(df.Coordinate)
		for _, v := range df.Values {
			if !r.HasNode(v.Node) {
				return nil, fmt.Errorf("field %s: value for undefined node %d", df.Name, v.Node)
			}
			if err = f.SetNodeValue(v.Node, v.Value); err != nil {
				return nil, err
			}
		}
	}
	for _, dg := range doc.Groups {
		g := r.CreateGroup(dg.Name)
		for _, dmg := range dg.MeshGroups {
			mg, err := g.CreateMeshGroup(dmg.Dimension)
			if err != nil {
				return nil, err
			}
			for _, id := range dmg.Elements {
				e, ok := r.FindElementByID(id)
				if !ok {
					return nil, fmt.Errorf("group %s: undefined element %d", dg.Name, id)
				}
				if err = mg.AddElement(e); err != nil {
					return nil, err
				}
			}
		}
	}
	return r, nil
}

// ReadDocument reads a YAML or JSON region file
func ReadDocument(filename string) (*mesh.Region, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var doc Document
	// JSON is a subset of YAML, one decoder serves both
	if err = yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	r, err := doc.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return r, nil
}

// MarshalYAML renders the region as YAML
func MarshalYAML(r *mesh.Region) ([]byte, error) {
	return yaml.Marshal(NewDocument(r))
}

// MarshalJSON renders the region as indented JSON
func MarshalJSON(r *mesh.Region) ([]byte, error) {
	return json.MarshalIndent(NewDocument(r), "", "  ")
}
