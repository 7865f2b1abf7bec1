package readers

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/notargets/scaffoldgroup/mesh"
	"github.com/notargets/scaffoldgroup/utils"
)

// CoordinatesFieldName is the field that node positions are stored in
const CoordinatesFieldName = "coordinates"

// gmshElementType22 maps Gmsh v2.2 element type numbers to our ElementType
var gmshElementType22 = map[int]utils.ElementType{
	1: utils.Line,     // 2-node line
	2: utils.Triangle, // 3-node triangle
	3: utils.Quad,     // 4-node quadrangle
	4: utils.Tet,      // 4-node tetrahedron
	5: utils.Hex,      // 8-node hexahedron
	6: utils.Prism,    // 6-node prism
	7: utils.Pyramid,  // 5-node pyramid
}

const gmshPoint = 15

// physicalKey identifies a Gmsh physical group, tags are only unique within a dimension
type physicalKey struct {
	dimension, tag int
}

// lineScanner tracks line numbers for error reporting
type lineScanner struct {
	*bufio.Scanner
	line int
}

func (s *lineScanner) Scan() bool {
	if s.Scanner.Scan() {
		s.line++
		return true
	}
	return false
}

func (s *lineScanner) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("line %d: %s", s.line, fmt.Sprintf(format, args...))
}

// gmsh22Reader accumulates a region while scanning, group membership is resolved at the end
type gmsh22Reader struct {
	region      *mesh.Region
	coordinates *mesh.Field
	names       map[physicalKey]string
	nameOrder   []physicalKey
	membership  map[physicalKey][]int // Physical group -> element IDs
	memberOrder []physicalKey
}

// ReadGmsh22 reads a Gmsh MSH file format version 2.2 (ASCII)
func ReadGmsh22(filename string) (*mesh.Region, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	region, err := DecodeGmsh22(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return region, nil
}

// DecodeGmsh22 reads a Gmsh 2.2 ASCII stream into a new region
func DecodeGmsh22(r io.Reader) (*mesh.Region, error) {
	scanner := &lineScanner{Scanner: bufio.NewScanner(r)}
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	rd := &gmsh22Reader{
		region:     mesh.NewRegion("gmsh"),
		names:      make(map[physicalKey]string),
		membership: make(map[physicalKey][]int),
	}
	var err error
	if rd.coordinates, err = rd.region.Fieldmodule().CreateFieldFiniteElement(CoordinatesFieldName, 3); err != nil {
		return nil, err
	}
	rd.coordinates.SetTypeCoordinate(true)

	sawFormat := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case "$MeshFormat":
			if err = readMeshFormat22(scanner); err != nil {
				return nil, err
			}
			sawFormat = true

		case "$PhysicalNames":
			err = rd.readPhysicalNames(scanner)

		case "$Nodes":
			err = rd.readNodes22(scanner)

		case "$Elements":
			err = rd.readElements22(scanner)

		default:
			if !strings.HasPrefix(line, "$") {
				return nil, scanner.errorf("unexpected content %q", line)
			}
			// Skip data and any other sections
			err = skipSection(scanner, "$End"+line[1:])
		}
		if err != nil {
			return nil, err
		}
	}

	if err = scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %v", err)
	}
	if !sawFormat {
		return nil, fmt.Errorf("could not find $MeshFormat section")
	}
	if err = rd.buildGroups(); err != nil {
		return nil, err
	}
	return rd.region, nil
}

// readMeshFormat22 reads the MeshFormat section
func readMeshFormat22(scanner *lineScanner) error {
	if !scanner.Scan() {
		return scanner.errorf("unexpected EOF in MeshFormat")
	}

	parts := strings.Fields(scanner.Text())
	if len(parts) < 3 {
		return scanner.errorf("invalid MeshFormat line")
	}
	if !strings.HasPrefix(parts[0], "2.") {
		return scanner.errorf("unsupported Gmsh format version: %s", parts[0])
	}
	if parts[1] != "0" {
		return scanner.errorf("binary Gmsh files are not supported")
	}
	return skipSection(scanner, "$EndMeshFormat")
}

// readPhysicalNames reads physical group names
func (rd *gmsh22Reader) readPhysicalNames(scanner *lineScanner) error {
	numNames, err := readCount(scanner, "PhysicalNames")
	if err != nil {
		return err
	}

	for i := 0; i < numNames; i++ {
		if !scanner.Scan() {
			return scanner.errorf("unexpected EOF reading physical names")
		}

		parts := strings.Fields(scanner.Text())
		if len(parts) < 3 {
			return scanner.errorf("invalid physical name line %q", scanner.Text())
		}
		dimension, err1 := strconv.Atoi(parts[0])
		tag, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil {
			return scanner.errorf("invalid physical name line %q", scanner.Text())
		}
		// Names are quoted and may contain spaces
		name := strings.Trim(strings.Join(parts[2:], " "), "\"")
		// Physical points have no elements here
		if dimension < 1 || dimension > mesh.MaxDimension {
			continue
		}

		key := physicalKey{dimension, tag}
		if _, exists := rd.names[key]; !exists {
			rd.nameOrder = append(rd.nameOrder, key)
		}
		rd.names[key] = name
	}

	return skipSection(scanner, "$EndPhysicalNames")
}

// readNodes22 reads nodes in v2.2 format
func (rd *gmsh22Reader) readNodes22(scanner *lineScanner) error {
	numNodes, err := readCount(scanner, "Nodes")
	if err != nil {
		return err
	}

	for i := 0; i < numNodes; i++ {
		if !scanner.Scan() {
			return scanner.errorf("unexpected EOF reading nodes")
		}

		parts := strings.Fields(scanner.Text())
		if len(parts) < 4 {
			return scanner.errorf("invalid node line: %s", scanner.Text())
		}

		nodeID, err := strconv.Atoi(parts[0])
		if err != nil {
			return scanner.errorf("invalid node id %q", parts[0])
		}
		x := make([]float64, 3)
		for j := range x {
			if x[j], err = strconv.ParseFloat(parts[1+j], 64); err != nil {
				return scanner.errorf("node %d: invalid coordinate %q", nodeID, parts[1+j])
			}
		}
		if err = rd.region.AddNode(nodeID); err != nil {
			return scanner.errorf("%v", err)
		}
		if err = rd.coordinates.SetNodeValue(nodeID, x); err != nil {
			return err
		}
	}

	return skipSection(scanner, "$EndNodes")
}

// readElements22 reads elements in v2.2 format. An element belonging to several physical
// groups appears once per group with the same number and connectivity.
func (rd *gmsh22Reader) readElements22(scanner *lineScanner) error {
	numElements, err := readCount(scanner, "Elements")
	if err != nil {
		return err
	}

	for i := 0; i < numElements; i++ {
		if !scanner.Scan() {
			return scanner.errorf("unexpected EOF reading elements")
		}

		parts := strings.Fields(scanner.Text())
		if len(parts) < 3 {
			return scanner.errorf("invalid element line")
		}

		ints := make([]int, len(parts))
		for j, p := range parts {
			if ints[j], err = strconv.Atoi(p); err != nil {
				return scanner.errorf("invalid integer %q in element line", p)
			}
		}
		elemID, gmshType, numTags := ints[0], ints[1], ints[2]
		if numTags < 0 || len(parts) < 3+numTags {
			return scanner.errorf("element %d: invalid element tags", elemID)
		}
		if gmshType == gmshPoint {
			continue
		}

		etype, ok := gmshElementType22[gmshType]
		if !ok {
			return scanner.errorf("element %d: unsupported Gmsh element type %d", elemID, gmshType)
		}

		nodeStart := 3 + numTags
		nodeIDs := ints[nodeStart:]
		if len(nodeIDs) != etype.GetNumNodes() {
			return scanner.errorf("element %d: expected %d nodes, got %d",
				elemID, etype.GetNumNodes(), len(nodeIDs))
		}

		if existing, found := rd.region.FindElementByID(elemID); found {
			if existing.Type != etype || !equalInts(existing.Nodes, nodeIDs) {
				return scanner.errorf("element %d redefined with different connectivity", elemID)
			}
		} else if _, err = rd.region.AddElement(elemID, etype, nodeIDs); err != nil {
			return scanner.errorf("%v", err)
		}

		// Physical tag is the first tag, 0 means no physical group
		if numTags > 0 && ints[3] != 0 {
			key := physicalKey{etype.GetDimension(), ints[3]}
			if _, seen := rd.membership[key]; !seen {
				rd.memberOrder = append(rd.memberOrder, key)
			}
			rd.membership[key] = append(rd.membership[key], elemID)
		}
	}

	return skipSection(scanner, "$EndElements")
}

// buildGroups turns physical groups into named region groups. Physical groups of different
// dimensions sharing a name become the subgroups of one group; unnamed physical groups are
// named after their tag.
func (rd *gmsh22Reader) buildGroups() error {
	groupName := func(key physicalKey) string {
		if name, ok := rd.names[key]; ok {
			return name
		}
		return fmt.Sprintf("physical_%d", key.tag)
	}
	keys := append([]physicalKey(nil), rd.nameOrder...)
	for _, key := range rd.memberOrder {
		if _, named := rd.names[key]; !named {
			keys = append(keys, key)
		}
	}
	for _, key := range keys {
		g := rd.region.CreateGroup(groupName(key))
		mg, err := g.CreateMeshGroup(key.dimension)
		if err != nil {
			return err
		}
		for _, id := range rd.membership[key] {
			e, _ := rd.region.FindElementByID(id)
			if err = mg.AddElement(e); err != nil {
				return err
			}
		}
	}
	return nil
}

func readCount(scanner *lineScanner, section string) (int, error) {
	if !scanner.Scan() {
		return 0, scanner.errorf("unexpected EOF in %s", section)
	}
	n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil || n < 0 {
		return 0, scanner.errorf("invalid %s count %q", section, scanner.Text())
	}
	return n, nil
}

func skipSection(scanner *lineScanner, endMarker string) error {
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == endMarker {
			return nil
		}
	}
	return scanner.errorf("unexpected EOF looking for %s", endMarker)
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
