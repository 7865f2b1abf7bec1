package readers

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/notargets/scaffoldgroup/mesh"
	"github.com/notargets/scaffoldgroup/utils"
)

// gmshTypeNumber22 is the inverse of gmshElementType22
var gmshTypeNumber22 = func() map[utils.ElementType]int {
	m := make(map[utils.ElementType]int, len(gmshElementType22))
	for num, et := range gmshElementType22 {
		m[et] = num
	}
	return m
}()

// physicalGroup is one named mesh group as written to the file
type physicalGroup struct {
	dimension, tag int
	name           string
	meshGroup      *mesh.MeshGroup
}

// EncodeGmsh22 writes the region as a Gmsh 2.2 ASCII file. Node positions come from the
// region's coordinate field. Each group's mesh groups become physical groups numbered from 1
// within each dimension; an element in several groups is written once per group.
func EncodeGmsh22(w io.Writer, r *mesh.Region) error {
	coordinates, ok := r.CoordinateField()
	if !ok {
		return fmt.Errorf("region %s has no coordinate field", r.Name())
	}

	var physicals []physicalGroup
	nextTag := make(map[int]int)
	for _, g := range r.Groups() {
		// Physical names are quoted on a single line
		if strings.ContainsAny(g.Name(), "\"\n\r") {
			return fmt.Errorf("group %q cannot be written as a Gmsh physical name", g.Name())
		}
		for d := 1; d <= mesh.MaxDimension; d++ {
			if mg, ok := g.GetMeshGroup(d); ok {
				nextTag[d]++
				physicals = append(physicals, physicalGroup{d, nextTag[d], g.Name(), mg})
			}
		}
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "$MeshFormat")
	fmt.Fprintln(bw, "2.2 0 8")
	fmt.Fprintln(bw, "$EndMeshFormat")

	if len(physicals) > 0 {
		fmt.Fprintln(bw, "$PhysicalNames")
		fmt.Fprintln(bw, len(physicals))
		for _, p := range physicals {
			fmt.Fprintf(bw, "%d %d \"%s\"\n", p.dimension, p.tag, p.name)
		}
		fmt.Fprintln(bw, "$EndPhysicalNames")
	}

	nodes := r.NodeIDs()
	fmt.Fprintln(bw, "$Nodes")
	fmt.Fprintln(bw, len(nodes))
	for _, id := range nodes {
		x, err := coordinates.Position(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(bw, "%d %s %s %s\n", id, formatFloat(x.X), formatFloat(x.Y), formatFloat(x.Z))
	}
	fmt.Fprintln(bw, "$EndNodes")

	// Lines are collected first, the element count leads the section
	var lines []string
	for d := 1; d <= mesh.MaxDimension; d++ {
		for _, e := range r.FindMeshByDimension(d).Elements() {
			num, ok := gmshTypeNumber22[e.Type]
			if !ok {
				return fmt.Errorf("element %d: %s has no Gmsh equivalent", e.ID, e.Type)
			}
			nodeList := ""
			for _, n := range e.Nodes {
				nodeList += " " + strconv.Itoa(n)
			}
			written := false
			for _, p := range physicals {
				if p.dimension == d && p.meshGroup.ContainsElement(e) {
					lines = append(lines, fmt.Sprintf("%d %d 2 %d %d%s", e.ID, num, p.tag, p.tag, nodeList))
					written = true
				}
			}
			if !written {
				lines = append(lines, fmt.Sprintf("%d %d 2 0 0%s", e.ID, num, nodeList))
			}
		}
	}
	fmt.Fprintln(bw, "$Elements")
	fmt.Fprintln(bw, len(lines))
	for _, line := range lines {
		fmt.Fprintln(bw, line)
	}
	fmt.Fprintln(bw, "$EndElements")

	return bw.Flush()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
