/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/notargets/scaffoldgroup/mesh"
	"github.com/notargets/scaffoldgroup/regroup"
)

// InspectCmd represents the inspect command
var InspectCmd = &cobra.Command{
	Use:   "inspect <mesh file>",
	Short: "Print element counts, groups and surface classification of a scaffold mesh",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger()
		if err != nil {
			return err
		}
		path, err := homedir.Expand(args[0])
		if err != nil {
			return err
		}
		r, err := regroup.Load(regroup.FileLibrary{}, path, regroup.Options{Logger: logger})
		if err != nil {
			return err
		}
		return printInspection(r, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(InspectCmd)
}

type surfaceTally struct {
	count int
	area  float64
}

func (st *surfaceTally) add(f *mesh.Element, coordinates *mesh.Field) error {
	st.count++
	if coordinates == nil {
		return nil
	}
	a, err := mesh.FaceArea(f, coordinates)
	if err != nil {
		return err
	}
	st.area += a
	return nil
}

func printInspection(r *mesh.Region, w io.Writer) error {
	fmt.Fprintf(w, "Region %q\n", r.Name())
	for d := 1; d <= mesh.MaxDimension; d++ {
		fmt.Fprintf(w, "[%d]\t\t= %dD elements\n", r.FindMeshByDimension(d).Size(), d)
	}
	coordinates, ok := r.CoordinateField()
	if ok {
		fmt.Fprintf(w, "\"%s\"\t= Coordinate field\n", coordinates.Name())
	} else {
		fmt.Fprintln(w, "No coordinate field, areas are not computed")
	}

	sp := regroup.ClassifySurfaces(r)
	var inner, outer, other, interior surfaceTally
	for _, f := range r.FindMeshByDimension(2).Elements() {
		tally := &interior
		switch {
		case sp.Inner.Evaluate(f):
			tally = &inner
		case sp.Outer.Evaluate(f):
			tally = &outer
		case sp.Exterior.Evaluate(f):
			tally = &other
		}
		if err := tally.add(f, coordinates); err != nil {
			return err
		}
	}
	for _, row := range []struct {
		name  string
		tally surfaceTally
	}{
		{"Inner surface", inner},
		{"Outer surface", outer},
		{"Other exterior", other},
		{"Interior", interior},
	} {
		fmt.Fprintf(w, "%-16s %6d faces", row.name, row.tally.count)
		if coordinates != nil {
			fmt.Fprintf(w, "  area %.6g", row.tally.area)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "[%d]\t\t= Groups\n", len(r.Groups()))
	for _, name := range r.GroupNames() {
		g, _ := r.FindGroup(name)
		fmt.Fprintf(w, "%-24s", name)
		for d := 1; d <= mesh.MaxDimension; d++ {
			if mg, ok := g.GetMeshGroup(d); ok {
				fmt.Fprintf(w, " %dD:%d", d, mg.Size())
			}
		}
		if faces, ok := g.GetMeshGroup(2); ok {
			innerFaces, outerFaces := 0, 0
			for _, f := range faces.Elements() {
				if sp.Inner.Evaluate(f) {
					innerFaces++
				} else if sp.Outer.Evaluate(f) {
					outerFaces++
				}
			}
			fmt.Fprintf(w, " (inner %d, outer %d)", innerFaces, outerFaces)
		}
		fmt.Fprintln(w)
	}
	return nil
}
