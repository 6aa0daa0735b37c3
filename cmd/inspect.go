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
	"sort"

	"github.com/ghodss/yaml"
	"github.com/notargets/gomsh/msh"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
)

type BlockSummary struct {
	EntityDim   int    `json:"entityDim"`
	EntityTag   int    `json:"entityTag"`
	ElementType string `json:"elementType,omitempty"`
	Count       int    `json:"count"`
}

type DataSummary struct {
	Section         string `json:"section"`
	Name            string `json:"name,omitempty"`
	Entries         int    `json:"entries"`
	EntrySize       int    `json:"entrySize"`
	NodesPerElement int    `json:"nodesPerElement,omitempty"`
}

type Extent struct {
	Min [3]float64 `json:"min"`
	Max [3]float64 `json:"max"`
}

type MeshSummary struct {
	File           string              `json:"file"`
	Version        string              `json:"version"`
	Encoding       string              `json:"encoding"`
	Nodes          int                 `json:"nodes"`
	NodeTags       [2]uint64           `json:"nodeTags"`
	Elements       int                 `json:"elements"`
	ElementTags    [2]uint64           `json:"elementTags"`
	ElementTypes   map[string]int      `json:"elementTypes,omitempty"`
	Entities       [4]int              `json:"entities"`
	PhysicalGroups []msh.PhysicalGroup `json:"physicalGroups,omitempty"`
	Extent         *Extent             `json:"extent,omitempty"`
	NodeBlocks     []BlockSummary      `json:"nodeBlocks,omitempty"`
	ElementBlocks  []BlockSummary      `json:"elementBlocks,omitempty"`
	Data           []DataSummary       `json:"data,omitempty"`
	Curves         int                 `json:"curves,omitempty"`
	Patches        int                 `json:"patches,omitempty"`
}

// InspectCmd represents the inspect command
var InspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Summarize the contents of an MSH file",
	Long: `Summarize the contents of an MSH file: format, node and element counts,
tag ranges, element types, entities, physical groups, coordinate extent and
data blocks.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asYAML, _ := cmd.Flags().GetBool("yaml")
		blocks, _ := cmd.Flags().GetBool("blocks")

		progress(cmd).Printf("reading %s", args[0])
		doc, err := msh.LoadFile(args[0], mshOptions(cmd)...)
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}
		s := Summarize(args[0], doc, blocks)
		if asYAML {
			out, err := yaml.Marshal(s)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		}
		s.Print(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(InspectCmd)
	InspectCmd.Flags().Bool("yaml", false, "print the summary as YAML")
	InspectCmd.Flags().BoolP("blocks", "b", false, "list every node and element block")
}

func Summarize(file string, doc *msh.Document, blocks bool) *MeshSummary {
	s := &MeshSummary{
		File:           file,
		Version:        string(doc.Format.Version),
		Encoding:       doc.Format.Encoding().String(),
		Nodes:          doc.Nodes.NumNodes,
		NodeTags:       [2]uint64{doc.Nodes.MinTag, doc.Nodes.MaxTag},
		Elements:       doc.Elements.NumElements,
		ElementTags:    [2]uint64{doc.Elements.MinTag, doc.Elements.MaxTag},
		ElementTypes:   make(map[string]int),
		PhysicalGroups: doc.PhysicalGroups,
		Extent:         nodeExtent(&doc.Nodes),
		Curves:         len(doc.Curves),
		Patches:        len(doc.Patches),
		Entities: [4]int{
			len(doc.Entities.Points), len(doc.Entities.Curves),
			len(doc.Entities.Surfaces), len(doc.Entities.Volumes),
		},
	}
	for _, b := range doc.Elements.Blocks {
		s.ElementTypes[msh.ElementName(b.ElementType)] += b.Count
		if blocks {
			s.ElementBlocks = append(s.ElementBlocks, BlockSummary{
				EntityDim: b.EntityDim, EntityTag: b.EntityTag,
				ElementType: msh.ElementName(b.ElementType), Count: b.Count,
			})
		}
	}
	if blocks {
		for i := range doc.Nodes.Blocks {
			b := &doc.Nodes.Blocks[i]
			s.NodeBlocks = append(s.NodeBlocks, BlockSummary{
				EntityDim: b.EntityDim, EntityTag: b.EntityTag, Count: b.NumNodes(),
			})
		}
	}
	for _, section := range []struct {
		name string
		data []msh.Data
	}{
		{"NodeData", doc.NodeData},
		{"ElementData", doc.ElementData},
		{"ElementNodeData", doc.ElementNodeData},
	} {
		for i := range section.data {
			d := &section.data[i]
			ds := DataSummary{
				Section:         section.name,
				Entries:         len(d.Tags),
				EntrySize:       d.EntrySize(),
				NodesPerElement: d.NodesPerElement,
			}
			if len(d.Header.StringTags) > 0 {
				ds.Name = d.Header.StringTags[0]
			}
			s.Data = append(s.Data, ds)
		}
	}
	return s
}

// nodeExtent is the axis-aligned bounding box of all nodes, nil without nodes
func nodeExtent(n *msh.Nodes) *Extent {
	var xyz [3][]float64
	for i := range n.Blocks {
		b := &n.Blocks[i]
		entries := b.EntriesPerNode()
		for j := 0; j < b.NumNodes(); j++ {
			for k := range xyz {
				xyz[k] = append(xyz[k], b.Coordinates[j*entries+k])
			}
		}
	}
	if len(xyz[0]) == 0 {
		return nil
	}
	e := &Extent{}
	for k := range xyz {
		e.Min[k], e.Max[k] = floats.Min(xyz[k]), floats.Max(xyz[k])
	}
	return e
}

func (s *MeshSummary) Print(w io.Writer) {
	fmt.Fprintf(w, "File:            %s\n", s.File)
	fmt.Fprintf(w, "Format:          v%s %s\n", s.Version, s.Encoding)
	fmt.Fprintf(w, "Nodes:           %d [%d, %d]\n", s.Nodes, s.NodeTags[0], s.NodeTags[1])
	fmt.Fprintf(w, "Elements:        %d [%d, %d]\n", s.Elements, s.ElementTags[0], s.ElementTags[1])
	names := make([]string, 0, len(s.ElementTypes))
	for name := range s.ElementTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-14s %d\n", name, s.ElementTypes[name])
	}
	fmt.Fprintf(w, "Entities:        %d points, %d curves, %d surfaces, %d volumes\n",
		s.Entities[0], s.Entities[1], s.Entities[2], s.Entities[3])
	for _, g := range s.PhysicalGroups {
		fmt.Fprintf(w, "Physical group:  %d %d %q\n", g.Dimension, g.Tag, g.Name)
	}
	if s.Extent != nil {
		fmt.Fprintf(w, "Extent:          %v - %v\n", s.Extent.Min, s.Extent.Max)
	}
	for _, b := range s.NodeBlocks {
		fmt.Fprintf(w, "Node block:      entity (%d, %d) %d nodes\n", b.EntityDim, b.EntityTag, b.Count)
	}
	for _, b := range s.ElementBlocks {
		fmt.Fprintf(w, "Element block:   entity (%d, %d) %d x %s\n", b.EntityDim, b.EntityTag, b.Count, b.ElementType)
	}
	for _, d := range s.Data {
		fmt.Fprintf(w, "%-17s%q %d entries x %d values\n", d.Section+":", d.Name, d.Entries, d.EntrySize)
	}
	if s.Curves > 0 || s.Patches > 0 {
		fmt.Fprintf(w, "Splines:         %d curves, %d patches\n", s.Curves, s.Patches)
	}
}
