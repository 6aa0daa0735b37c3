// Package msh reads and writes Gmsh MSH mesh files, format versions 2.2 and
// 4.1, in ASCII or binary encoding.
//
// A file is loaded into a Document holding node and element blocks grouped
// by geometric entity, the entities themselves, physical group names and
// any NodeData, ElementData or ElementNodeData fields. Any Document can be
// written back in any supported version and encoding:
//
//	doc, err := msh.LoadFile("mesh.msh")
//	if err != nil {
//		return err
//	}
//	err = msh.SaveFile("mesh-v22.msh", doc, msh.V22, msh.Binary)
//
// Version 2.2 files carry no entity blocks. On load the nodes and elements
// are regrouped by the entity tags of the elements and entities are
// synthesized from them. Writing version 2.2 flattens the blocks and drops
// the entities.
//
// Binary payloads use the byte order of the host. Files written on a host of
// the other byte order are rejected with ErrUnsupportedFeature.
package msh
