package msh

import (
	"math"
	"slices"
)

// entitySynth collects, per dimension, the physical tags seen on the
// elements of each elementary entity of a v2.2 file
type entitySynth [4]map[int]map[int]struct{}

func newEntitySynth() *entitySynth {
	var s entitySynth
	for i := range s {
		s[i] = make(map[int]map[int]struct{})
	}
	return &s
}

func (s *entitySynth) add(dim, entityTag, physicalTag int) {
	physical, ok := s[dim][entityTag]
	if !ok {
		physical = make(map[int]struct{})
		s[dim][entityTag] = physical
	}
	physical[physicalTag] = struct{}{}
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// emit appends one entity per collected tag in ascending tag order
func (s *entitySynth) emit(e *Entities) {
	for _, tag := range sortedKeys(s[0]) {
		e.Points = append(e.Points, PointEntity{Tag: tag, PhysicalTags: sortedKeys(s[0][tag])})
	}
	for dim, dst := range []*[]BoundedEntity{&e.Curves, &e.Surfaces, &e.Volumes} {
		m := s[dim+1]
		for _, tag := range sortedKeys(m) {
			*dst = append(*dst, BoundedEntity{Tag: tag, PhysicalTags: sortedKeys(m[tag])})
		}
	}
}

type entityKey struct {
	dim, tag int
}

// unsetEntity never matches a real entity, so the first node always opens a block
var unsetEntity = entityKey{math.MaxInt, math.MaxInt}

// postProcess rebuilds v4-style blocks from the flat v2.2 node and element lists
func postProcess(doc *Document) {
	if doc.Format.Version != V22 {
		return
	}
	regroupNodes(doc)
	regroupElements(doc)
}

// regroupNodes assigns every node the entity of the last element block that
// references it, then splits the file node order into runs of equal
// entity. Unreferenced nodes belong to entity (0, 0).
func regroupNodes(doc *Document) {
	owner := make(map[uint64]entityKey)
	for i := range doc.Elements.Blocks {
		b := &doc.Elements.Blocks[i]
		n, err := NodesPerElement(b.ElementType)
		if err != nil {
			continue
		}
		key := entityKey{b.EntityDim, b.EntityTag}
		stride := n + 1
		for j := 0; j < b.Count; j++ {
			for _, node := range b.Data[j*stride+1 : (j+1)*stride] {
				owner[node] = key
			}
		}
	}

	var blocks []NodeBlock
	current := unsetEntity
	for i := range doc.Nodes.Blocks {
		old := &doc.Nodes.Blocks[i]
		entries := old.EntriesPerNode()
		for j, tag := range old.Tags {
			key := owner[tag]
			if key != current {
				blocks = append(blocks, NodeBlock{EntityDim: key.dim, EntityTag: key.tag})
				current = key
			}
			b := &blocks[len(blocks)-1]
			b.Tags = append(b.Tags, tag)
			b.Coordinates = append(b.Coordinates, old.Coordinates[j*entries:j*entries+3]...)
		}
	}
	doc.Nodes.Blocks = blocks
	doc.Nodes.Summarize()
}

type elementKey struct {
	dim, tag, elementType int
}

// regroupElements merges adjacent element blocks sharing entity and type
func regroupElements(doc *Document) {
	var blocks []ElementBlock
	current := elementKey{math.MaxInt, math.MaxInt, math.MaxInt}
	for _, b := range doc.Elements.Blocks {
		key := elementKey{b.EntityDim, b.EntityTag, b.ElementType}
		if key != current {
			blocks = append(blocks, ElementBlock{
				EntityDim:   b.EntityDim,
				EntityTag:   b.EntityTag,
				ElementType: b.ElementType,
			})
			current = key
		}
		last := &blocks[len(blocks)-1]
		last.Count += b.Count
		last.Data = append(last.Data, b.Data...)
	}
	doc.Elements.Blocks = blocks
	doc.Elements.Summarize()
}
