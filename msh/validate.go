package msh

// Validate checks the structural invariants of doc and returns a
// CorruptData error describing the first violation found
func Validate(doc *Document) error {
	if err := validateNodes(&doc.Nodes); err != nil {
		return err
	}
	return validateElements(&doc.Elements, &doc.Nodes)
}

func validateNodes(n *Nodes) error {
	if n.NumBlocks != len(n.Blocks) {
		return corrupt("node block count %d does not match %d blocks", n.NumBlocks, len(n.Blocks))
	}
	if n.MinTag > n.MaxTag {
		return corrupt("min node tag %d exceeds max node tag %d", n.MinTag, n.MaxTag)
	}
	total := 0
	for i := range n.Blocks {
		b := &n.Blocks[i]
		total += b.NumNodes()
		for _, tag := range b.Tags {
			if tag < n.MinTag || tag > n.MaxTag {
				return corrupt("node tag %d in block %d outside [%d, %d]", tag, i, n.MinTag, n.MaxTag)
			}
		}
		if want := b.NumNodes() * b.EntriesPerNode(); len(b.Coordinates) != want {
			return corrupt("node block %d holds %d coordinates, want %d", i, len(b.Coordinates), want)
		}
	}
	if total != n.NumNodes {
		return corrupt("node count %d does not match %d nodes in blocks", n.NumNodes, total)
	}
	return nil
}

func validateElements(e *Elements, n *Nodes) error {
	if e.NumBlocks != len(e.Blocks) {
		return corrupt("element block count %d does not match %d blocks", e.NumBlocks, len(e.Blocks))
	}
	if e.MinTag > e.MaxTag {
		return corrupt("min element tag %d exceeds max element tag %d", e.MinTag, e.MaxTag)
	}
	total := 0
	for i := range e.Blocks {
		b := &e.Blocks[i]
		total += b.Count
		if b.Count == 0 {
			if len(b.Data) != 0 {
				return corrupt("empty element block %d holds %d values", i, len(b.Data))
			}
			continue
		}
		if len(b.Data)%b.Count != 0 {
			return corrupt("element block %d: %d values do not split into %d rows", i, len(b.Data), b.Count)
		}
		stride := len(b.Data) / b.Count
		if nodes, err := NodesPerElement(b.ElementType); err != nil {
			return corrupt("element block %d: %v", i, err)
		} else if stride != nodes+1 {
			return corrupt("element block %d: rows of %d values, want %d for %s",
				i, stride, nodes+1, ElementName(b.ElementType))
		}
		for j := 0; j < b.Count; j++ {
			row := b.Data[j*stride : (j+1)*stride]
			if row[0] < e.MinTag || row[0] > e.MaxTag {
				return corrupt("element tag %d in block %d outside [%d, %d]", row[0], i, e.MinTag, e.MaxTag)
			}
			for _, node := range row[1:] {
				if node < n.MinTag || node > n.MaxTag {
					return corrupt("element %d references node %d outside [%d, %d]",
						row[0], node, n.MinTag, n.MaxTag)
				}
			}
		}
	}
	if total != e.NumElements {
		return corrupt("element count %d does not match %d elements in blocks", e.NumElements, total)
	}
	return nil
}
