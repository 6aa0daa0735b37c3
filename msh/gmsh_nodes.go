package msh

var nodesCodecs = codecTable{
	section: sectionNodes,
	codecs: map[codecKey]codec{
		{V22, ASCII}:  {read: readNodes22ASCII, write: writeNodes22ASCII},
		{V22, Binary}: {read: readNodes22Binary, write: writeNodes22Binary},
		{V41, ASCII}:  {read: readNodes41ASCII, write: writeNodes41ASCII},
		{V41, Binary}: {read: readNodes41Binary, write: writeNodes41Binary},
	},
}

// nodeRow22 is one binary v2.2 node record
type nodeRow22 struct {
	Tag int32
	XYZ [3]float64
}

func readNodes41ASCII(r *reader, doc *Document) error {
	var (
		n   Nodes
		err error
	)
	if n.NumBlocks, err = r.readCount("number of node blocks"); err != nil {
		return err
	}
	if n.NumNodes, err = r.readCount("number of nodes"); err != nil {
		return err
	}
	if n.MinTag, err = r.readUint("min node tag"); err != nil {
		return err
	}
	if n.MaxTag, err = r.readUint("max node tag"); err != nil {
		return err
	}

	n.Blocks = make([]NodeBlock, 0, capHint(n.NumBlocks))
	for i := 0; i < n.NumBlocks; i++ {
		var b NodeBlock
		if b.EntityDim, err = r.readInt("entity dimension"); err != nil {
			return err
		}
		if b.EntityTag, err = r.readInt("entity tag"); err != nil {
			return err
		}
		if b.Parametric, err = r.readInt("parametric flag"); err != nil {
			return err
		}
		if err = checkNodeBlock(r, &b); err != nil {
			return err
		}
		count, err := r.readCount("number of nodes in block")
		if err != nil {
			return err
		}
		b.Tags = make([]uint64, 0, capHint(count))
		for j := 0; j < count; j++ {
			tag, err := r.readUint("node tag")
			if err != nil {
				return err
			}
			b.Tags = append(b.Tags, tag)
		}
		entries := b.EntriesPerNode()
		b.Coordinates = make([]float64, 0, capHint(count*entries))
		for j := 0; j < count*entries; j++ {
			x, err := r.readFloat("node coordinate")
			if err != nil {
				return err
			}
			b.Coordinates = append(b.Coordinates, x)
		}
		n.Blocks = append(n.Blocks, b)
	}
	doc.Nodes = n
	return nil
}

func checkNodeBlock(r *reader, b *NodeBlock) error {
	if b.EntityDim < 0 || b.EntityDim > 3 {
		return invalidFormat(r.section, "entity dimension %d out of range", b.EntityDim)
	}
	if b.Parametric < 0 || b.Parametric > 3 {
		return invalidFormat(r.section, "parametric flag %d out of range", b.Parametric)
	}
	return nil
}

func readNodes41Binary(r *reader, doc *Document) error {
	if err := r.skipLayout(1); err != nil {
		return err
	}
	header, err := r.readSizes("nodes header", 4)
	if err != nil {
		return err
	}
	if header[0] > uint64(maxInt) || header[1] > uint64(maxInt) {
		return invalidFormat(r.section, "node counts %d/%d out of range", header[0], header[1])
	}
	n := Nodes{
		NumBlocks: int(header[0]),
		NumNodes:  int(header[1]),
		MinTag:    header[2],
		MaxTag:    header[3],
	}

	n.Blocks = make([]NodeBlock, 0, capHint(n.NumBlocks))
	for i := 0; i < n.NumBlocks; i++ {
		fields, err := r.readInt32s("node block header", 3)
		if err != nil {
			return err
		}
		b := NodeBlock{
			EntityDim:  int(fields[0]),
			EntityTag:  int(fields[1]),
			Parametric: int(fields[2]),
		}
		if err = checkNodeBlock(r, &b); err != nil {
			return err
		}
		count, err := r.readSizeCount("number of nodes in block")
		if err != nil {
			return err
		}
		if b.Tags, err = r.readSizes("node tags", count); err != nil {
			return err
		}
		if b.Coordinates, err = r.readFloat64s("node coordinates", count*b.EntriesPerNode()); err != nil {
			return err
		}
		n.Blocks = append(n.Blocks, b)
	}
	doc.Nodes = n
	return nil
}

// v2.2 has no node blocks: each $Nodes section becomes one block owned by
// entity (0, 0) until the version adapter regroups them
func readNodes22ASCII(r *reader, doc *Document) error {
	count, err := r.readCount("number of nodes")
	if err != nil {
		return err
	}
	b := NodeBlock{
		Tags:        make([]uint64, 0, capHint(count)),
		Coordinates: make([]float64, 0, capHint(3*count)),
	}
	var xyz [3]float64
	for i := 0; i < count; i++ {
		tag, err := r.readUint("node tag")
		if err != nil {
			return err
		}
		if err = r.readFloats("node coordinate", xyz[:]); err != nil {
			return err
		}
		b.Tags = append(b.Tags, tag)
		b.Coordinates = append(b.Coordinates, xyz[:]...)
	}
	doc.Nodes.Blocks = append(doc.Nodes.Blocks, b)
	doc.Nodes.Summarize()
	return nil
}

func readNodes22Binary(r *reader, doc *Document) error {
	count, err := r.readCount("number of nodes")
	if err != nil {
		return err
	}
	if err = r.skipLayout(1); err != nil {
		return err
	}
	b := NodeBlock{
		Tags:        make([]uint64, 0, capHint(count)),
		Coordinates: make([]float64, 0, capHint(3*count)),
	}
	for done := 0; done < count; {
		rows := make([]nodeRow22, min(binaryChunk, count-done))
		if err = r.readBinary("node record", rows); err != nil {
			return err
		}
		for _, row := range rows {
			b.Tags = append(b.Tags, uint64(row.Tag))
			b.Coordinates = append(b.Coordinates, row.XYZ[:]...)
		}
		done += len(rows)
	}
	doc.Nodes.Blocks = append(doc.Nodes.Blocks, b)
	doc.Nodes.Summarize()
	return nil
}

func checkNodeCoordinates(i int, b *NodeBlock) error {
	if want := b.NumNodes() * b.EntriesPerNode(); len(b.Coordinates) != want {
		return invalidFormat(sectionNodes, "node block %d holds %d coordinates, want %d",
			i, len(b.Coordinates), want)
	}
	return nil
}

func writeNodes41ASCII(w *writer, doc *Document) error {
	n := &doc.Nodes
	w.printf("%d %d %d %d\n", len(n.Blocks), countNodes(n), n.MinTag, n.MaxTag)
	for i := range n.Blocks {
		b := &n.Blocks[i]
		if err := checkNodeCoordinates(i, b); err != nil {
			return err
		}
		w.printf("%d %d %d %d\n", b.EntityDim, b.EntityTag, b.Parametric, b.NumNodes())
		for _, tag := range b.Tags {
			w.uintRow([]uint64{tag})
		}
		entries := b.EntriesPerNode()
		for j := 0; j < b.NumNodes(); j++ {
			w.floatRow(b.Coordinates[j*entries : (j+1)*entries])
		}
	}
	return nil
}

func writeNodes41Binary(w *writer, doc *Document) error {
	n := &doc.Nodes
	w.binary([]uint64{uint64(len(n.Blocks)), uint64(countNodes(n)), n.MinTag, n.MaxTag})
	for i := range n.Blocks {
		b := &n.Blocks[i]
		if err := checkNodeCoordinates(i, b); err != nil {
			return err
		}
		w.binary([]int32{int32(b.EntityDim), int32(b.EntityTag), int32(b.Parametric)})
		w.size(uint64(b.NumNodes()))
		w.binary(b.Tags)
		w.binary(b.Coordinates)
	}
	w.line("")
	return nil
}

// v2.2 writers flatten the blocks and keep only x, y, z
func writeNodes22ASCII(w *writer, doc *Document) error {
	n := &doc.Nodes
	w.printf("%d\n", countNodes(n))
	row := make([]float64, 0, 3)
	for i := range n.Blocks {
		b := &n.Blocks[i]
		if err := checkNodeCoordinates(i, b); err != nil {
			return err
		}
		entries := b.EntriesPerNode()
		for j, tag := range b.Tags {
			w.printf("%d ", tag)
			row = append(row[:0], b.Coordinates[j*entries:j*entries+3]...)
			w.floatRow(row)
		}
	}
	return nil
}

func writeNodes22Binary(w *writer, doc *Document) error {
	n := &doc.Nodes
	w.printf("%d\n", countNodes(n))
	for i := range n.Blocks {
		b := &n.Blocks[i]
		if err := checkNodeCoordinates(i, b); err != nil {
			return err
		}
		entries := b.EntriesPerNode()
		rows := make([]nodeRow22, b.NumNodes())
		for j, tag := range b.Tags {
			rows[j].Tag = int32(tag)
			copy(rows[j].XYZ[:], b.Coordinates[j*entries:j*entries+3])
		}
		w.binary(rows)
	}
	w.line("")
	return nil
}

func countNodes(n *Nodes) int {
	total := 0
	for i := range n.Blocks {
		total += n.Blocks[i].NumNodes()
	}
	return total
}
