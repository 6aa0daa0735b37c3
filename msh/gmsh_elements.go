package msh

var elementsCodecs = codecTable{
	section: sectionElements,
	codecs: map[codecKey]codec{
		{V22, ASCII}:  {read: readElements22ASCII, write: writeElements22ASCII},
		{V22, Binary}: {read: readElements22Binary, write: writeElements22Binary},
		{V41, ASCII}:  {read: readElements41ASCII, write: writeElements41ASCII},
		{V41, Binary}: {read: readElements41Binary, write: writeElements41Binary},
	},
}

func readElements41ASCII(r *reader, doc *Document) error {
	var (
		e   Elements
		err error
	)
	if e.NumBlocks, err = r.readCount("number of element blocks"); err != nil {
		return err
	}
	if e.NumElements, err = r.readCount("number of elements"); err != nil {
		return err
	}
	if e.MinTag, err = r.readUint("min element tag"); err != nil {
		return err
	}
	if e.MaxTag, err = r.readUint("max element tag"); err != nil {
		return err
	}

	e.Blocks = make([]ElementBlock, 0, capHint(e.NumBlocks))
	for i := 0; i < e.NumBlocks; i++ {
		var b ElementBlock
		if b.EntityDim, err = r.readInt("entity dimension"); err != nil {
			return err
		}
		if b.EntityTag, err = r.readInt("entity tag"); err != nil {
			return err
		}
		if b.ElementType, err = r.readInt("element type"); err != nil {
			return err
		}
		if b.Count, err = r.readCount("number of elements in block"); err != nil {
			return err
		}
		n, err := sectionNodesPerElement(r.section, b.ElementType)
		if err != nil {
			return err
		}
		size := b.Count * (n + 1)
		b.Data = make([]uint64, 0, capHint(size))
		for j := 0; j < size; j++ {
			v, err := r.readUint("element data")
			if err != nil {
				return err
			}
			b.Data = append(b.Data, v)
		}
		e.Blocks = append(e.Blocks, b)
	}
	doc.Elements = e
	return nil
}

func readElements41Binary(r *reader, doc *Document) error {
	if err := r.skipLayout(1); err != nil {
		return err
	}
	header, err := r.readSizes("elements header", 4)
	if err != nil {
		return err
	}
	if header[0] > uint64(maxInt) || header[1] > uint64(maxInt) {
		return invalidFormat(r.section, "element counts %d/%d out of range", header[0], header[1])
	}
	e := Elements{
		NumBlocks:   int(header[0]),
		NumElements: int(header[1]),
		MinTag:      header[2],
		MaxTag:      header[3],
	}

	e.Blocks = make([]ElementBlock, 0, capHint(e.NumBlocks))
	for i := 0; i < e.NumBlocks; i++ {
		fields, err := r.readInt32s("element block header", 3)
		if err != nil {
			return err
		}
		b := ElementBlock{
			EntityDim:   int(fields[0]),
			EntityTag:   int(fields[1]),
			ElementType: int(fields[2]),
		}
		if b.Count, err = r.readSizeCount("number of elements in block"); err != nil {
			return err
		}
		n, err := sectionNodesPerElement(r.section, b.ElementType)
		if err != nil {
			return err
		}
		if b.Data, err = r.readSizes("element data", b.Count*(n+1)); err != nil {
			return err
		}
		e.Blocks = append(e.Blocks, b)
	}
	doc.Elements = e
	return nil
}

// entityTag22 picks the owning entity of a v2.2 element from its tags:
// the elementary tag when present, else the only tag, else 1
func entityTag22(tags []int) int {
	switch {
	case len(tags) >= 2:
		return tags[1]
	case len(tags) == 1:
		return tags[0]
	default:
		return 1
	}
}

// element22 turns one v2.2 element record into a single-element block and
// records its physical group for entity synthesis
func element22(section string, synth *entitySynth, num uint64, elementType int, tags []int, nodes []uint64) (ElementBlock, error) {
	dim, err := sectionElementDim(section, elementType)
	if err != nil {
		return ElementBlock{}, err
	}
	b := ElementBlock{
		EntityDim:   dim,
		EntityTag:   entityTag22(tags),
		ElementType: elementType,
		Count:       1,
		Data:        make([]uint64, 0, len(nodes)+1),
	}
	b.Data = append(b.Data, num)
	b.Data = append(b.Data, nodes...)
	if len(tags) >= 2 {
		synth.add(dim, tags[1], tags[0])
	}
	return b, nil
}

func readElements22ASCII(r *reader, doc *Document) error {
	count, err := r.readCount("number of elements")
	if err != nil {
		return err
	}
	synth := newEntitySynth()
	var tags []int
	var nodes []uint64
	for i := 0; i < count; i++ {
		num, err := r.readUint("element number")
		if err != nil {
			return err
		}
		elementType, err := r.readInt("element type")
		if err != nil {
			return err
		}
		numTags, err := r.readCount("number of element tags")
		if err != nil {
			return err
		}
		tags = tags[:0]
		for j := 0; j < numTags; j++ {
			tag, err := r.readInt("element tag")
			if err != nil {
				return err
			}
			tags = append(tags, tag)
		}
		n, err := sectionNodesPerElement(r.section, elementType)
		if err != nil {
			return err
		}
		nodes = nodes[:0]
		for j := 0; j < n; j++ {
			node, err := r.readUint("element node")
			if err != nil {
				return err
			}
			nodes = append(nodes, node)
		}
		b, err := element22(r.section, synth, num, elementType, tags, nodes)
		if err != nil {
			return err
		}
		doc.Elements.Blocks = append(doc.Elements.Blocks, b)
	}
	synth.emit(&doc.Entities)
	doc.Elements.Summarize()
	return nil
}

func readElements22Binary(r *reader, doc *Document) error {
	total, err := r.readCount("number of elements")
	if err != nil {
		return err
	}
	if err = r.skipLayout(1); err != nil {
		return err
	}
	synth := newEntitySynth()
	nodes := make([]uint64, 0, 64)
	for processed := 0; processed < total; {
		elementType, err := r.readInt32("element type")
		if err != nil {
			return err
		}
		count, err := r.readInt32Count("number of elements in group")
		if err != nil {
			return err
		}
		numTags, err := r.readInt32Count("number of element tags")
		if err != nil {
			return err
		}
		n, err := sectionNodesPerElement(r.section, int(elementType))
		if err != nil {
			return err
		}
		for j := 0; j < count; j++ {
			processed++
			if processed > total {
				return invalidFormat(r.section, "element groups hold more than the %d declared elements", total)
			}
			row, err := r.readInt32s("element record", 1+numTags+n)
			if err != nil {
				return err
			}
			nodes = nodes[:0]
			for _, node := range row[1+numTags:] {
				nodes = append(nodes, uint64(node))
			}
			b, err := element22(r.section, synth, uint64(row[0]), int(elementType), toInts(row[1:1+numTags]), nodes)
			if err != nil {
				return err
			}
			doc.Elements.Blocks = append(doc.Elements.Blocks, b)
		}
	}
	synth.emit(&doc.Entities)
	doc.Elements.Summarize()
	return nil
}

// checkElementBlock returns the node count of the block's element type
func checkElementBlock(i int, b *ElementBlock) (int, error) {
	n, err := sectionNodesPerElement(sectionElements, b.ElementType)
	if err != nil {
		return 0, err
	}
	if want := b.Count * (n + 1); len(b.Data) != want {
		return 0, invalidFormat(sectionElements, "element block %d holds %d values, want %d",
			i, len(b.Data), want)
	}
	return n, nil
}

func writeElements41ASCII(w *writer, doc *Document) error {
	e := &doc.Elements
	w.printf("%d %d %d %d\n", len(e.Blocks), countElements(e), e.MinTag, e.MaxTag)
	for i := range e.Blocks {
		b := &e.Blocks[i]
		n, err := checkElementBlock(i, b)
		if err != nil {
			return err
		}
		w.printf("%d %d %d %d\n", b.EntityDim, b.EntityTag, b.ElementType, b.Count)
		stride := n + 1
		for j := 0; j < b.Count; j++ {
			w.uintRow(b.Data[j*stride : (j+1)*stride])
		}
	}
	return nil
}

func writeElements41Binary(w *writer, doc *Document) error {
	e := &doc.Elements
	w.binary([]uint64{uint64(len(e.Blocks)), uint64(countElements(e)), e.MinTag, e.MaxTag})
	for i := range e.Blocks {
		b := &e.Blocks[i]
		if _, err := checkElementBlock(i, b); err != nil {
			return err
		}
		w.binary([]int32{int32(b.EntityDim), int32(b.EntityTag), int32(b.ElementType)})
		w.size(uint64(b.Count))
		w.binary(b.Data)
	}
	w.line("")
	return nil
}

// v2.2 writers emit a single tag per element, the entity tag
func writeElements22ASCII(w *writer, doc *Document) error {
	e := &doc.Elements
	w.printf("%d\n", countElements(e))
	for i := range e.Blocks {
		b := &e.Blocks[i]
		n, err := checkElementBlock(i, b)
		if err != nil {
			return err
		}
		stride := n + 1
		for j := 0; j < b.Count; j++ {
			row := b.Data[j*stride : (j+1)*stride]
			w.printf("%d %d 1 %d ", row[0], b.ElementType, b.EntityTag)
			w.uintRow(row[1:])
		}
	}
	return nil
}

func writeElements22Binary(w *writer, doc *Document) error {
	e := &doc.Elements
	w.printf("%d\n", countElements(e))
	for i := range e.Blocks {
		b := &e.Blocks[i]
		n, err := checkElementBlock(i, b)
		if err != nil {
			return err
		}
		if b.Count == 0 {
			continue
		}
		w.binary([]int32{int32(b.ElementType), int32(b.Count), 1})
		stride := n + 1
		rows := make([]int32, 0, b.Count*(stride+1))
		for j := 0; j < b.Count; j++ {
			row := b.Data[j*stride : (j+1)*stride]
			rows = append(rows, int32(row[0]), int32(b.EntityTag))
			for _, node := range row[1:] {
				rows = append(rows, int32(node))
			}
		}
		w.binary(rows)
	}
	w.line("")
	return nil
}

func countElements(e *Elements) int {
	total := 0
	for i := range e.Blocks {
		total += e.Blocks[i].Count
	}
	return total
}
