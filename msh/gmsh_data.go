package msh

// dataSection describes one of the three post-processing data sections.
// Their layout is identical in v2.2 and v4.1; only the payload encoding
// changes.
type dataSection struct {
	tag        string
	perElement bool // entries carry a node count (ElementNodeData)
	blocks     func(doc *Document) *[]Data
}

var dataSections = []dataSection{
	{tag: sectionNodeData, blocks: func(doc *Document) *[]Data { return &doc.NodeData }},
	{tag: sectionElementData, blocks: func(doc *Document) *[]Data { return &doc.ElementData }},
	{tag: sectionElementNodeData, perElement: true, blocks: func(doc *Document) *[]Data { return &doc.ElementNodeData }},
}

type dataPayloadCodec struct {
	read  func(r *reader, d *Data, perElement bool) error
	write func(w *writer, d *Data, perElement bool)
}

var dataPayloadCodecs = map[Encoding]dataPayloadCodec{
	ASCII:  {read: readDataASCII, write: writeDataASCII},
	Binary: {read: readDataBinary, write: writeDataBinary},
}

func (s dataSection) read(r *reader, doc *Document) error {
	if doc.Format.Version == "" {
		return invalidFormat(s.tag, "%s must precede %s", sectionMeshFormat, s.tag)
	}
	var d Data
	if err := readDataHeader(r, &d.Header); err != nil {
		return err
	}
	if err := dataPayloadCodecs[doc.Format.Encoding()].read(r, &d, s.perElement); err != nil {
		return err
	}
	blocks := s.blocks(doc)
	*blocks = append(*blocks, d)
	return nil
}

func (s dataSection) write(w *writer, d *Data, encoding Encoding) error {
	size := d.EntrySize()
	if len(d.Values) != len(d.Tags)*size {
		return invalidFormat(s.tag, "%d values do not split into %d entries", len(d.Values), len(d.Tags))
	}
	if s.perElement && len(d.Tags) > 0 && (d.NodesPerElement <= 0 || size%d.NodesPerElement != 0) {
		return invalidFormat(s.tag, "entry size %d is not a multiple of %d nodes per element",
			size, d.NodesPerElement)
	}
	if err := checkDataHeader(s, d, size); err != nil {
		return err
	}
	writeDataHeader(w, &d.Header)
	dataPayloadCodecs[encoding].write(w, d, s.perElement)
	return nil
}

// checkDataHeader requires the integer tags to agree with the entries
// written after them
func checkDataHeader(s dataSection, d *Data, size int) error {
	h := &d.Header
	if len(h.IntTags) < 3 {
		return invalidFormat(s.tag, "at least 3 integer tags are required, got %d", len(h.IntTags))
	}
	if h.NumEntries() != len(d.Tags) {
		return invalidFormat(s.tag, "header declares %d entries, block holds %d", h.NumEntries(), len(d.Tags))
	}
	if len(d.Tags) == 0 {
		return nil
	}
	fields := h.FieldsPerEntry()
	if s.perElement {
		fields *= d.NodesPerElement
	}
	if fields != size {
		return invalidFormat(s.tag, "header declares %d values per entry, block holds %d", fields, size)
	}
	return nil
}

func readDataHeader(r *reader, h *DataHeader) error {
	numStrings, err := r.readCount("number of string tags")
	if err != nil {
		return err
	}
	h.StringTags = make([]string, 0, capHint(numStrings))
	for i := 0; i < numStrings; i++ {
		s, err := r.readQuoted("string tag")
		if err != nil {
			return err
		}
		h.StringTags = append(h.StringTags, s)
	}

	numReals, err := r.readCount("number of real tags")
	if err != nil {
		return err
	}
	h.RealTags = make([]float64, 0, capHint(numReals))
	for i := 0; i < numReals; i++ {
		v, err := r.readFloat("real tag")
		if err != nil {
			return err
		}
		h.RealTags = append(h.RealTags, v)
	}

	numInts, err := r.readCount("number of integer tags")
	if err != nil {
		return err
	}
	h.IntTags = make([]int, 0, capHint(numInts))
	for i := 0; i < numInts; i++ {
		v, err := r.readInt("integer tag")
		if err != nil {
			return err
		}
		h.IntTags = append(h.IntTags, v)
	}

	if len(h.IntTags) < 3 {
		return invalidFormat(r.section, "at least 3 integer tags are required, got %d", len(h.IntTags))
	}
	if h.FieldsPerEntry() < 0 || h.NumEntries() < 0 {
		return invalidFormat(r.section, "negative field or entry count (%d, %d)",
			h.FieldsPerEntry(), h.NumEntries())
	}
	return nil
}

func writeDataHeader(w *writer, h *DataHeader) {
	w.printf("%d\n", len(h.StringTags))
	for _, s := range h.StringTags {
		w.quoted(s)
		w.line("")
	}
	w.printf("%d\n", len(h.RealTags))
	for _, v := range h.RealTags {
		w.floatRow([]float64{v})
	}
	w.printf("%d\n", len(h.IntTags))
	for _, v := range h.IntTags {
		w.printf("%d\n", v)
	}
}

// entryNodes checks that every entry of an ElementNodeData block has the
// same node count and records it
func entryNodes(r *reader, d *Data, npe int) error {
	if npe <= 0 {
		return invalidFormat(r.section, "invalid nodes per element %d", npe)
	}
	if d.NodesPerElement == 0 {
		d.NodesPerElement = npe
	}
	if d.NodesPerElement != npe {
		return invalidFormat(r.section, "Hybrid elements not supported: %d and %d nodes per element",
			d.NodesPerElement, npe)
	}
	return nil
}

func readDataASCII(r *reader, d *Data, perElement bool) error {
	fields, entries := d.Header.FieldsPerEntry(), d.Header.NumEntries()
	d.Tags = make([]uint64, 0, capHint(entries))
	d.Values = make([]float64, 0, capHint(entries*fields))
	for i := 0; i < entries; i++ {
		tag, err := r.readUint("data tag")
		if err != nil {
			return err
		}
		size := fields
		if perElement {
			npe, err := r.readInt("nodes per element")
			if err != nil {
				return err
			}
			if err = entryNodes(r, d, npe); err != nil {
				return err
			}
			size *= npe
		}
		d.Tags = append(d.Tags, tag)
		for j := 0; j < size; j++ {
			v, err := r.readFloat("data value")
			if err != nil {
				return err
			}
			d.Values = append(d.Values, v)
		}
	}
	return nil
}

// readDataBinary reads entries whose tag and node count are int32 in every
// version, followed by float64 values
func readDataBinary(r *reader, d *Data, perElement bool) error {
	if err := r.skipLayout(1); err != nil {
		return err
	}
	fields, entries := d.Header.FieldsPerEntry(), d.Header.NumEntries()
	d.Tags = make([]uint64, 0, capHint(entries))
	d.Values = make([]float64, 0, capHint(entries*fields))
	for i := 0; i < entries; i++ {
		tag, err := r.readInt32("data tag")
		if err != nil {
			return err
		}
		size := fields
		if perElement {
			npe, err := r.readInt32("nodes per element")
			if err != nil {
				return err
			}
			if err = entryNodes(r, d, int(npe)); err != nil {
				return err
			}
			size *= int(npe)
		}
		values, err := r.readFloat64s("data values", size)
		if err != nil {
			return err
		}
		d.Tags = append(d.Tags, uint64(tag))
		d.Values = append(d.Values, values...)
	}
	return nil
}

func writeDataASCII(w *writer, d *Data, perElement bool) {
	for _, e := range d.Entries() {
		if perElement {
			w.printf("%d %d", e.Tag, e.NodesPerElement)
		} else {
			w.printf("%d", e.Tag)
		}
		if len(e.Values) == 0 {
			w.line("")
			continue
		}
		w.printf(" ")
		w.floatRow(e.Values)
	}
}

func writeDataBinary(w *writer, d *Data, perElement bool) {
	for _, e := range d.Entries() {
		w.int32(int(e.Tag))
		if perElement {
			w.int32(e.NodesPerElement)
		}
		if len(e.Values) > 0 {
			w.binary(e.Values)
		}
	}
	w.line("")
}
