package msh

import "strconv"

var entitiesCodecs = codecTable{
	section: sectionEntities,
	codecs: map[codecKey]codec{
		{V22, ASCII}:  {read: readEntities22, write: writeEntities22},
		{V22, Binary}: {read: readEntities22, write: writeEntities22},
		{V41, ASCII}:  {read: readEntities41ASCII, write: writeEntities41ASCII},
		{V41, Binary}: {read: readEntities41Binary, write: writeEntities41Binary},
	},
}

// v2.2 has no $Entities section; they are synthesized from element tags
func readEntities22(r *reader, doc *Document) error {
	return unsupported(r.section, "section not supported by MSH version %s", doc.Format.Version)
}

func writeEntities22(*writer, *Document) error { return nil }

func readEntities41ASCII(r *reader, doc *Document) error {
	var counts [4]int
	for i := range counts {
		n, err := r.readCount("number of entities")
		if err != nil {
			return err
		}
		counts[i] = n
	}

	var e Entities
	e.Points = make([]PointEntity, 0, capHint(counts[0]))
	for i := 0; i < counts[0]; i++ {
		var p PointEntity
		var err error
		if p.Tag, err = r.readInt("point tag"); err != nil {
			return err
		}
		var xyz [3]float64
		if err = r.readFloats("point coordinate", xyz[:]); err != nil {
			return err
		}
		p.X, p.Y, p.Z = xyz[0], xyz[1], xyz[2]
		if p.PhysicalTags, err = readIntList(r, "physical tag"); err != nil {
			return err
		}
		e.Points = append(e.Points, p)
	}

	for dim, dst := range []*[]BoundedEntity{&e.Curves, &e.Surfaces, &e.Volumes} {
		n := counts[dim+1]
		*dst = make([]BoundedEntity, 0, capHint(n))
		for i := 0; i < n; i++ {
			var b BoundedEntity
			var err error
			if b.Tag, err = r.readInt("entity tag"); err != nil {
				return err
			}
			for j := range b.BoundingBox {
				if err = r.readFloats("bounding box", b.BoundingBox[j][:]); err != nil {
					return err
				}
			}
			if b.PhysicalTags, err = readIntList(r, "physical tag"); err != nil {
				return err
			}
			if b.BoundingEntities, err = readIntList(r, "bounding entity"); err != nil {
				return err
			}
			*dst = append(*dst, b)
		}
	}
	doc.Entities = e
	return nil
}

// readIntList reads a count followed by that many integers
func readIntList(r *reader, what string) ([]int, error) {
	n, err := r.readCount("number of " + what + "s")
	if err != nil {
		return nil, err
	}
	out := make([]int, 0, capHint(n))
	for i := 0; i < n; i++ {
		v, err := r.readInt(what)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func readEntities41Binary(r *reader, doc *Document) error {
	if err := r.skipLayout(1); err != nil {
		return err
	}
	var counts [4]int
	for i := range counts {
		n, err := r.readSizeCount("number of entities")
		if err != nil {
			return err
		}
		counts[i] = n
	}

	var e Entities
	e.Points = make([]PointEntity, 0, capHint(counts[0]))
	for i := 0; i < counts[0]; i++ {
		tag, err := r.readInt32("point tag")
		if err != nil {
			return err
		}
		xyz, err := r.readFloat64s("point coordinate", 3)
		if err != nil {
			return err
		}
		physical, err := readInt32List(r, "physical tag")
		if err != nil {
			return err
		}
		e.Points = append(e.Points, PointEntity{
			Tag: int(tag), X: xyz[0], Y: xyz[1], Z: xyz[2], PhysicalTags: physical,
		})
	}

	for dim, dst := range []*[]BoundedEntity{&e.Curves, &e.Surfaces, &e.Volumes} {
		n := counts[dim+1]
		*dst = make([]BoundedEntity, 0, capHint(n))
		for i := 0; i < n; i++ {
			tag, err := r.readInt32("entity tag")
			if err != nil {
				return err
			}
			b := BoundedEntity{Tag: int(tag)}
			if err = r.readBinary("bounding box", &b.BoundingBox); err != nil {
				return err
			}
			if b.PhysicalTags, err = readInt32List(r, "physical tag"); err != nil {
				return err
			}
			if b.BoundingEntities, err = readInt32List(r, "bounding entity"); err != nil {
				return err
			}
			*dst = append(*dst, b)
		}
	}
	doc.Entities = e
	return nil
}

// readInt32List reads a size_t count followed by that many int32 values
func readInt32List(r *reader, what string) ([]int, error) {
	n, err := r.readSizeCount("number of " + what + "s")
	if err != nil {
		return nil, err
	}
	v, err := r.readInt32s(what, n)
	if err != nil {
		return nil, err
	}
	return toInts(v), nil
}

func appendIntList(b []byte, v []int) []byte {
	b = strconv.AppendInt(b, int64(len(v)), 10)
	for _, x := range v {
		b = append(b, ' ')
		b = strconv.AppendInt(b, int64(x), 10)
	}
	return b
}

func writeEntities41ASCII(w *writer, doc *Document) error {
	e := &doc.Entities
	w.printf("%d %d %d %d\n", len(e.Points), len(e.Curves), len(e.Surfaces), len(e.Volumes))
	for _, p := range e.Points {
		b := strconv.AppendInt(w.buf[:0], int64(p.Tag), 10)
		for _, x := range []float64{p.X, p.Y, p.Z} {
			b = appendFloat(append(b, ' '), x)
		}
		b = appendIntList(append(b, ' '), p.PhysicalTags)
		w.buf = append(b, '\n')
		w.write(w.buf)
	}
	for _, list := range [][]BoundedEntity{e.Curves, e.Surfaces, e.Volumes} {
		for _, ent := range list {
			b := strconv.AppendInt(w.buf[:0], int64(ent.Tag), 10)
			for _, corner := range ent.BoundingBox {
				for _, x := range corner {
					b = appendFloat(append(b, ' '), x)
				}
			}
			b = appendIntList(append(b, ' '), ent.PhysicalTags)
			b = appendIntList(append(b, ' '), ent.BoundingEntities)
			w.buf = append(b, '\n')
			w.write(w.buf)
		}
	}
	return nil
}

func writeEntities41Binary(w *writer, doc *Document) error {
	e := &doc.Entities
	for _, n := range []int{len(e.Points), len(e.Curves), len(e.Surfaces), len(e.Volumes)} {
		w.size(uint64(n))
	}
	for _, p := range e.Points {
		w.int32(p.Tag)
		w.binary([3]float64{p.X, p.Y, p.Z})
		writeInt32List(w, p.PhysicalTags)
	}
	for _, list := range [][]BoundedEntity{e.Curves, e.Surfaces, e.Volumes} {
		for _, ent := range list {
			w.int32(ent.Tag)
			w.binary(ent.BoundingBox)
			writeInt32List(w, ent.PhysicalTags)
			writeInt32List(w, ent.BoundingEntities)
		}
	}
	w.line("")
	return nil
}

func writeInt32List(w *writer, v []int) {
	w.size(uint64(len(v)))
	if len(v) > 0 {
		w.binary(toInt32s(v))
	}
}
