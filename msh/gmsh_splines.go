package msh

// Spline extension sections. Each curve or patch record has an ASCII header
// followed by its control points and knots, as text rows or a raw float64
// payload depending on the file encoding.

func readSplineFormat(r *reader, doc *Document) error {
	version, err := r.next("spline format version")
	if err != nil {
		return err
	}
	doc.SplineFormat.Version = version
	return nil
}

func writeSplineFormat(w *writer, doc *Document) error {
	w.line(doc.SplineFormat.Version)
	return nil
}

// readUints reads len(dst) unsigned integers into the pointed-to fields
func readUints(r *reader, what string, dst ...*uint64) error {
	for _, p := range dst {
		v, err := r.readUint(what)
		if err != nil {
			return err
		}
		*p = v
	}
	return nil
}

func readSplineData(r *reader, format MeshFormat, size int) ([]float64, error) {
	if format.Version == "" {
		return nil, invalidFormat(r.section, "%s must precede %s", sectionMeshFormat, r.section)
	}
	if format.Encoding() == Binary {
		if err := r.skipLayout(1); err != nil {
			return nil, err
		}
		return r.readFloat64s("spline data", size)
	}
	data := make([]float64, 0, capHint(size))
	for i := 0; i < size; i++ {
		v, err := r.readFloat("spline data")
		if err != nil {
			return nil, err
		}
		data = append(data, v)
	}
	return data, nil
}

func splineSize(r *reader, controlPoints, dim uint64, knots ...uint64) (int, error) {
	limit := uint64(maxInt)
	if controlPoints > limit/dim {
		return 0, invalidFormat(r.section, "spline data size out of range")
	}
	size := controlPoints * dim
	for _, k := range knots {
		if k > limit-size {
			return 0, invalidFormat(r.section, "spline data size out of range")
		}
		size += k
	}
	return int(size), nil
}

func readCurves(r *reader, doc *Document) error {
	count, err := r.readCount("number of curves")
	if err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		var c Curve
		if err = readUints(r, "curve header",
			&c.Tag, &c.Type, &c.Degree, &c.NumControlPoints, &c.NumKnots, &c.WithWeights); err != nil {
			return err
		}
		size, err := splineSize(r, c.NumControlPoints, uint64(c.controlDim()), c.NumKnots)
		if err != nil {
			return err
		}
		if c.Data, err = readSplineData(r, doc.Format, size); err != nil {
			return err
		}
		doc.Curves = append(doc.Curves, c)
	}
	return nil
}

func readPatches(r *reader, doc *Document) error {
	count, err := r.readCount("number of patches")
	if err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		var p Patch
		if err = readUints(r, "patch header",
			&p.Tag, &p.Type, &p.DegreeU, &p.DegreeV,
			&p.NumControlPoints, &p.NumUKnots, &p.NumVKnots, &p.WithWeights); err != nil {
			return err
		}
		size, err := splineSize(r, p.NumControlPoints, uint64(p.controlDim()), p.NumUKnots, p.NumVKnots)
		if err != nil {
			return err
		}
		if p.Data, err = readSplineData(r, doc.Format, size); err != nil {
			return err
		}
		doc.Patches = append(doc.Patches, p)
	}
	return nil
}

// writeSplineData writes control point rows then one knot per line
func writeSplineData(w *writer, encoding Encoding, data []float64, dim, numControl int) {
	if encoding == Binary {
		if len(data) > 0 {
			w.binary(data)
		}
		w.line("")
		return
	}
	for i := 0; i < numControl; i++ {
		w.floatRow(data[i*dim : (i+1)*dim])
	}
	for _, knot := range data[numControl*dim:] {
		w.floatRow([]float64{knot})
	}
}

func writeCurves(w *writer, doc *Document) error {
	w.printf("%d\n", len(doc.Curves))
	for i := range doc.Curves {
		c := &doc.Curves[i]
		if len(c.Data) != c.dataSize() {
			return invalidFormat(sectionCurves, "curve %d holds %d values, want %d", c.Tag, len(c.Data), c.dataSize())
		}
		w.printf("%d %d %d %d %d %d\n", c.Tag, c.Type, c.Degree, c.NumControlPoints, c.NumKnots, c.WithWeights)
		writeSplineData(w, doc.Format.Encoding(), c.Data, c.controlDim(), int(c.NumControlPoints))
	}
	return nil
}

func writePatches(w *writer, doc *Document) error {
	w.printf("%d\n", len(doc.Patches))
	for i := range doc.Patches {
		p := &doc.Patches[i]
		if len(p.Data) != p.dataSize() {
			return invalidFormat(sectionPatches, "patch %d holds %d values, want %d", p.Tag, len(p.Data), p.dataSize())
		}
		w.printf("%d %d %d %d %d %d %d %d\n", p.Tag, p.Type, p.DegreeU, p.DegreeV,
			p.NumControlPoints, p.NumUKnots, p.NumVKnots, p.WithWeights)
		writeSplineData(w, doc.Format.Encoding(), p.Data, p.controlDim(), int(p.NumControlPoints))
	}
	return nil
}
