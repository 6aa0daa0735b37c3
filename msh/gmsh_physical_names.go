package msh

// PhysicalNames has the same text layout in every version and encoding

func readPhysicalNames(r *reader, doc *Document) error {
	numNames, err := r.readCount("number of physical names")
	if err != nil {
		return err
	}
	for i := 0; i < numNames; i++ {
		var group PhysicalGroup
		if group.Dimension, err = r.readInt("physical dimension"); err != nil {
			return err
		}
		if group.Tag, err = r.readInt("physical tag"); err != nil {
			return err
		}
		if group.Name, err = r.readQuoted("physical name"); err != nil {
			return err
		}
		doc.PhysicalGroups = append(doc.PhysicalGroups, group)
	}
	return nil
}

func writePhysicalNames(w *writer, doc *Document) error {
	w.printf("%d\n", len(doc.PhysicalGroups))
	for _, group := range doc.PhysicalGroups {
		w.printf("%d %d ", group.Dimension, group.Tag)
		w.quoted(group.Name)
		w.line("")
	}
	return nil
}
