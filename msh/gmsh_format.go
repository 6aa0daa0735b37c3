package msh

// readMeshFormat reads "version file_type data_size" plus, for binary
// files, the int32 endianness sentinel
func readMeshFormat(r *reader, doc *Document) error {
	version, err := r.next("version")
	if err != nil {
		return err
	}
	f := MeshFormat{Version: Version(version)}
	if f.Version != V22 && f.Version != V41 {
		return unsupported(r.section, "unsupported MSH version: %s", version)
	}
	if f.FileType, err = r.readInt("file type"); err != nil {
		return err
	}
	if f.DataSize, err = r.readInt("data size"); err != nil {
		return err
	}
	if f.Version == V41 && f.DataSize != sizeOfSize {
		return unsupported(r.section,
			"MSH file (v%s) requested data size of %d bytes, which is different than size_t (%d bytes)",
			f.Version, f.DataSize, sizeOfSize)
	}

	if f.Encoding() == Binary {
		if err = r.skipLayout(-1); err != nil {
			return err
		}
		one, err := r.readInt32("endianness sentinel")
		if err != nil {
			return err
		}
		if one != 1 {
			return unsupported(r.section, "endianness mismatch: MSH file (v%s) sentinel is %d", f.Version, one)
		}
	}
	doc.Format = f
	return nil
}

func writeMeshFormat(w *writer, doc *Document) error {
	f := doc.Format
	w.printf("%s %d %d\n", f.Version, f.FileType, f.DataSize)
	if f.Encoding() == Binary {
		w.int32(1)
		w.line("")
	}
	return nil
}
