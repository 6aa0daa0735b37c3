package msh

import (
	"io"
	"os"
)

// sectionWriter emits count(doc) instances of one section in file order
type sectionWriter struct {
	tag       string
	extension bool
	count     func(doc *Document) int
	write     func(w *writer, doc *Document, i int) error
}

func once(present func(doc *Document) bool) func(doc *Document) int {
	return func(doc *Document) int {
		if present(doc) {
			return 1
		}
		return 0
	}
}

func single(write writeFunc) func(w *writer, doc *Document, i int) error {
	return func(w *writer, doc *Document, _ int) error { return write(w, doc) }
}

func dataWriter(s dataSection) sectionWriter {
	return sectionWriter{
		tag:   s.tag,
		count: func(doc *Document) int { return len(*s.blocks(doc)) },
		write: func(w *writer, doc *Document, i int) error {
			return s.write(w, &(*s.blocks(doc))[i], doc.Format.Encoding())
		},
	}
}

var sectionWriters = []sectionWriter{
	{
		tag:   sectionMeshFormat,
		count: once(func(*Document) bool { return true }),
		write: single(writeMeshFormat),
	},
	{
		tag:   sectionPhysicalNames,
		count: once(func(doc *Document) bool { return len(doc.PhysicalGroups) > 0 }),
		write: single(writePhysicalNames),
	},
	{
		tag:   sectionEntities,
		count: once(func(doc *Document) bool { return doc.Format.Version == V41 && !doc.Entities.Empty() }),
		write: single(entitiesCodecs.write),
	},
	{
		tag:   sectionNodes,
		count: once(func(doc *Document) bool { return len(doc.Nodes.Blocks) > 0 }),
		write: single(nodesCodecs.write),
	},
	{
		tag:   sectionElements,
		count: once(func(doc *Document) bool { return len(doc.Elements.Blocks) > 0 }),
		write: single(elementsCodecs.write),
	},
	dataWriter(dataSections[0]),
	dataWriter(dataSections[1]),
	dataWriter(dataSections[2]),
	{
		tag:       sectionNanoSplineFormat,
		extension: true,
		count:     once(func(doc *Document) bool { return doc.SplineFormat.Version != "" }),
		write:     single(writeSplineFormat),
	},
	{
		tag:       sectionCurves,
		extension: true,
		count:     once(func(doc *Document) bool { return len(doc.Curves) > 0 }),
		write:     single(writeCurves),
	},
	{
		tag:       sectionPatches,
		extension: true,
		count:     once(func(doc *Document) bool { return len(doc.Patches) > 0 }),
		write:     single(writePatches),
	},
}

// Save serializes doc as the given version and encoding. doc is not
// modified; its stored format is ignored. Writing v2.2 flattens node and
// element blocks and drops the entities.
func Save(out io.Writer, doc *Document, version Version, encoding Encoding, opts ...Option) error {
	o := newOptions(opts)
	if version != V22 && version != V41 {
		return unsupported(sectionMeshFormat, "unsupported MSH version: %s", version)
	}
	d := *doc
	d.Format = MeshFormat{Version: version, DataSize: sizeOfSize}
	if encoding == Binary {
		d.Format.FileType = 1
	}

	w := newWriter(out)
	for _, s := range sectionWriters {
		if s.extension && !o.splines {
			continue
		}
		for i := 0; i < s.count(&d); i++ {
			w.line(s.tag)
			if err := s.write(w, &d, i); err != nil {
				return err
			}
			w.line(endTag(s.tag))
		}
	}
	return w.flush()
}

// SaveFile creates path and writes doc to it
func SaveFile(path string, doc *Document, version Version, encoding Encoding, opts ...Option) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return Save(f, doc, version, encoding, opts...)
}
