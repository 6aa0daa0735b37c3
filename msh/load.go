package msh

import (
	"io"
	"os"
	"strings"
)

type sectionReader struct {
	read      readFunc
	extension bool
}

var sectionReaders = map[string]sectionReader{
	sectionMeshFormat:       {read: readMeshFormat},
	sectionPhysicalNames:    {read: readPhysicalNames},
	sectionEntities:         {read: entitiesCodecs.read},
	sectionNodes:            {read: nodesCodecs.read},
	sectionElements:         {read: elementsCodecs.read},
	sectionNodeData:         {read: dataSections[0].read},
	sectionElementData:      {read: dataSections[1].read},
	sectionElementNodeData:  {read: dataSections[2].read},
	sectionNanoSplineFormat: {read: readSplineFormat, extension: true},
	sectionCurves:           {read: readCurves, extension: true},
	sectionPatches:          {read: readPatches, extension: true},
}

// Load parses an MSH 2.2 or 4.1 stream, ASCII or binary. Sections it does
// not know are logged and skipped. A v2.2 document is regrouped into entity
// blocks after parsing.
func Load(in io.Reader, opts ...Option) (*Document, error) {
	o := newOptions(opts)
	r := newReader(in)
	doc := &Document{}
	for {
		r.section = ""
		tag, err := r.token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, r.truncated("section tag", err)
		}
		if !strings.HasPrefix(tag, "$") || strings.HasPrefix(tag, "$End") {
			continue
		}

		sec, ok := sectionReaders[tag]
		if ok && (!sec.extension || o.splines) {
			r.section = tag
			if err = sec.read(r, doc); err != nil {
				return nil, err
			}
		} else {
			o.logger.Printf("Warning: skipping section %q", tag)
		}
		if err = r.forwardTo(endTag(tag)); err != nil {
			return nil, err
		}
	}
	postProcess(doc)
	return doc, nil
}

// LoadFile opens path and calls Load on its contents
func LoadFile(path string, opts ...Option) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f, opts...)
}
