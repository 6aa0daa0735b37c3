package msh

// Section tags
const (
	sectionMeshFormat       = "$MeshFormat"
	sectionPhysicalNames    = "$PhysicalNames"
	sectionEntities         = "$Entities"
	sectionNodes            = "$Nodes"
	sectionElements         = "$Elements"
	sectionNodeData         = "$NodeData"
	sectionElementData      = "$ElementData"
	sectionElementNodeData  = "$ElementNodeData"
	sectionNanoSplineFormat = "$NanoSplineFormat"
	sectionCurves           = "$Curves"
	sectionPatches          = "$Patches"
)

func endTag(section string) string {
	return "$End" + section[1:]
}

type readFunc func(r *reader, doc *Document) error

type writeFunc func(w *writer, doc *Document) error

// codec decodes and encodes one section for one (version, encoding) pair
type codec struct {
	read  readFunc
	write writeFunc
}

type codecKey struct {
	version  Version
	encoding Encoding
}

// codecTable is the per-section dispatch table over the closed
// version x encoding matrix
type codecTable struct {
	section string
	codecs  map[codecKey]codec
}

func (t codecTable) lookup(f MeshFormat) (codec, error) {
	if f.Version == "" {
		return codec{}, invalidFormat(t.section, "%s must precede %s", sectionMeshFormat, t.section)
	}
	c, ok := t.codecs[codecKey{f.Version, f.Encoding()}]
	if !ok {
		return codec{}, unsupported(t.section, "unsupported MSH version: %s", f.Version)
	}
	return c, nil
}

func (t codecTable) read(r *reader, doc *Document) error {
	c, err := t.lookup(doc.Format)
	if err != nil {
		return err
	}
	return c.read(r, doc)
}

func (t codecTable) write(w *writer, doc *Document) error {
	c, err := t.lookup(doc.Format)
	if err != nil {
		return err
	}
	return c.write(w, doc)
}

// sectionNodesPerElement is NodesPerElement with the error attributed to section
func sectionNodesPerElement(section string, elementType int) (int, error) {
	n, err := NodesPerElement(elementType)
	if err != nil {
		err.(*Error).Section = section
		return 0, err
	}
	return n, nil
}

func sectionElementDim(section string, elementType int) (int, error) {
	d, err := ElementDim(elementType)
	if err != nil {
		err.(*Error).Section = section
		return 0, err
	}
	return d, nil
}

func toInt32s(v []int) []int32 {
	out := make([]int32, len(v))
	for i, x := range v {
		out[i] = int32(x)
	}
	return out
}

func toInts(v []int32) []int {
	out := make([]int, len(v))
	for i, x := range v {
		out[i] = int(x)
	}
	return out
}
