package msh

import "math"

// Version is an MSH file format version
type Version string

const (
	V22 Version = "2.2"
	V41 Version = "4.1"
)

// Encoding selects ASCII or binary payloads
type Encoding int

const (
	ASCII Encoding = iota
	Binary
)

func (e Encoding) String() string {
	if e == Binary {
		return "binary"
	}
	return "ascii"
}

// sizeOfSize is the width of the size type in binary v4.1 files
const sizeOfSize = 8

// MeshFormat is the mandatory first section of every MSH file
type MeshFormat struct {
	Version  Version
	FileType int // 0 = ASCII, anything else = binary
	DataSize int
}

func (f MeshFormat) Encoding() Encoding {
	if f.FileType != 0 {
		return Binary
	}
	return ASCII
}

// NodeBlock is a run of nodes belonging to one entity
type NodeBlock struct {
	EntityDim   int
	EntityTag   int
	Parametric  int
	Tags        []uint64
	Coordinates []float64 // NumNodes() rows of EntriesPerNode() values
}

func (b *NodeBlock) NumNodes() int { return len(b.Tags) }

// EntriesPerNode is 3, plus EntityDim parametric coordinates when Parametric == 1
func (b *NodeBlock) EntriesPerNode() int {
	if b.Parametric == 1 {
		return 3 + b.EntityDim
	}
	return 3
}

type Nodes struct {
	NumBlocks int
	NumNodes  int
	MinTag    uint64
	MaxTag    uint64
	Blocks    []NodeBlock
}

// Summarize recomputes the block count, node count and tag range from Blocks
func (n *Nodes) Summarize() {
	n.NumBlocks = len(n.Blocks)
	n.NumNodes = 0
	n.MinTag, n.MaxTag = math.MaxUint64, 0
	for i := range n.Blocks {
		for _, tag := range n.Blocks[i].Tags {
			n.NumNodes++
			n.MinTag = min(n.MinTag, tag)
			n.MaxTag = max(n.MaxTag, tag)
		}
	}
	if n.NumNodes == 0 {
		n.MinTag = 0
	}
}

// ElementBlock holds Count rows of (element tag, node tags...)
type ElementBlock struct {
	EntityDim   int
	EntityTag   int
	ElementType int
	Count       int
	Data        []uint64
}

type Elements struct {
	NumBlocks   int
	NumElements int
	MinTag      uint64
	MaxTag      uint64
	Blocks      []ElementBlock
}

// Summarize recomputes the block count, element count and tag range from Blocks
func (e *Elements) Summarize() {
	e.NumBlocks = len(e.Blocks)
	e.NumElements = 0
	e.MinTag, e.MaxTag = math.MaxUint64, 0
	for i := range e.Blocks {
		b := &e.Blocks[i]
		e.NumElements += b.Count
		stride := 0
		if b.Count > 0 {
			stride = len(b.Data) / b.Count
		}
		if stride == 0 {
			continue
		}
		for j := 0; j < b.Count; j++ {
			tag := b.Data[j*stride]
			e.MinTag = min(e.MinTag, tag)
			e.MaxTag = max(e.MaxTag, tag)
		}
	}
	if e.MinTag > e.MaxTag {
		e.MinTag = 0
	}
}

type PointEntity struct {
	Tag          int
	X, Y, Z      float64
	PhysicalTags []int
}

// BoundedEntity is a curve, surface or volume; BoundingEntities lists the
// tags of the next lower dimension entities forming its boundary
type BoundedEntity struct {
	Tag              int
	BoundingBox      [2][3]float64
	PhysicalTags     []int
	BoundingEntities []int
}

type Entities struct {
	Points   []PointEntity
	Curves   []BoundedEntity
	Surfaces []BoundedEntity
	Volumes  []BoundedEntity
}

func (e *Entities) Empty() bool {
	return len(e.Points) == 0 && len(e.Curves) == 0 && len(e.Surfaces) == 0 && len(e.Volumes) == 0
}

type PhysicalGroup struct {
	Dimension int
	Tag       int
	Name      string
}

// DataHeader holds the string, real and integer tags of a data section.
// StringTags: [view name, interpolation scheme], RealTags: [time value],
// IntTags: [time step, fields per entry, number of entries, partition]
type DataHeader struct {
	StringTags []string
	RealTags   []float64
	IntTags    []int
}

func (h *DataHeader) FieldsPerEntry() int {
	if len(h.IntTags) < 2 {
		return 0
	}
	return h.IntTags[1]
}

func (h *DataHeader) NumEntries() int {
	if len(h.IntTags) < 3 {
		return 0
	}
	return h.IntTags[2]
}

// Data is one NodeData, ElementData or ElementNodeData block, stored column-wise
type Data struct {
	Header          DataHeader
	Tags            []uint64
	Values          []float64
	NodesPerElement int // ElementNodeData only; 0 when not determined
}

// DataEntry is a row view into a Data block; Values aliases Data.Values
type DataEntry struct {
	Tag             uint64
	NodesPerElement int
	Values          []float64
}

// EntrySize is the number of values per entry
func (d *Data) EntrySize() int {
	if len(d.Tags) == 0 {
		return 0
	}
	return len(d.Values) / len(d.Tags)
}

// Entries returns the row-oriented view of the block
func (d *Data) Entries() []DataEntry {
	size := d.EntrySize()
	entries := make([]DataEntry, len(d.Tags))
	for i, tag := range d.Tags {
		entries[i] = DataEntry{
			Tag:             tag,
			NodesPerElement: d.NodesPerElement,
			Values:          d.Values[i*size : (i+1)*size : (i+1)*size],
		}
	}
	return entries
}

type NanoSplineFormat struct {
	Version string
}

// Curve is a spline curve record: NumControlPoints rows of 3 (or 4 with
// weights) values followed by NumKnots knot values
type Curve struct {
	Tag              uint64
	Type             uint64
	Degree           uint64
	NumControlPoints uint64
	NumKnots         uint64
	WithWeights      uint64
	Data             []float64
}

func (c *Curve) controlDim() int {
	if c.WithWeights > 0 {
		return 4
	}
	return 3
}

func (c *Curve) dataSize() int {
	return int(c.NumControlPoints)*c.controlDim() + int(c.NumKnots)
}

// Patch is a spline surface record laid out like Curve with separate u and v knots
type Patch struct {
	Tag              uint64
	Type             uint64
	DegreeU          uint64
	DegreeV          uint64
	NumControlPoints uint64
	NumUKnots        uint64
	NumVKnots        uint64
	WithWeights      uint64
	Data             []float64
}

func (p *Patch) controlDim() int {
	if p.WithWeights > 0 {
		return 4
	}
	return 3
}

func (p *Patch) dataSize() int {
	return int(p.NumControlPoints)*p.controlDim() + int(p.NumUKnots) + int(p.NumVKnots)
}

// Document is the in-memory image of one MSH file
type Document struct {
	Format          MeshFormat
	Nodes           Nodes
	Elements        Elements
	Entities        Entities
	PhysicalGroups  []PhysicalGroup
	NodeData        []Data
	ElementData     []Data
	ElementNodeData []Data

	SplineFormat NanoSplineFormat
	Curves       []Curve
	Patches      []Patch
}
