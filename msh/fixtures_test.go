package msh

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

// createTempMshFile writes content to a temporary .msh file
func createTempMshFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.msh")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newDocument(nodes []NodeBlock, elements []ElementBlock) *Document {
	doc := &Document{
		Nodes:    Nodes{Blocks: nodes},
		Elements: Elements{Blocks: elements},
	}
	doc.Nodes.Summarize()
	doc.Elements.Summarize()
	return doc
}

func pointMesh() *Document {
	return newDocument(
		[]NodeBlock{{EntityDim: 0, EntityTag: 1, Tags: []uint64{1}, Coordinates: []float64{0.5, -1.25, 3}}},
		[]ElementBlock{{EntityDim: 0, EntityTag: 1, ElementType: Point1, Count: 1, Data: []uint64{1, 1}}},
	)
}

func lineMesh() *Document {
	return newDocument(
		[]NodeBlock{{
			EntityDim: 1, EntityTag: 5,
			Tags:        []uint64{1, 2, 3},
			Coordinates: []float64{0, 0, 0, 0.5, 0, 0, 1, 0, 0},
		}},
		[]ElementBlock{{
			EntityDim: 1, EntityTag: 5, ElementType: Line2, Count: 2,
			Data: []uint64{10, 1, 2, 11, 2, 3},
		}},
	)
}

// twoTriangles is the unit square split along its diagonal
func twoTriangles() *Document {
	return newDocument(
		[]NodeBlock{{
			EntityDim: 2, EntityTag: 1,
			Tags:        []uint64{1, 2, 3, 4},
			Coordinates: []float64{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0},
		}},
		[]ElementBlock{{
			EntityDim: 2, EntityTag: 1, ElementType: Triangle3, Count: 2,
			Data: []uint64{1, 1, 2, 3, 2, 1, 3, 4},
		}},
	)
}

// mixedMesh has entities of every dimension up to 2, named physical
// groups and several element types
func mixedMesh() *Document {
	doc := newDocument(
		[]NodeBlock{
			{EntityDim: 0, EntityTag: 1, Tags: []uint64{1}, Coordinates: []float64{0, 0, 0}},
			{EntityDim: 1, EntityTag: 1, Tags: []uint64{2}, Coordinates: []float64{0.5, 0, 0}},
			{
				EntityDim: 2, EntityTag: 1,
				Tags:        []uint64{3, 4, 5, 6},
				Coordinates: []float64{1, 0, 0, 1, 1, 0, 0, 1, 0, 0.5, 0.5, 1e-7},
			},
		},
		[]ElementBlock{
			{EntityDim: 0, EntityTag: 1, ElementType: Point1, Count: 1, Data: []uint64{1, 1}},
			{EntityDim: 1, EntityTag: 1, ElementType: Line2, Count: 1, Data: []uint64{2, 1, 2}},
			{EntityDim: 2, EntityTag: 1, ElementType: Triangle3, Count: 2, Data: []uint64{3, 3, 4, 6, 4, 4, 5, 6}},
			{EntityDim: 2, EntityTag: 1, ElementType: Quad4, Count: 1, Data: []uint64{5, 3, 4, 5, 6}},
		},
	)
	doc.Entities = Entities{
		Points: []PointEntity{{Tag: 1, PhysicalTags: []int{1}}},
		Curves: []BoundedEntity{{
			Tag:              1,
			BoundingBox:      [2][3]float64{{0, 0, 0}, {1, 0, 0}},
			PhysicalTags:     []int{2},
			BoundingEntities: []int{1, -2},
		}},
		Surfaces: []BoundedEntity{{
			Tag:              1,
			BoundingBox:      [2][3]float64{{0, 0, 0}, {1, 1, 0}},
			PhysicalTags:     []int{3},
			BoundingEntities: []int{1, 2, 3, 4},
		}},
	}
	doc.PhysicalGroups = []PhysicalGroup{
		{Dimension: 0, Tag: 1, Name: "corner"},
		{Dimension: 1, Tag: 2, Name: "bottom edge"},
		{Dimension: 2, Tag: 3, Name: `plate "A"`},
	}
	return doc
}

// dataMesh is twoTriangles carrying one block of every data kind
func dataMesh() *Document {
	doc := twoTriangles()
	doc.NodeData = []Data{{
		Header: DataHeader{StringTags: []string{"temperature"}, RealTags: []float64{0.5}, IntTags: []int{0, 1, 4}},
		Tags:   []uint64{1, 2, 3, 4},
		Values: []float64{10, 20.5, -3, 1e-7},
	}}
	doc.ElementData = []Data{{
		Header: DataHeader{StringTags: []string{"velocity"}, RealTags: []float64{0}, IntTags: []int{0, 3, 2}},
		Tags:   []uint64{1, 2},
		Values: []float64{1, 0, 0, 0, 1, 0.25},
	}}
	doc.ElementNodeData = []Data{{
		Header:          DataHeader{StringTags: []string{`grad "x"`}, RealTags: []float64{1.5}, IntTags: []int{2, 1, 2, 0}},
		Tags:            []uint64{1, 2},
		Values:          []float64{1, 2, 3, 4, 5, 6},
		NodesPerElement: 3,
	}}
	return doc
}

// curveAndSurface is a triangle on surface 1 next to a line on curve 2.
// The two entities share no nodes.
func curveAndSurface() *Document {
	return newDocument(
		[]NodeBlock{
			{
				EntityDim: 2, EntityTag: 1,
				Tags:        []uint64{3, 4, 5},
				Coordinates: []float64{1, 0, 0, 2, 0, 0, 1.5, 1, 0},
			},
			{
				EntityDim: 1, EntityTag: 2,
				Tags:        []uint64{1, 2},
				Coordinates: []float64{0, -1, 0, 0, 1, 0},
			},
		},
		[]ElementBlock{
			{EntityDim: 2, EntityTag: 1, ElementType: Triangle3, Count: 1, Data: []uint64{1, 3, 4, 5}},
			{EntityDim: 1, EntityTag: 2, ElementType: Line2, Count: 1, Data: []uint64{2, 1, 2}},
		},
	)
}

// fieldsMesh carries data blocks with 2 and 4 fields per entry
func fieldsMesh() *Document {
	doc := twoTriangles()
	doc.NodeData = []Data{{
		Header: DataHeader{StringTags: []string{"uv"}, RealTags: []float64{0}, IntTags: []int{0, 2, 4}},
		Tags:   []uint64{1, 2, 3, 4},
		Values: []float64{0, 0, 1, 0, 1, 1, 0, 1},
	}}
	doc.ElementData = []Data{{
		Header: DataHeader{StringTags: []string{"quaternion"}, RealTags: []float64{0}, IntTags: []int{0, 4, 2}},
		Tags:   []uint64{1, 2},
		Values: []float64{1, 0, 0, 0, 0.5, 0.5, -0.5, 0.5},
	}}
	doc.ElementNodeData = []Data{{
		Header:          DataHeader{StringTags: []string{"uv"}, RealTags: []float64{0}, IntTags: []int{0, 2, 2}},
		Tags:            []uint64{1, 2},
		Values:          []float64{0, 0, 1, 0, 1, 1, 0, 0, 1, 1, 0, 1},
		NodesPerElement: 3,
	}}
	return doc
}

func clone[T any](s []T) []T {
	return append([]T{}, s...)
}

func assertSameNodes(t *testing.T, want, got *Nodes) {
	t.Helper()
	assert.Equal(t, want.NumBlocks, got.NumBlocks, "node block count")
	assert.Equal(t, want.NumNodes, got.NumNodes, "node count")
	assert.Equal(t, want.MinTag, got.MinTag, "min node tag")
	assert.Equal(t, want.MaxTag, got.MaxTag, "max node tag")
	require.Len(t, got.Blocks, len(want.Blocks))
	for i := range want.Blocks {
		w, g := &want.Blocks[i], &got.Blocks[i]
		assert.Equal(t, w.EntityDim, g.EntityDim, "node block %d entity dim", i)
		assert.Equal(t, w.EntityTag, g.EntityTag, "node block %d entity tag", i)
		assert.Equal(t, w.Parametric, g.Parametric, "node block %d parametric", i)
		assert.Equal(t, clone(w.Tags), clone(g.Tags), "node block %d tags", i)
		assert.True(t, floats.Equal(w.Coordinates, g.Coordinates),
			"node block %d coordinates: want %v, got %v", i, w.Coordinates, g.Coordinates)
	}
}

func assertSameElements(t *testing.T, want, got *Elements) {
	t.Helper()
	assert.Equal(t, want.NumBlocks, got.NumBlocks, "element block count")
	assert.Equal(t, want.NumElements, got.NumElements, "element count")
	assert.Equal(t, want.MinTag, got.MinTag, "min element tag")
	assert.Equal(t, want.MaxTag, got.MaxTag, "max element tag")
	require.Len(t, got.Blocks, len(want.Blocks))
	for i := range want.Blocks {
		w, g := &want.Blocks[i], &got.Blocks[i]
		assert.Equal(t, w.EntityDim, g.EntityDim, "element block %d entity dim", i)
		assert.Equal(t, w.EntityTag, g.EntityTag, "element block %d entity tag", i)
		assert.Equal(t, w.ElementType, g.ElementType, "element block %d type", i)
		assert.Equal(t, w.Count, g.Count, "element block %d count", i)
		assert.Equal(t, clone(w.Data), clone(g.Data), "element block %d data", i)
	}
}

func assertSameEntities(t *testing.T, want, got *Entities) {
	t.Helper()
	require.Len(t, got.Points, len(want.Points))
	for i := range want.Points {
		w, g := want.Points[i], got.Points[i]
		assert.Equal(t, w.Tag, g.Tag)
		assert.True(t, floats.Equal([]float64{w.X, w.Y, w.Z}, []float64{g.X, g.Y, g.Z}))
		assert.Equal(t, clone(w.PhysicalTags), clone(g.PhysicalTags))
	}
	for _, pair := range [][2][]BoundedEntity{
		{want.Curves, got.Curves},
		{want.Surfaces, got.Surfaces},
		{want.Volumes, got.Volumes},
	} {
		require.Len(t, pair[1], len(pair[0]))
		for i := range pair[0] {
			w, g := pair[0][i], pair[1][i]
			assert.Equal(t, w.Tag, g.Tag)
			assert.Equal(t, w.BoundingBox, g.BoundingBox)
			assert.Equal(t, clone(w.PhysicalTags), clone(g.PhysicalTags))
			assert.Equal(t, clone(w.BoundingEntities), clone(g.BoundingEntities))
		}
	}
}

func assertSameData(t *testing.T, want, got []Data) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		w, g := &want[i], &got[i]
		assert.Equal(t, clone(w.Header.StringTags), clone(g.Header.StringTags), "data %d string tags", i)
		assert.True(t, floats.Equal(w.Header.RealTags, g.Header.RealTags), "data %d real tags", i)
		assert.Equal(t, clone(w.Header.IntTags), clone(g.Header.IntTags), "data %d int tags", i)
		assert.Equal(t, clone(w.Tags), clone(g.Tags), "data %d tags", i)
		assert.True(t, floats.Equal(w.Values, g.Values), "data %d values: want %v, got %v", i, w.Values, g.Values)
		assert.Equal(t, w.NodesPerElement, g.NodesPerElement, "data %d nodes per element", i)
	}
}

// flatten lists node tags, xyz coordinates and (type, element row) pairs in
// file order, which is all a v2.2 file preserves
func flatten(doc *Document) (tags []uint64, xyz []float64, rows [][]uint64) {
	for _, b := range doc.Nodes.Blocks {
		entries := b.EntriesPerNode()
		for j, tag := range b.Tags {
			tags = append(tags, tag)
			xyz = append(xyz, b.Coordinates[j*entries:j*entries+3]...)
		}
	}
	for _, b := range doc.Elements.Blocks {
		if b.Count == 0 {
			continue
		}
		stride := len(b.Data) / b.Count
		for j := 0; j < b.Count; j++ {
			row := append([]uint64{uint64(b.ElementType)}, b.Data[j*stride:(j+1)*stride]...)
			rows = append(rows, row)
		}
	}
	return tags, xyz, rows
}
