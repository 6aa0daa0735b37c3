package msh

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// binaryFile assembles a binary MSH stream from text and native-endian values
type binaryFile struct {
	bytes.Buffer
}

func (f *binaryFile) text(s string) *binaryFile {
	f.WriteString(s)
	return f
}

func (f *binaryFile) values(v ...interface{}) *binaryFile {
	for _, x := range v {
		if err := binary.Write(f, binary.NativeEndian, x); err != nil {
			panic(err)
		}
	}
	return f
}

func TestLoadBinaryV41Nodes(t *testing.T) {
	var f binaryFile
	f.text("$MeshFormat\n4.1 1 8\n").values(int32(1)).text("\n$EndMeshFormat\n")
	f.text("$Nodes\n").
		values([]uint64{1, 2, 10, 11}).
		values([]int32{2, 3, 0}, uint64(2), []uint64{10, 11}).
		values([]float64{0, 0, 0, 1, 2, 3}).
		text("\n$EndNodes\n")

	doc, err := Load(&f)
	require.NoError(t, err)
	assert.Equal(t, Binary, doc.Format.Encoding())
	assertSameNodes(t, &Nodes{
		NumBlocks: 1, NumNodes: 2, MinTag: 10, MaxTag: 11,
		Blocks: []NodeBlock{{
			EntityDim: 2, EntityTag: 3,
			Tags:        []uint64{10, 11},
			Coordinates: []float64{0, 0, 0, 1, 2, 3},
		}},
	}, &doc.Nodes)
}

// A node tag of 10 starts the payload with a newline byte on little-endian
// hosts; only the single separator after the count may be skipped.
func TestLoadBinaryV22PayloadStartingWithLayoutByte(t *testing.T) {
	var f binaryFile
	f.text("$MeshFormat\n2.2 1 8\n").values(int32(1)).text("\n$EndMeshFormat\n")
	f.text("$Nodes\n1\n").values(int32(10), [3]float64{1, 2, 3}).text("\n$EndNodes\n")
	f.text("$Elements\n1\n").
		values([]int32{Point1, 1, 2}).
		values([]int32{32, 4, 6, 10}).
		text("\n$EndElements\n")

	doc, err := Load(&f)
	require.NoError(t, err)
	require.Len(t, doc.Nodes.Blocks, 1)
	assert.Equal(t, []uint64{10}, doc.Nodes.Blocks[0].Tags)
	assert.Equal(t, []float64{1, 2, 3}, doc.Nodes.Blocks[0].Coordinates)
	assert.Equal(t, 0, doc.Nodes.Blocks[0].EntityDim)
	assert.Equal(t, 6, doc.Nodes.Blocks[0].EntityTag)

	require.Len(t, doc.Elements.Blocks, 1)
	assert.Equal(t, []uint64{32, 10}, doc.Elements.Blocks[0].Data)
	require.Len(t, doc.Entities.Points, 1)
	assert.Equal(t, PointEntity{Tag: 6, PhysicalTags: []int{4}}, doc.Entities.Points[0])
}

func TestLoadBinaryV22ElementOverrun(t *testing.T) {
	var f binaryFile
	f.text("$MeshFormat\n2.2 1 8\n").values(int32(1)).text("\n$EndMeshFormat\n")
	f.text("$Elements\n1\n").
		values([]int32{Point1, 2, 0}).
		values([]int32{1, 1}, []int32{2, 1}).
		text("\n$EndElements\n")

	_, err := Load(&f)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidFormat))
	assert.Contains(t, err.Error(), "more than the 1 declared elements")
}

func TestLoadBinaryEndiannessMismatch(t *testing.T) {
	var sentinel [4]byte
	binary.NativeEndian.PutUint32(sentinel[:], 1)
	sentinel[0], sentinel[1], sentinel[2], sentinel[3] = sentinel[3], sentinel[2], sentinel[1], sentinel[0]

	for _, version := range []string{"2.2", "4.1"} {
		t.Run(version, func(t *testing.T) {
			var f binaryFile
			f.text("$MeshFormat\n" + version + " 1 8\n")
			f.Write(sentinel[:])
			f.text("\n$EndMeshFormat\n")

			_, err := Load(&f)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnsupportedFeature))
			assert.Contains(t, err.Error(), "endianness mismatch")
		})
	}
}

func TestLoadBinaryTruncated(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Save(&buf, twoTriangles(), V41, Binary))
	full := buf.String()
	cut := strings.Index(full, "$EndNodes") - 9

	_, err := Load(strings.NewReader(full[:cut]))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidFormat))
	assert.Equal(t, sectionNodes, err.(*Error).Section)
}

func TestLoadBinaryDataTagsAreInt32(t *testing.T) {
	var f binaryFile
	f.text("$MeshFormat\n4.1 1 8\n").values(int32(1)).text("\n$EndMeshFormat\n")
	f.text("$ElementData\n1\n\"rho\"\n1\n0\n3\n0\n2\n1\n").
		values(int32(7), []float64{1.5, 2.5}).
		text("\n$EndElementData\n")

	doc, err := Load(&f)
	require.NoError(t, err)
	require.Len(t, doc.ElementData, 1)
	assert.Equal(t, []uint64{7}, doc.ElementData[0].Tags)
	assert.Equal(t, []float64{1.5, 2.5}, doc.ElementData[0].Values)
}
