package msh

// Gmsh element type numbers, indexed exactly as in the MSH format reference
const (
	Line2         = 1
	Triangle3     = 2
	Quad4         = 3
	Tet4          = 4
	Hex8          = 5
	Prism6        = 6
	Pyramid5      = 7
	Line3         = 8
	Triangle6     = 9
	Quad9         = 10
	Tet10         = 11
	Hex27         = 12
	Prism18       = 13
	Pyramid14     = 14
	Point1        = 15
	Quad8         = 16
	Hex20         = 17
	Prism15       = 18
	Pyramid13     = 19
	Triangle9     = 20
	Triangle10    = 21
	Triangle12    = 22
	Triangle15    = 23
	Triangle15Inc = 24
	Triangle21    = 25
	Line4         = 26
	Line5         = 27
	Line6         = 28
	Tet20         = 29
	Tet35         = 30
	Tet56         = 31
)

type elementInfo struct {
	name     string
	numNodes int
	dim      int
}

// elementCatalog is indexed by Gmsh type number; slot 0 is unused
var elementCatalog = [...]elementInfo{
	{"", 0, 0},
	Line2:         {"Line2", 2, 1},
	Triangle3:     {"Triangle3", 3, 2},
	Quad4:         {"Quad4", 4, 2},
	Tet4:          {"Tet4", 4, 3},
	Hex8:          {"Hex8", 8, 3},
	Prism6:        {"Prism6", 6, 3},
	Pyramid5:      {"Pyramid5", 5, 3},
	Line3:         {"Line3", 3, 1},
	Triangle6:     {"Triangle6", 6, 2},
	Quad9:         {"Quad9", 9, 2},
	Tet10:         {"Tet10", 10, 3},
	Hex27:         {"Hex27", 27, 3},
	Prism18:       {"Prism18", 18, 3},
	Pyramid14:     {"Pyramid14", 14, 3},
	Point1:        {"Point1", 1, 0},
	Quad8:         {"Quad8", 8, 2},
	Hex20:         {"Hex20", 20, 3},
	Prism15:       {"Prism15", 15, 3},
	Pyramid13:     {"Pyramid13", 13, 3},
	Triangle9:     {"Triangle9", 9, 2},
	Triangle10:    {"Triangle10", 10, 2},
	Triangle12:    {"Triangle12", 12, 2},
	Triangle15:    {"Triangle15", 15, 2},
	Triangle15Inc: {"Triangle15Inc", 15, 2},
	Triangle21:    {"Triangle21", 21, 2},
	Line4:         {"Line4", 4, 1},
	Line5:         {"Line5", 5, 1},
	Line6:         {"Line6", 6, 1},
	Tet20:         {"Tet20", 20, 3},
	Tet35:         {"Tet35", 35, 3},
	Tet56:         {"Tet56", 56, 3},
}

// NumElementTypes is one past the largest supported element type number
const NumElementTypes = len(elementCatalog)

func lookupElement(elementType int) (elementInfo, error) {
	if elementType <= 0 || elementType >= NumElementTypes {
		return elementInfo{}, unsupported("", "unsupported element type: %d", elementType)
	}
	return elementCatalog[elementType], nil
}

// NodesPerElement returns the node count of a Gmsh element type
func NodesPerElement(elementType int) (int, error) {
	info, err := lookupElement(elementType)
	if err != nil {
		return 0, err
	}
	return info.numNodes, nil
}

// ElementDim returns the topological dimension of a Gmsh element type
func ElementDim(elementType int) (int, error) {
	info, err := lookupElement(elementType)
	if err != nil {
		return 0, err
	}
	return info.dim, nil
}

// ElementName returns a readable name, or "Unknown" for unsupported types
func ElementName(elementType int) string {
	info, err := lookupElement(elementType)
	if err != nil {
		return "Unknown"
	}
	return info.name
}
