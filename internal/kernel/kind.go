package kernel

// Kind is the topological kind of a Shape.
type Kind int

const (
	KindVertex Kind = iota
	KindEdge
	KindWire
	KindFace
	KindShell
	KindSolid
	KindCompound
)

func (k Kind) String() string {
	switch k {
	case KindVertex:
		return "vertex"
	case KindEdge:
		return "edge"
	case KindWire:
		return "wire"
	case KindFace:
		return "face"
	case KindShell:
		return "shell"
	case KindSolid:
		return "solid"
	case KindCompound:
		return "compound"
	default:
		return "unknown"
	}
}

// GeomType is the underlying geometry of an edge or face.
type GeomType int

const (
	GeomOther GeomType = iota
	GeomLine
	GeomCircle
	GeomPlane
	GeomCylinder
	GeomSphere
)

func (g GeomType) String() string {
	switch g {
	case GeomLine:
		return "line"
	case GeomCircle:
		return "circle"
	case GeomPlane:
		return "plane"
	case GeomCylinder:
		return "cylinder"
	case GeomSphere:
		return "sphere"
	default:
		return "other"
	}
}
