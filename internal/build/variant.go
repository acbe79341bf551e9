package build

// Variant is the closed set of builder kinds.
type Variant int

const (
	VariantPart Variant = iota + 1
	VariantSketch
	VariantLine
)

func (v Variant) String() string {
	switch v {
	case VariantPart:
		return "part"
	case VariantSketch:
		return "sketch"
	case VariantLine:
		return "line"
	default:
		return "unknown"
	}
}

// Dimension is the topological dimension of the variant's accumulated result.
func (v Variant) Dimension() int {
	switch v {
	case VariantPart:
		return 3
	case VariantSketch:
		return 2
	case VariantLine:
		return 1
	default:
		return -1
	}
}

// canNest reports whether a child builder may open inside parent.
func canNest(parent, child Variant) bool {
	switch parent {
	case VariantPart:
		return true
	case VariantSketch:
		return child != VariantPart
	case VariantLine:
		return child == VariantLine
	}
	return false
}
