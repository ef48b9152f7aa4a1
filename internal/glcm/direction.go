package glcm

// Direction identifies one of the five co-occurrence matrices built per window.
type Direction int

const (
	Deg0 Direction = iota
	Deg45
	Deg90
	Deg135
	Average
)

// Directions lists every direction in output row order.
var Directions = [...]Direction{Deg0, Deg45, Deg90, Deg135, Average}

// axial holds the four single-offset directions; Average combines all of them.
var axial = [...]Direction{Deg0, Deg45, Deg90, Deg135}

type offset struct {
	dx, dy int
}

func (d Direction) String() string {
	switch d {
	case Deg0:
		return "0"
	case Deg45:
		return "45"
	case Deg90:
		return "90"
	case Deg135:
		return "135"
	case Average:
		return "Average"
	default:
		return "unknown"
	}
}

// offsets returns the neighbour displacements sampled for d at the given step.
// Average returns all four axial offsets.
func (d Direction) offsets(step int) []offset {
	switch d {
	case Deg0:
		return []offset{{step, 0}}
	case Deg45:
		return []offset{{step, step}}
	case Deg90:
		return []offset{{0, step}}
	case Deg135:
		return []offset{{-step, step}}
	case Average:
		all := make([]offset, 0, len(axial))
		for _, a := range axial {
			all = append(all, a.offsets(step)...)
		}
		return all
	default:
		return nil
	}
}
