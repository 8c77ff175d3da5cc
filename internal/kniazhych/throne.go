package kniazhych

// ThronePolicy controls how a directional scan treats the throne cell.
type ThronePolicy int8

const (
	// PolicyStep: the throne is an ordinary cell.
	PolicyStep ThronePolicy = iota
	// PolicySkip: the throne is transparent; it costs one step of range but is never landed on.
	PolicySkip
	// PolicyBlock: the scan ends before the throne.
	PolicyBlock
)

func (p ThronePolicy) String() string {
	switch p {
	case PolicyStep:
		return "step"
	case PolicySkip:
		return "skip"
	case PolicyBlock:
		return "block"
	default:
		return "unknown"
	}
}

type throneAction int8

const (
	throneLand throneAction = iota // treat like any other cell
	throneContinue
	throneStop
)

// atThrone decides what a scan does when it reaches the throne. When probing,
// the throne is reported as attacked under every policy, and an empty throne
// does not stop a blocked scan so pieces behind it are still threatened.
func (p ThronePolicy) atThrone(occupant PieceID, side Side, probing bool, out []int) ([]int, throneAction) {
	switch p {
	case PolicySkip:
		if probing && !occupant.Of(side) {
			out = append(out, Throne)
		}
		return out, throneContinue
	case PolicyBlock:
		if !probing {
			return out, throneStop
		}
		if occupant.Of(side) {
			return out, throneStop
		}
		out = append(out, Throne)
		if occupant.Empty() {
			return out, throneContinue
		}
		return out, throneStop
	default:
		return out, throneLand
	}
}
