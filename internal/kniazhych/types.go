package kniazhych

import "fmt"

type Side int8

const (
	NoSide Side = -1
	First  Side = 0 // white, moves first, starts on y = 0
	Second Side = 1 // black, starts on y = 8
)

func (s Side) String() string {
	switch s {
	case First:
		return "w"
	case Second:
		return "b"
	default:
		return "-"
	}
}

func (s Side) MarshalText() ([]byte, error) {
	if s != First && s != Second {
		return nil, fmt.Errorf("invalid side %d", s)
	}
	return []byte(s.String()), nil
}

func (s *Side) UnmarshalText(text []byte) error {
	side, ok := parseSide(string(text))
	if !ok {
		return fmt.Errorf("invalid side %q", text)
	}
	*s = side
	return nil
}

func parseSide(v string) (Side, bool) {
	switch v {
	case "w":
		return First, true
	case "b":
		return Second, true
	default:
		return NoSide, false
	}
}

type PieceKind int8

const (
	KindNone PieceKind = iota
	Footman            // ratnik
	Cannon             // garmata, long diagonals
	Rider              // vaukalak, knight leaps
	Tower              // laddzia, long orthogonals
	Marshal            // getman, tower + cannon
	Heir               // kniazhych
	Monarch            // kniaz
)

// kindLetters are the identifiers used in persisted piece ids.
var kindLetters = [...]string{
	KindNone: "",
	Footman:  "r",
	Cannon:   "g",
	Rider:    "v",
	Tower:    "l",
	Marshal:  "gt",
	Heir:     "kc",
	Monarch:  "kz",
}

func (k PieceKind) String() string {
	switch k {
	case Footman:
		return "footman"
	case Cannon:
		return "cannon"
	case Rider:
		return "rider"
	case Tower:
		return "tower"
	case Marshal:
		return "marshal"
	case Heir:
		return "heir"
	case Monarch:
		return "monarch"
	default:
		return "none"
	}
}

func (k PieceKind) Letter() string {
	if k < KindNone || int(k) >= len(kindLetters) {
		return ""
	}
	return kindLetters[k]
}

// unique kinds exist once per side and carry no instance suffix.
func (k PieceKind) unique() bool { return k == Marshal || k == Heir || k == Monarch }

func (k PieceKind) royal() bool { return k == Heir || k == Monarch }

// ParsePieceKind accepts either the persisted letter ("gt") or the name ("marshal").
func ParsePieceKind(v string) (PieceKind, bool) {
	for k := Footman; k <= Monarch; k++ {
		if v == kindLetters[k] || v == k.String() {
			return k, true
		}
	}
	return KindNone, false
}

// PieceID identifies one physical piece. The zero value is an empty cell.
type PieceID struct {
	Side     Side
	Kind     PieceKind
	Instance uint8
}

func (p PieceID) Empty() bool { return p.Kind == KindNone }

func (p PieceID) Of(side Side) bool { return p.Kind != KindNone && p.Side == side }

func (p PieceID) String() string {
	if p.Empty() {
		return "0"
	}
	if p.Kind.unique() {
		return p.Side.String() + p.Kind.Letter()
	}
	return fmt.Sprintf("%s%s-%d", p.Side, p.Kind.Letter(), p.Instance)
}

type Board struct {
	Squares [NumSquares]PieceID
}

// MoveRecord holds the pieces that have moved at least once.
type MoveRecord map[PieceID]bool

func (m MoveRecord) with(ids ...PieceID) MoveRecord {
	out := make(MoveRecord, len(m)+len(ids))
	for id, v := range m {
		out[id] = v
	}
	for _, id := range ids {
		out[id] = true
	}
	return out
}

type Move struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type PendingPromotion struct {
	Cell int  `json:"cell"`
	Side Side `json:"side"`
}

type ConclusionKind int8

const (
	ConclusionThrone ConclusionKind = iota + 1
	ConclusionImmobilization
)

func (k ConclusionKind) String() string {
	switch k {
	case ConclusionThrone:
		return "throne"
	case ConclusionImmobilization:
		return "immobilization"
	default:
		return "none"
	}
}

func (k ConclusionKind) MarshalText() ([]byte, error) {
	if k != ConclusionThrone && k != ConclusionImmobilization {
		return nil, fmt.Errorf("invalid conclusion kind %d", k)
	}
	return []byte(k.String()), nil
}

func (k *ConclusionKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "throne":
		*k = ConclusionThrone
	case "immobilization":
		*k = ConclusionImmobilization
	default:
		return fmt.Errorf("invalid conclusion kind %q", text)
	}
	return nil
}

type Conclusion struct {
	Kind   ConclusionKind `json:"kind"`
	Winner Side           `json:"winner"`
}

// GameState is never mutated after construction; every move builds a new one.
type GameState struct {
	Board      Board
	ActiveSide Side
	Moved      MoveRecord
	// Coronation is set when the last move crowned the opponent's Heir.
	Coronation bool
	Promotion  *PendingPromotion
	Conclusion *Conclusion
}

func (s *GameState) clone() *GameState {
	ns := *s
	ns.Moved = s.Moved.with()
	if s.Promotion != nil {
		p := *s.Promotion
		ns.Promotion = &p
	}
	if s.Conclusion != nil {
		c := *s.Conclusion
		ns.Conclusion = &c
	}
	return &ns
}
