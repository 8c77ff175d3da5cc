package kniazhych

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	Size       = 9
	NumSquares = Size * Size

	throneXY = 4
	Throne   = throneXY*Size + throneXY

	castlingStep = 3
)

func indexOf(x, y int) int { return y*Size + x }
func xOf(sq int) int        { return sq % Size }
func yOf(sq int) int        { return sq / Size }

func onBoard(x, y int) bool {
	return x >= 0 && x < Size && y >= 0 && y < Size
}

func opposite(side Side) Side {
	if side == First {
		return Second
	}
	if side == Second {
		return First
	}
	return NoSide
}

// Opposite is exported for callers outside the engine.
func (s Side) Opposite() Side { return opposite(s) }

// Coordinate is the (x, y) form of a cell; y grows towards Second's home rank.
type Coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func CoordinateOf(sq int) Coordinate { return Coordinate{X: xOf(sq), Y: yOf(sq)} }

func (c Coordinate) Valid() bool { return onBoard(c.X, c.Y) }

func (c Coordinate) Index() int { return indexOf(c.X, c.Y) }

func (c Coordinate) String() string { return fmt.Sprintf("(%d,%d)", c.X, c.Y) }

// The palace is the 5x5 block centred on the throne.
func inPalace(sq int) bool {
	x, y := xOf(sq), yOf(sq)
	return x >= throneXY-2 && x <= throneXY+2 && y >= throneXY-2 && y <= throneXY+2
}

// forward direction of a side's footmen along y.
func forward(side Side) int {
	if side == First {
		return +1
	}
	if side == Second {
		return -1
	}
	return 0
}

func homeRank(side Side) int {
	if side == First {
		return 0
	}
	return Size - 1
}

func footmanRank(side Side) int { return homeRank(side) + forward(side) }

func promotionRank(side Side) int { return homeRank(opposite(side)) }

// Diagram letters: upper case for First, lower case for Second.
var letterToKind = map[rune]PieceKind{
	'r': Footman,
	'g': Cannon,
	'v': Rider,
	'l': Tower,
	'h': Marshal,
	'c': Heir,
	'k': Monarch,
}

func pieceToChar(p PieceID) rune {
	if p.Empty() {
		return '.'
	}
	var base rune
	for k, v := range letterToKind {
		if v == p.Kind {
			base = k
			break
		}
	}
	if base == 0 {
		return '?'
	}
	if p.Side == First {
		return unicode.ToUpper(base)
	}
	return base
}

const initialBoardString = `LVGHKCVGL
RRRRRRRRR
.........
.........
....+....
.........
.........
rrrrrrrrr
lgvckhgvl`

// ParseBoard reads a 9-line diagram, y = 0 first. '.' and '+' are empty cells.
// Instances are numbered per side and kind in reading order.
func ParseBoard(diagram string) (Board, error) {
	var b Board
	lines := make([]string, 0, Size)
	for _, line := range strings.Split(diagram, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) != Size {
		return b, fmt.Errorf("diagram has %d rows, want %d", len(lines), Size)
	}
	var next [2][Monarch + 1]uint8
	for y, line := range lines {
		row := []rune(line)
		if len(row) != Size {
			return b, fmt.Errorf("diagram row %d has %d cells, want %d", y, len(row), Size)
		}
		for x, ch := range row {
			if ch == '.' || ch == '+' {
				continue
			}
			kind, ok := letterToKind[unicode.ToLower(ch)]
			if !ok {
				return b, fmt.Errorf("unknown piece letter %q", ch)
			}
			side := Second
			if unicode.IsUpper(ch) {
				side = First
			}
			id := PieceID{Side: side, Kind: kind}
			if !kind.unique() {
				next[side][kind]++
				id.Instance = next[side][kind]
			} else if next[side][kind] > 0 {
				return b, fmt.Errorf("second %s for side %s", kind, side)
			} else {
				next[side][kind]++
			}
			b.Squares[indexOf(x, y)] = id
		}
	}
	return b, nil
}

func mustParseBoard(diagram string) Board {
	b, err := ParseBoard(diagram)
	if err != nil {
		panic(err)
	}
	return b
}

func (b *Board) String() string {
	var sb strings.Builder
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			sq := indexOf(x, y)
			if sq == Throne && b.Squares[sq].Empty() {
				sb.WriteByte('+')
				continue
			}
			sb.WriteRune(pieceToChar(b.Squares[sq]))
		}
		if y < Size-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// WithMove returns a copy of the board with the piece on from relocated to to.
func (b Board) WithMove(from, to int) Board {
	b.Squares[to] = b.Squares[from]
	b.Squares[from] = PieceID{}
	return b
}

func NewInitialBoard() Board {
	return mustParseBoard(initialBoardString)
}

// InitialState is the fixed starting layout with First to move.
func InitialState() *GameState {
	return &GameState{
		Board:      NewInitialBoard(),
		ActiveSide: First,
		Moved:      MoveRecord{},
	}
}
