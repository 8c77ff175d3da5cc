package kniazhych

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

var ErrInvalidSnapshot = errors.New("invalid snapshot")

// ParsePieceID reads "wl-1" or "bkz" style identifiers.
func ParsePieceID(v string) (PieceID, error) {
	if len(v) < 2 {
		return PieceID{}, fmt.Errorf("piece id %q too short", v)
	}
	side, ok := parseSide(v[:1])
	if !ok {
		return PieceID{}, fmt.Errorf("piece id %q: bad side", v)
	}
	letter, inst, hasInst := strings.Cut(v[1:], "-")
	var kind PieceKind
	for k := Footman; k <= Monarch; k++ {
		if kindLetters[k] == letter {
			kind = k
			break
		}
	}
	if kind == KindNone {
		return PieceID{}, fmt.Errorf("piece id %q: bad kind", v)
	}
	id := PieceID{Side: side, Kind: kind}
	if kind.unique() {
		if hasInst {
			return PieceID{}, fmt.Errorf("piece id %q: %s takes no instance", v, kind)
		}
		return id, nil
	}
	if !hasInst {
		return PieceID{}, fmt.Errorf("piece id %q: missing instance", v)
	}
	n, err := strconv.ParseUint(inst, 10, 8)
	if err != nil || n == 0 || strconv.FormatUint(n, 10) != inst {
		return PieceID{}, fmt.Errorf("piece id %q: bad instance", v)
	}
	id.Instance = uint8(n)
	return id, nil
}

// MarshalJSON writes 0 for an empty cell and the piece id string otherwise.
func (p PieceID) MarshalJSON() ([]byte, error) {
	if p.Empty() {
		return []byte("0"), nil
	}
	return json.Marshal(p.String())
}

func (p *PieceID) UnmarshalJSON(data []byte) error {
	if string(data) == "0" {
		*p = PieceID{}
		return nil
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("cell %s: want 0 or a piece id", data)
	}
	id, err := ParsePieceID(v)
	if err != nil {
		return err
	}
	*p = id
	return nil
}

// Snapshot is the persisted form of a GameState.
type Snapshot struct {
	Board                  []PieceID         `json:"board"`
	ActiveSide             Side              `json:"activeSide"`
	MoveRecord             map[string]bool   `json:"moveRecord"`
	CoronationJustHappened bool              `json:"coronationJustHappened"`
	PendingPromotion       *PendingPromotion `json:"pendingPromotion,omitempty"`
	Conclusion             *Conclusion       `json:"conclusion,omitempty"`
}

func (s *GameState) Snapshot() Snapshot {
	snap := Snapshot{
		Board:                  append([]PieceID(nil), s.Board.Squares[:]...),
		ActiveSide:             s.ActiveSide,
		MoveRecord:             make(map[string]bool, len(s.Moved)),
		CoronationJustHappened: s.Coronation,
		PendingPromotion:       s.Promotion,
		Conclusion:             s.Conclusion,
	}
	for id, v := range s.Moved {
		snap.MoveRecord[id.String()] = v
	}
	return snap
}

// Encode returns the JSON snapshot. Map keys are sorted, so equal states
// encode to equal bytes.
func (s *GameState) Encode() ([]byte, error) {
	return json.Marshal(s.Snapshot())
}

func (snap Snapshot) State() (*GameState, error) {
	if len(snap.Board) != NumSquares {
		return nil, fmt.Errorf("%w: board has %d cells", ErrInvalidSnapshot, len(snap.Board))
	}
	s := &GameState{
		ActiveSide: snap.ActiveSide,
		Moved:      make(MoveRecord, len(snap.MoveRecord)),
		Coronation: snap.CoronationJustHappened,
	}
	seen := make(map[PieceID]bool)
	for sq, id := range snap.Board {
		if id.Empty() {
			continue
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: %s appears twice", ErrInvalidSnapshot, id)
		}
		seen[id] = true
		s.Board.Squares[sq] = id
	}
	for key, v := range snap.MoveRecord {
		id, err := ParsePieceID(key)
		if err != nil {
			return nil, fmt.Errorf("%w: move record: %v", ErrInvalidSnapshot, err)
		}
		s.Moved[id] = v
	}
	if s.ActiveSide != First && s.ActiveSide != Second {
		return nil, fmt.Errorf("%w: no active side", ErrInvalidSnapshot)
	}
	if snap.PendingPromotion != nil && snap.Conclusion != nil {
		return nil, fmt.Errorf("%w: promotion and conclusion both set", ErrInvalidSnapshot)
	}
	if p := snap.PendingPromotion; p != nil {
		if p.Cell < 0 || p.Cell >= NumSquares || s.Board.Squares[p.Cell].Kind != Footman || !s.Board.Squares[p.Cell].Of(p.Side) {
			return nil, fmt.Errorf("%w: promotion cell %d holds no footman of %s", ErrInvalidSnapshot, p.Cell, p.Side)
		}
		pp := *p
		s.Promotion = &pp
	}
	if c := snap.Conclusion; c != nil {
		cc := *c
		s.Conclusion = &cc
	} else {
		for _, side := range [2]Side{First, Second} {
			if !s.Board.hasMonarch(side) {
				return nil, fmt.Errorf("%w: side %s has no monarch", ErrInvalidSnapshot, side)
			}
		}
	}
	return s, nil
}

func DecodeState(data []byte) (*GameState, error) {
	snap := Snapshot{ActiveSide: NoSide}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	return snap.State()
}

// EncodeShare produces the token the UI puts in sharing URLs:
// base64(encodeURIComponent(json)).
func (s *GameState) EncodeShare() (string, error) {
	data, err := s.Encode()
	if err != nil {
		return "", err
	}
	escaped := strings.ReplaceAll(url.QueryEscape(string(data)), "+", "%20")
	return base64.StdEncoding.EncodeToString([]byte(escaped)), nil
}

func DecodeShare(token string) (*GameState, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(token))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	data, err := url.PathUnescape(string(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	return DecodeState([]byte(data))
}

// LoadState never fails: malformed input yields the initial state.
func LoadState(token string) *GameState {
	s, err := DecodeShare(token)
	if err != nil {
		return InitialState()
	}
	return s
}
