package kniazhych

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestSnapshotRoundTrip(t *testing.T) {
	s := decodeFixture(t, heirChallengeFixture)
	data, err := s.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(data) != heirChallengeFixture {
		t.Fatalf("re-encoded fixture differs:\n got=%s\nwant=%s", data, heirChallengeFixture)
	}

	back, err := DecodeState(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(s, back) {
		t.Fatalf("round trip changed the state")
	}
}

func TestInitialSnapshotLayout(t *testing.T) {
	data, err := InitialState().Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	prefix := `{"board":["wl-1","wv-1","wg-1","wgt","wkz","wkc","wv-2","wg-2","wl-2","wr-1"`
	if !bytes.HasPrefix(data, []byte(prefix)) {
		t.Fatalf("unexpected encoding: %s", data)
	}
	if !bytes.Contains(data, []byte(`"activeSide":"w","moveRecord":{},"coronationJustHappened":false}`)) {
		t.Fatalf("unexpected tail: %s", data)
	}
}

func TestSnapshotPendingPromotion(t *testing.T) {
	s := stateFrom(t, `
....K....
.........
.........
.........
....+....
.........
.........
L.R......
......k..`, First)
	pending := mustApply(t, s, at(2, 7), at(2, 8))
	data, err := pending.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Contains(data, []byte(`"pendingPromotion":{"cell":74,"side":"w"}`)) {
		t.Fatalf("pending promotion not encoded: %s", data)
	}
	back, err := DecodeState(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(pending, back) {
		t.Fatalf("round trip changed the pending state")
	}
}

func TestShareTokenRoundTrip(t *testing.T) {
	s := mustApply(t, InitialState(), at(4, 1), at(4, 3))
	token, err := s.EncodeShare()
	if err != nil {
		t.Fatalf("encode share: %v", err)
	}
	back, err := DecodeShare(token)
	if err != nil {
		t.Fatalf("decode share: %v", err)
	}
	if !reflect.DeepEqual(s, back) {
		t.Fatalf("share round trip changed the state")
	}
	if got := LoadState(token); !reflect.DeepEqual(s, got) {
		t.Fatalf("LoadState did not restore the shared state")
	}
}

func TestLoadStateFallsBack(t *testing.T) {
	for _, token := range []string{"", "garbage", "e30=" /* {} */} {
		if got := LoadState(token); !reflect.DeepEqual(got, InitialState()) {
			t.Errorf("LoadState(%q) is not the initial state", token)
		}
	}
}

func TestDecodeStateRejects(t *testing.T) {
	valid := InitialState()
	base, err := valid.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	tests := []struct {
		name string
		data string
	}{
		{"not json", `nope`},
		{"unknown field", strings.Replace(string(base), `"board"`, `"extra":1,"board"`, 1)},
		{"short board", `{"board":[0],"activeSide":"w","moveRecord":{},"coronationJustHappened":false}`},
		{"bad side", strings.Replace(string(base), `"activeSide":"w"`, `"activeSide":"x"`, 1)},
		{"missing side", strings.Replace(string(base), `"activeSide":"w",`, ``, 1)},
		{"bad piece", strings.Replace(string(base), `"wl-1"`, `"wq-1"`, 1)},
		{"duplicate piece", strings.Replace(string(base), `"wl-2"`, `"wl-1"`, 1)},
		{"monarch with instance", strings.Replace(string(base), `"wkz"`, `"wkz-1"`, 1)},
		{"no monarch", strings.Replace(string(base), `"bkz"`, `0`, 1)},
		{"bad move record", strings.Replace(string(base), `"moveRecord":{}`, `"moveRecord":{"zz":true}`, 1)},
		{"promotion without footman", strings.Replace(string(base), `"coronationJustHappened":false`, `"coronationJustHappened":false,"pendingPromotion":{"cell":40,"side":"w"}`, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeState([]byte(tt.data)); !errors.Is(err, ErrInvalidSnapshot) {
				t.Fatalf("got err=%v want %v", err, ErrInvalidSnapshot)
			}
		})
	}
}

func TestParsePieceID(t *testing.T) {
	tests := []struct {
		in   string
		want PieceID
	}{
		{"wr-1", PieceID{Side: First, Kind: Footman, Instance: 1}},
		{"bgt", PieceID{Side: Second, Kind: Marshal}},
		{"bg-2", PieceID{Side: Second, Kind: Cannon, Instance: 2}},
		{"wkc", PieceID{Side: First, Kind: Heir}},
		{"bl-12", PieceID{Side: Second, Kind: Tower, Instance: 12}},
	}
	for _, tt := range tests {
		got, err := ParsePieceID(tt.in)
		if err != nil {
			t.Fatalf("ParsePieceID(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParsePieceID(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
		if got.String() != tt.in {
			t.Errorf("String() = %s, want %s", got.String(), tt.in)
		}
	}
	for _, bad := range []string{"", "w", "xr-1", "wr", "wr-0", "wr-01", "wkz-1", "wgt-1", "wzz-1"} {
		if _, err := ParsePieceID(bad); err == nil {
			t.Errorf("ParsePieceID(%q) accepted", bad)
		}
	}
}

func TestMarshalIsSingleInstance(t *testing.T) {
	b := NewInitialBoard()
	if got := b.Squares[indexOf(3, 0)].String(); got != "wgt" {
		t.Fatalf("starting marshal: got=%s want=wgt", got)
	}
	if _, err := ParseBoard(`
HH..K....
.........
.........
.........
....+....
.........
.........
.........
....k....`); err == nil {
		t.Fatalf("diagram with two marshals of one side accepted")
	}
	if n := b.freshInstance(First, Marshal, MoveRecord{}); n != 0 {
		t.Fatalf("marshal instance: got=%d want=0", n)
	}

	s := decodeFixture(t, throneMaintainedFixture)
	if pc := s.Board.Squares[indexOf(3, 0)]; pc != (PieceID{Side: First, Kind: Marshal}) {
		t.Fatalf("fixture marshal decoded as %+v", pc)
	}
	if got := LoadState(mustShare(t, s)); !reflect.DeepEqual(got, s) {
		t.Fatalf("shared fixture fell back to another state")
	}
}

func mustShare(t *testing.T, s *GameState) string {
	t.Helper()
	token, err := s.EncodeShare()
	if err != nil {
		t.Fatalf("encode share: %v", err)
	}
	return token
}
