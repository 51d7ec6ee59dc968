package engine

import (
	"reflect"
	"testing"
)

// starRows is a white star centred on (5,5).
var starRows = []string{".", ".", ".", ".", ".....W", "....WWW", ".....W"}

func TestIsStar(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(b *Board)
		c      Coord
		side   Side
		want   bool
	}{
		{"plain star", nil, C(5, 5), SideWhite, true},
		{"wrong side", nil, C(5, 5), SideBlack, false},
		{"arm is not a centre", nil, C(5, 4), SideWhite, false},
		{"diagonal occupied by opponent", func(b *Board) { b.Set(C(6, 6), Black) }, C(5, 5), SideWhite, false},
		{"diagonal occupied by own piece", func(b *Board) { b.Set(C(4, 4), White) }, C(5, 5), SideWhite, false},
		{"missing arm", func(b *Board) { b.Set(C(5, 6), Empty) }, C(5, 5), SideWhite, false},
		{"arm taken by opponent", func(b *Board) { b.Set(C(6, 5), Black) }, C(5, 5), SideWhite, false},
		{"empty centre", func(b *Board) { b.Set(C(5, 5), Empty) }, C(5, 5), SideWhite, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := mustParse(t, starRows...)
			if tc.mutate != nil {
				tc.mutate(&b)
			}
			if got := IsStar(&b, tc.c, tc.side); got != tc.want {
				t.Errorf("IsStar(%v, %v) = %v, want %v\n%s", tc.c, tc.side, got, tc.want, b.String())
			}
		})
	}
}

func TestIsStarNeverOnBorder(t *testing.T) {
	b := mustParse(t,
		"WWW",
		"W",
	)
	if IsStar(&b, C(0, 0), SideWhite) || IsStar(&b, C(1, 0), SideWhite) {
		t.Error("border cells cannot be star centres")
	}
	if IsStar(&b, C(-1, 0), SideWhite) {
		t.Error("off-board coordinate reported as star")
	}
}

func TestFindStars(t *testing.T) {
	b := mustParse(t,
		".",
		".",
		".",
		".",
		".....W",
		"....WWW",
		".....W",
		".",
		".",
		"..........B",
		".........BBB",
		"..........B",
	)
	before := b

	white := FindStars(&b, SideWhite)
	if want := []int{C(5, 5).Index()}; !reflect.DeepEqual(white, want) {
		t.Errorf("white stars = %v, want %v", white, want)
	}
	black := FindStars(&b, SideBlack)
	if want := []int{C(10, 10).Index()}; !reflect.DeepEqual(black, want) {
		t.Errorf("black stars = %v, want %v", black, want)
	}

	if again := FindStars(&b, SideWhite); !reflect.DeepEqual(again, white) {
		t.Errorf("second scan = %v, want %v", again, white)
	}
	if b != before {
		t.Error("FindStars modified the board")
	}

	empty := NewBoard()
	if got := FindStars(&empty, SideWhite); len(got) != 0 {
		t.Errorf("empty board stars = %v", got)
	}
}

func TestFindStarsRowMajor(t *testing.T) {
	b := mustParse(t,
		".",
		"..W......W",
		".WWW....WWW",
		"..W......W",
	)
	got := FindStars(&b, SideWhite)
	want := []int{C(2, 2).Index(), C(9, 2).Index()}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindStars = %v, want %v", got, want)
	}
}

func TestStarLedger(t *testing.T) {
	b := mustParse(t, starRows...)
	var l StarLedger

	if l.Grant() {
		t.Fatal("an empty ledger must not grant")
	}

	l.Refresh(&b, SideWhite)
	if len(l.Stars) != 1 {
		t.Fatalf("Refresh recorded %d stars, want 1", len(l.Stars))
	}
	if !l.Grant() {
		t.Fatal("first Grant with one star should succeed")
	}
	if l.Used != 1 {
		t.Errorf("Used = %d, want 1", l.Used)
	}

	// The same star is found again but already paid for.
	l.Refresh(&b, SideWhite)
	if l.Grant() {
		t.Error("a star must not grant twice in one cycle")
	}

	l.Reset()
	if l.Used != 0 || l.Stars != nil {
		t.Errorf("after Reset ledger = %+v", l)
	}
	l.Refresh(&b, SideWhite)
	if !l.Grant() {
		t.Error("a new cycle should grant again")
	}
}
