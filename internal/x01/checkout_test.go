package x01

import "testing"

func TestValidTurnScore(t *testing.T) {
	tests := []struct {
		name  string
		score int
		want  bool
	}{
		{name: "zero", score: 0, want: true},
		{name: "max", score: 180, want: true},
		{name: "ton", score: 100, want: true},
		{name: "negative", score: -1, want: false},
		{name: "above max", score: 181, want: false},
		{name: "unreachable 163", score: 163, want: false},
		{name: "unreachable 166", score: 166, want: false},
		{name: "unreachable 169", score: 169, want: false},
		{name: "unreachable 172", score: 172, want: false},
		{name: "unreachable 173", score: 173, want: false},
		{name: "unreachable 175", score: 175, want: false},
		{name: "unreachable 176", score: 176, want: false},
		{name: "unreachable 178", score: 178, want: false},
		{name: "unreachable 179", score: 179, want: false},
		{name: "reachable 174", score: 174, want: true},
		{name: "reachable 177", score: 177, want: true},
		{name: "reachable 171", score: 171, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidTurnScore(tt.score); got != tt.want {
				t.Errorf("ValidTurnScore(%d) = %v, want %v", tt.score, got, tt.want)
			}
		})
	}
}

func TestMinDartsToFinish(t *testing.T) {
	tests := []struct {
		name  string
		score int
		want  int
	}{
		{name: "already finished", score: 0, want: 0},
		{name: "double one", score: 2, want: 1},
		{name: "double twenty", score: 40, want: 1},
		{name: "bull", score: 50, want: 1},
		{name: "odd low", score: 3, want: 2},
		{name: "odd high", score: 39, want: 2},
		{name: "two darter 41", score: 41, want: 2},
		{name: "two darter 110", score: 110, want: 2},
		{name: "two darter 48", score: 48, want: 2},
		{name: "needs three 99", score: 99, want: 3},
		{name: "needs three 103", score: 103, want: 3},
		{name: "needs three 105", score: 105, want: 3},
		{name: "needs three 107", score: 107, want: 3},
		{name: "needs three 109", score: 109, want: 3},
		{name: "three darter 111", score: 111, want: 3},
		{name: "big fish", score: 170, want: 3},
		{name: "above checkout range", score: 171, want: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MinDartsToFinish(tt.score); got != tt.want {
				t.Errorf("MinDartsToFinish(%d) = %d, want %d", tt.score, got, tt.want)
			}
		})
	}
}

func TestUnfinishableLeftover(t *testing.T) {
	tests := []struct {
		name    string
		left    int
		preTurn int
		want    bool
	}{
		{name: "one is always dead", left: 1, preTurn: 501, want: true},
		{name: "159 inside checkout range", left: 159, preTurn: 170, want: true},
		{name: "169 inside checkout range", left: 169, preTurn: 170, want: true},
		{name: "159 outside checkout range", left: 159, preTurn: 180, want: false},
		{name: "finishable leftover", left: 160, preTurn: 170, want: false},
		{name: "two is fine", left: 2, preTurn: 42, want: false},
		{name: "ordinary leftover", left: 57, preTurn: 117, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := unfinishableLeftover(tt.left, tt.preTurn); got != tt.want {
				t.Errorf("unfinishableLeftover(%d, %d) = %v, want %v", tt.left, tt.preTurn, got, tt.want)
			}
		})
	}
}
