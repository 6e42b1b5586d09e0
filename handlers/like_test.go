package handlers

import "testing"

func TestToggleTransition(t *testing.T) {
	tests := []struct {
		name      string
		hadLike   bool
		wantLiked bool
		wantDelta int
	}{
		{"no prior like records one and increments", false, true, 1},
		{"existing like is removed and decrements", true, false, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			liked, delta := toggleTransition(tt.hadLike)
			if liked != tt.wantLiked || delta != tt.wantDelta {
				t.Errorf("toggleTransition(%v) = (%v, %d), want (%v, %d)",
					tt.hadLike, liked, delta, tt.wantLiked, tt.wantDelta)
			}
		})
	}
}

func TestToggleTransition_DoubleToggleRestoresState(t *testing.T) {
	for _, startLiked := range []bool{false, true} {
		liked := startLiked
		likes := 7
		for i := 0; i < 2; i++ {
			next, delta := toggleTransition(liked)
			liked = next
			likes += delta
		}
		if liked != startLiked {
			t.Errorf("start liked=%v: two toggles ended liked=%v", startLiked, liked)
		}
		if likes != 7 {
			t.Errorf("start liked=%v: two toggles moved the counter to %d, want 7", startLiked, likes)
		}
	}
}
