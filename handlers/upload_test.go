package handlers

import (
	"testing"

	"communityconnect/models"
)

func TestMaxBytesForKind(t *testing.T) {
	tests := []struct {
		kind string
		want int64
	}{
		{models.MediaImage, 10 << 20},
		{models.MediaVideo, 100 << 20},
		{models.MediaDocument, 50 << 20},
	}

	for _, tt := range tests {
		if got := maxBytesForKind(tt.kind); got != tt.want {
			t.Errorf("maxBytesForKind(%s) = %d, want %d", tt.kind, got, tt.want)
		}
	}
}
