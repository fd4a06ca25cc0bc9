package resolve

import "testing"

func TestTokenOverlap(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		candidate string
		want      int
	}{
		{
			name:      "identical names",
			query:     "2022-04-20-Tauben",
			candidate: "2022-04-20-Tauben",
			want:      4,
		},
		{
			name:      "folder vs video file name",
			query:     "2022-04-20-Tauben",
			candidate: "Tauben.Sullivan.4.20.22.mp4",
			want:      2, // "tauben" and "20"
		},
		{
			name:      "case insensitive",
			query:     "TAUBEN sullivan",
			candidate: "tauben Sullivan",
			want:      2,
		},
		{
			name:      "no overlap",
			query:     "Wager",
			candidate: "Sullivan",
			want:      0,
		},
		{
			name:      "duplicate tokens count once",
			query:     "intro intro intro",
			candidate: "intro",
			want:      1,
		},
		{
			name:      "empty query",
			query:     "",
			candidate: "anything",
			want:      0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TokenOverlap(tt.query, tt.candidate); got != tt.want {
				t.Errorf("TokenOverlap(%q, %q) = %d, want %d", tt.query, tt.candidate, got, tt.want)
			}
		})
	}
}
