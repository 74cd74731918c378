package dispatch

import "testing"

func TestQuadrant(t *testing.T) {
	tests := []struct {
		name       string
		priority   string
		importance string
		want       string
	}{
		{"high priority high importance", "high", "high", "q1"},
		{"only importance high", "medium", "high", "q2"},
		{"low priority high importance", "low", "high", "q2"},
		{"only priority high", "high", "medium", "q3"},
		{"high priority low importance", "high", "low", "q3"},
		{"both medium", "medium", "medium", "q4"},
		{"both low", "low", "low", "q4"},
		{"missing values default to medium", "", "", "q4"},
		{"missing priority with high importance", "", "high", "q2"},
		{"missing importance with high priority", "high", "", "q3"},
		{"case insensitive", "HIGH", "High", "q1"},
		{"whitespace trimmed", " high ", "high", "q1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Quadrant(tt.priority, tt.importance); got != tt.want {
				t.Errorf("Quadrant(%q, %q) = %q, want %q", tt.priority, tt.importance, got, tt.want)
			}
		})
	}
}
