package multibuffer

import "testing"

func TestBestRoot(t *testing.T) {
	tests := []struct {
		available, size, want int
	}{
		{100, 10, 4},
		{5, 100, 3},
		{3, 1000, 1},
	}

	for _, tt := range tests {
		got := BestRoot(tt.available, tt.size)
		if got != tt.want {
			t.Errorf("BestRoot(%d, %d) = %d, want %d", tt.available, tt.size, got, tt.want)
		}
	}
}

func TestBestFactor(t *testing.T) {
	tests := []struct {
		available, size, want int
	}{
		{100, 10, 10},
		{5, 100, 3},
		{3, 1000, 1},
	}

	for _, tt := range tests {
		got := BestFactor(tt.available, tt.size)
		if got != tt.want {
			t.Errorf("BestFactor(%d, %d) = %d, want %d", tt.available, tt.size, got, tt.want)
		}
	}
}
