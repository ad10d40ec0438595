package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside right", 35, 15, false},
		{"outside top", 15, 5, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}

	cx, cy := r.Center()
	if cx != 15 || cy != 17 {
		t.Errorf("Center() = (%d, %d), expected (15, 17)", cx, cy)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestMinMax(t *testing.T) {
	if Min(5, 10) != 5 {
		t.Error("Min(5, 10) should be 5")
	}
	if Min(10, 5) != 5 {
		t.Error("Min(10, 5) should be 5")
	}
	if Max(5, 10) != 10 {
		t.Error("Max(5, 10) should be 10")
	}
	if Max(10, 5) != 10 {
		t.Error("Max(10, 5) should be 10")
	}
}

func TestViewport(t *testing.T) {
	tests := []struct {
		name           string
		fx, fy         int
		w, h           int
		worldW, worldH int
		expected       Rect
	}{
		{"world fits", 5, 5, 80, 24, 41, 21, NewRect(0, 0, 41, 21)},
		{"focus top-left", 1, 1, 20, 10, 61, 41, NewRect(0, 0, 20, 10)},
		{"focus centered", 30, 20, 20, 10, 61, 41, NewRect(20, 15, 20, 10)},
		{"focus bottom-right", 59, 39, 20, 10, 61, 41, NewRect(41, 31, 20, 10)},
		{"one axis scrolls", 50, 3, 20, 30, 61, 21, NewRect(40, 0, 20, 21)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Viewport(tc.fx, tc.fy, tc.w, tc.h, tc.worldW, tc.worldH)
			if got != tc.expected {
				t.Errorf("Viewport() = %+v, expected %+v", got, tc.expected)
			}
			if !got.Contains(tc.fx, tc.fy) {
				t.Errorf("Viewport() = %+v does not contain focus (%d, %d)", got, tc.fx, tc.fy)
			}
		})
	}
}

func TestLargestOdd(t *testing.T) {
	tests := []struct {
		limit, floor, expected int
	}{
		{80, 5, 79},
		{79, 5, 79},
		{22, 5, 21},
		{4, 5, 5},
		{-1, 5, 5},
	}

	for _, tc := range tests {
		if got := LargestOdd(tc.limit, tc.floor); got != tc.expected {
			t.Errorf("LargestOdd(%d, %d) = %d, expected %d", tc.limit, tc.floor, got, tc.expected)
		}
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		name     string
		expected Color
		wantErr  bool
	}{
		{"", ColorDefault, false},
		{"green", ColorGreen, false},
		{"  Bright-Red ", ColorBrightRed, false},
		{"gray", ColorGray, false},
		{"chartreuse", ColorDefault, true},
	}

	for _, tc := range tests {
		got, err := ParseColor(tc.name)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseColor(%q) error = %v, wantErr %v", tc.name, err, tc.wantErr)
			continue
		}
		if got != tc.expected {
			t.Errorf("ParseColor(%q) = %v, expected %v", tc.name, got, tc.expected)
		}
		if !tc.wantErr && tc.name != "" && got.String() == "" {
			t.Errorf("Color(%d).String() is empty", got)
		}
	}
}
