package core

import "testing"

func TestActionDirection(t *testing.T) {
	tests := []struct {
		action   Action
		dx, dy   int
		expected bool
	}{
		{ActionUp, 0, -1, true},
		{ActionDown, 0, 1, true},
		{ActionLeft, -1, 0, true},
		{ActionRight, 1, 0, true},
		{ActionStart, 0, 0, false},
		{ActionNone, 0, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.action.String(), func(t *testing.T) {
			dx, dy, ok := tc.action.Direction()
			if dx != tc.dx || dy != tc.dy || ok != tc.expected {
				t.Errorf("Direction() = (%d, %d, %v), expected (%d, %d, %v)", dx, dy, ok, tc.dx, tc.dy, tc.expected)
			}
		})
	}
}

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionStart) {
		t.Error("zero frame should have no actions")
	}

	f.Set(ActionStart)
	f.Set(ActionLeft)
	if !f.Has(ActionStart) || !f.Has(ActionLeft) {
		t.Error("Set actions should be reported by Has")
	}
	if f.Has(ActionRight) {
		t.Error("unset action should not be reported")
	}

	f.Clear()
	if f.Has(ActionStart) || f.Has(ActionLeft) {
		t.Error("Clear should remove all actions")
	}
}
