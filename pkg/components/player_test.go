package components

import "testing"

func TestPlayerStatusFrameSet(t *testing.T) {
	tests := []struct {
		status PlayerStatus
		want   string
	}{
		{PlayerStatus{Direction: DirDown, Activity: ActivityWalk}, "down"},
		{PlayerStatus{Direction: DirLeft, Activity: ActivityIdle}, "left_idle"},
		{PlayerStatus{Direction: DirUp, Activity: ActivityHoe}, "up_hoe"},
		{PlayerStatus{Direction: DirRight, Activity: ActivityWater}, "right_water"},
		{PlayerStatus{Direction: DirRight, Activity: ActivityAxe}, "right_axe"},
	}
	for _, tt := range tests {
		if got := tt.status.FrameSet(); got != tt.want {
			t.Errorf("FrameSet() = %q, want %q", got, tt.want)
		}
	}
}

func TestAllPlayerStatusesUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range AllPlayerStatuses() {
		key := s.FrameSet()
		if seen[key] {
			t.Errorf("duplicate frame set %q", key)
		}
		seen[key] = true
	}
	if len(seen) != 20 {
		t.Errorf("expected 20 frame sets, got %d", len(seen))
	}
}

func TestCapabilities(t *testing.T) {
	c := NewCapabilities(CapRenderable, CapCollidable)
	if !c.Has(CapRenderable | CapCollidable) {
		t.Error("expected renderable and collidable")
	}
	if c.Has(CapPlant) {
		t.Error("unexpected plant capability")
	}
	c.Remove(CapCollidable)
	c.Add(CapPlant)
	if c.Has(CapCollidable) || !c.Has(CapPlant) {
		t.Errorf("unexpected tags %b", c.Tags)
	}
}
