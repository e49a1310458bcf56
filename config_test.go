package gomem

import "testing"

func TestDefaultsettings(t *testing.T) {
	setts := Defaultsettings()
	if allocator := setts.String("allocator"); allocator != "heap" {
		t.Errorf("expected %q, got %q", "heap", allocator)
	}
	if capacity := setts.Int64("capacity"); capacity <= 0 {
		t.Errorf("unexpected capacity %v", capacity)
	}
	if minblock := setts.Int64("minblock"); minblock != 64 {
		t.Errorf("expected %v, got %v", 64, minblock)
	}
	if maxblock := setts.Int64("maxblock"); maxblock != 1024*1024 {
		t.Errorf("expected %v, got %v", 1024*1024, maxblock)
	}
}
