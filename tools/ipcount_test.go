package tools

import "testing"

func TestIPCount(t *testing.T) {
	ic := NewIPCount()

	ic.Add("10.0.0.1")
	ic.Add("10.0.0.1")
	ic.Add("10.0.0.2")

	if got := ic.IPConns("10.0.0.1"); got != 2 {
		t.Errorf("IPConns() = %d, want 2", got)
	}
	if got := ic.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}

	ic.Remove("10.0.0.1")
	ic.Remove("10.0.0.1")
	if got := ic.Len(); got != 1 {
		t.Errorf("Len() after removals = %d, want 1", got)
	}

	// total counters survive removals
	if got := ic.IPConnsTotal("10.0.0.1"); got != 2 {
		t.Errorf("IPConnsTotal() = %d, want 2", got)
	}
	ip, max := ic.TopIP()
	if ip != "10.0.0.1" || max != 2 {
		t.Errorf("TopIP() = %s/%d, want 10.0.0.1/2", ip, max)
	}
}
