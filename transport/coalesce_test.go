package transport

import "testing"

func TestCoalesceWritesSingleRun(t *testing.T) {
	updates := ParameterMap{"21": 50, "22": 1, "23": 7}
	groups := CoalesceWrites(updates)
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1: %+v", len(groups), groups)
	}
	g := groups[0]
	if g.StartAddress != 21 || len(g.Values) != 3 {
		t.Fatalf("got %+v", g)
	}
	if g.Values[0] != 50 || g.Values[1] != 1 || g.Values[2] != 7 {
		t.Errorf("got %v", g.Values)
	}
}

func TestCoalesceWritesMultipleRuns(t *testing.T) {
	updates := ParameterMap{"21": 50, "22": 1, "64": 1, "66": 2}
	groups := CoalesceWrites(updates)
	if len(groups) != 3 {
		t.Fatalf("got %d groups, want 3: %+v", len(groups), groups)
	}
	if groups[0].StartAddress != 21 || len(groups[0].Values) != 2 {
		t.Errorf("group 0: %+v", groups[0])
	}
	if groups[1].StartAddress != 64 || len(groups[1].Values) != 1 {
		t.Errorf("group 1: %+v", groups[1])
	}
	if groups[2].StartAddress != 66 || len(groups[2].Values) != 1 {
		t.Errorf("group 2: %+v", groups[2])
	}
}

func TestCoalesceWritesSkipsNonNumericKeys(t *testing.T) {
	updates := ParameterMap{"charge_current_limit": 30, "21": 50}
	groups := CoalesceWrites(updates)
	if len(groups) != 1 || groups[0].StartAddress != 21 {
		t.Fatalf("got %+v", groups)
	}
}

func TestCoalesceWritesEmpty(t *testing.T) {
	if groups := CoalesceWrites(ParameterMap{}); len(groups) != 0 {
		t.Errorf("got %+v, want empty", groups)
	}
}
