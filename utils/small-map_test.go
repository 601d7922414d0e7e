package utils

import "testing"

func TestSmallMapOrder(t *testing.T) {
	var m SmallMap
	m.Set("b", 1)
	m.Set("a", 2)
	m.Set("c", 3)
	m.Set("a", 4)
	keys := m.Keys()
	if len(keys) != 3 || keys[0] != "b" || keys[1] != "a" || keys[2] != "c" {
		t.Errorf("unexpected key order %v", keys)
	}
	if v, ok := m.Get("a"); !ok || v != 4 {
		t.Errorf("Get a returned %v, %v", v, ok)
	}
	m, ok := m.Delete("b")
	if !ok || len(m) != 2 || m[0].Key != "a" {
		t.Errorf("Delete failed: %v", m)
	}
	if _, ok := m.Get("b"); ok {
		t.Error("deleted key still present")
	}
}

func TestIntern(t *testing.T) {
	s1 := "gene"
	s2 := string([]byte{'g', 'e', 'n', 'e'})
	if Intern(s1) != Intern(s2) {
		t.Error("equal strings interned to different symbols")
	}
	if Intern("gene") == Intern("exon") {
		t.Error("different strings interned to the same symbol")
	}
	if InternString(s2) != "gene" {
		t.Error("InternString changed the string")
	}
}
