package source

import "testing"

func TestInternerBasic(t *testing.T) {
	in := NewInterner()
	a := in.Intern("alpha")
	b := in.Intern("beta")
	if a == b {
		t.Fatal("distinct strings must get distinct IDs")
	}
	if again := in.Intern("alpha"); again != a {
		t.Errorf("re-intern returned %d, want %d", again, a)
	}
	if s := in.MustLookup(b); s != "beta" {
		t.Errorf("MustLookup = %q", s)
	}
	if in.Intern("") != NoStringID {
		t.Error("empty string must map to NoStringID")
	}
	if in.Len() != 3 {
		t.Errorf("Len = %d, want 3", in.Len())
	}
}

func TestInternerLookupUnknown(t *testing.T) {
	in := NewInterner()
	if _, ok := in.Lookup(42); ok {
		t.Error("Lookup of unknown id must fail")
	}
	defer func() {
		if recover() == nil {
			t.Error("MustLookup of unknown id must panic")
		}
	}()
	in.MustLookup(42)
}

func TestInternerSnapshotIsCopy(t *testing.T) {
	in := NewInterner()
	in.Intern("x")
	snap := in.Snapshot()
	snap[1] = "changed"
	if in.MustLookup(1) != "x" {
		t.Error("snapshot must not alias interner storage")
	}
}
