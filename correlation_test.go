package mdx

import "testing"

func TestCorrelationIDEquality(t *testing.T) {
	if NewCorrelationID(7) != NewCorrelationID(7) {
		t.Errorf("equal integer ids compare unequal")
	}
	if NewCorrelationID(7) == NewCorrelationID(8) {
		t.Errorf("distinct integer ids compare equal")
	}
	if NewCorrelationID(7) == NewCorrelationID(7).WithClassID(3) {
		t.Errorf("class id ignored in comparison")
	}

	ref := &struct{ n int }{1}
	other := &struct{ n int }{1}
	if NewCorrelationIDPointer(ref) != NewCorrelationIDPointer(ref) {
		t.Errorf("same pointer ids compare unequal")
	}
	if NewCorrelationIDPointer(ref) == NewCorrelationIDPointer(other) {
		t.Errorf("pointer ids compare by contents, want identity")
	}

	// integer payload equal to a pointer never matches across variants
	if NewCorrelationID(0) == (CorrelationID{}) {
		t.Errorf("integer id equals the unset id")
	}
}

func TestCorrelationIDAccessors(t *testing.T) {
	id := NewCorrelationID(42).WithClassID(9)
	if v, ok := id.Value(); !ok || v != 42 {
		t.Errorf("Value() = %d, %v", v, ok)
	}
	if _, ok := id.Pointer(); ok {
		t.Errorf("integer id has a pointer payload")
	}
	if id.ClassID() != 9 {
		t.Errorf("ClassID() = %d", id.ClassID())
	}
	if id.IsUnset() {
		t.Errorf("integer id reports unset")
	}
	if !(CorrelationID{}).IsUnset() {
		t.Errorf("zero id not unset")
	}
}

func TestCorrelationIDAsMapKey(t *testing.T) {
	m := map[CorrelationID]string{}
	m[NewCorrelationID(1)] = "a"
	m[NewCorrelationID(2)] = "b"
	m[NewCorrelationID(1)] = "c"
	if len(m) != 2 {
		t.Fatalf("len(m) = %d, want 2", len(m))
	}
	if m[NewCorrelationID(1)] != "c" {
		t.Errorf("m[1] = %q", m[NewCorrelationID(1)])
	}
}
