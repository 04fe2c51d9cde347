package record

import "testing"

func TestRID_Accessors(t *testing.T) {
	rid := NewRID(3, 7)

	if rid.BlockNumber() != 3 {
		t.Errorf("BlockNumber() = %d, want 3", rid.BlockNumber())
	}
	if rid.Slot() != 7 {
		t.Errorf("Slot() = %d, want 7", rid.Slot())
	}
}

func TestRID_Equality(t *testing.T) {
	a := NewRID(1, 2)
	b := NewRID(1, 2)
	c := NewRID(1, 3)

	if a != b {
		t.Error("RIDs with the same block and slot should be == equal")
	}
	if a == c {
		t.Error("RIDs with different slots should not be == equal")
	}
}

func TestRID_String(t *testing.T) {
	rid := NewRID(5, 9)
	if rid.String() != "[5, 9]" {
		t.Errorf("String() = %q, want %q", rid.String(), "[5, 9]")
	}
}

func TestRID_AsMapKey(t *testing.T) {
	seen := map[RID]bool{}
	seen[NewRID(1, 1)] = true
	if !seen[NewRID(1, 1)] {
		t.Error("RID should be usable as a map key via value equality")
	}
}
