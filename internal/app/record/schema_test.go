package record

import "testing"

func TestSchema_AddIntField(t *testing.T) {
	sch := NewSchema()
	sch.AddIntField("id")

	if !sch.HasField("id") {
		t.Fatal("expected schema to have field \"id\"")
	}
	if sch.DataType("id") != INTEGER {
		t.Errorf("DataType(id) = %v, want INTEGER", sch.DataType("id"))
	}
}

func TestSchema_AddStringField(t *testing.T) {
	sch := NewSchema()
	sch.AddStringField("name", 12)

	if sch.DataType("name") != VARCHAR {
		t.Errorf("DataType(name) = %v, want VARCHAR", sch.DataType("name"))
	}
	if sch.Length("name") != 12 {
		t.Errorf("Length(name) = %d, want 12", sch.Length("name"))
	}
}

func TestSchema_HasField_Missing(t *testing.T) {
	sch := NewSchema()
	if sch.HasField("nope") {
		t.Error("HasField should be false for a field never added")
	}
	if sch.DataType("nope") != -1 {
		t.Errorf("DataType for missing field = %v, want -1", sch.DataType("nope"))
	}
	if sch.Length("nope") != -1 {
		t.Errorf("Length for missing field = %d, want -1", sch.Length("nope"))
	}
}

func TestSchema_Fields_Order(t *testing.T) {
	sch := NewSchema()
	sch.AddIntField("id")
	sch.AddStringField("name", 10)
	sch.AddIntField("age")

	want := []string{"id", "name", "age"}
	got := sch.Fields()
	if len(got) != len(want) {
		t.Fatalf("Fields() length = %d, want %d", len(got), len(want))
	}
	for i, name := range want {
		if got[i] != name {
			t.Errorf("Fields()[%d] = %q, want %q", i, got[i], name)
		}
	}
}

func TestSchema_AddAll(t *testing.T) {
	src := NewSchema()
	src.AddIntField("id")
	src.AddStringField("name", 8)

	dst := NewSchema()
	dst.AddAll(src)

	if !dst.HasField("id") || !dst.HasField("name") {
		t.Fatal("AddAll should copy every field from the source schema")
	}
	if dst.Length("name") != 8 {
		t.Errorf("Length(name) after AddAll = %d, want 8", dst.Length("name"))
	}
}
