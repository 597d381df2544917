package itemlist

import (
	"reflect"
	"testing"
)

func TestReconcileByKeyNotPosition(t *testing.T) {
	prev := Rows{
		{Key: "1", Name: "Book"},
		{Key: "2", Name: "Lamp"},
		{Key: "3", Name: "Desk"},
	}
	next := Rows{
		{Key: "3", Name: "Desk"},
		{Key: "1", Name: "Book (used)"},
		{Key: "4", Name: "Chair"},
	}
	d := Reconcile(prev, next)
	want := Delta{
		Added:   []string{"4"},
		Removed: []string{"2"},
		Updated: []string{"1"},
		Kept:    []string{"3"},
	}
	if !reflect.DeepEqual(d, want) {
		t.Fatalf("Reconcile = %+v, want %+v", d, want)
	}
	if !d.Changed() {
		t.Fatalf("delta should report changes")
	}
}

func TestReconcileReorderIsNotAChange(t *testing.T) {
	prev := Rows{{Key: "1"}, {Key: "2"}}
	next := Rows{{Key: "2"}, {Key: "1"}}
	d := Reconcile(prev, next)
	if d.Changed() {
		t.Fatalf("pure reorder should not change rows: %+v", d)
	}
	if len(d.Kept) != 2 {
		t.Fatalf("kept = %v", d.Kept)
	}
}
