package items

import (
	"encoding/json"
	"testing"
)

func TestEnvelopeDecodePreservesOrder(t *testing.T) {
	body := `{"items":[{"id":3,"name":"c","category":"x","image_name":"c.jpg"},{"id":1,"name":"a","category":"y","image_name":""},{"id":2,"name":"b","category":"z"}]}`
	var env Envelope
	if err := json.Unmarshal([]byte(body), &env); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	got := make([]string, 0, len(env.Items))
	for _, it := range env.Items {
		got = append(got, it.Key())
	}
	want := []string{"3", "1", "2"}
	if len(got) != len(want) {
		t.Fatalf("keys = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("keys = %v, want %v", got, want)
		}
	}
	if !env.Items[0].HasImage() || env.Items[1].HasImage() || env.Items[2].HasImage() {
		t.Fatalf("unexpected image presence: %+v", env.Items)
	}
}

func TestEnvelopeDecodeNullItems(t *testing.T) {
	var env Envelope
	if err := json.Unmarshal([]byte(`{"items":null}`), &env); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if env.Items == nil || len(env.Items) != 0 {
		t.Fatalf("items = %#v, want empty non-nil collection", env.Items)
	}
}

func TestCollectionCloneIsIndependent(t *testing.T) {
	orig := Collection{{ID: 1, Name: "Book"}}
	cp := orig.Clone()
	cp[0].Name = "changed"
	if orig[0].Name != "Book" {
		t.Fatalf("clone shares backing array")
	}
	var empty Collection
	if got := empty.Clone(); got == nil {
		t.Fatalf("Clone of nil should be empty, not nil")
	}
}
