package itemlist

import (
	"reflect"
	"testing"

	"mercari-cli/internal/i18n"
	"mercari-cli/internal/items"

	"github.com/mattn/go-runewidth"
)

func TestResolveServerImage(t *testing.T) {
	src := ImageSource{ServerURL: "http://x", PlaceholderURL: "http://front/logo192.png"}
	got := src.Resolve(items.Item{ID: 1, ImageName: "abc.png"})
	if got != "http://x/images/abc.png" {
		t.Fatalf("Resolve = %q, want %q", got, "http://x/images/abc.png")
	}
}

func TestResolvePlaceholderIgnoresOtherFields(t *testing.T) {
	src := NewImageSource("http://x/", "http://front/")
	want := "http://front/logo192.png"
	for _, it := range []items.Item{
		{},
		{ID: 5, Name: "Book", Category: "Media"},
		{ID: 9, Name: "images/abc.png", Category: "../"},
	} {
		if got := src.Resolve(it); got != want {
			t.Fatalf("Resolve(%+v) = %q, want placeholder %q", it, got, want)
		}
	}
}

func TestResolveDoesNotValidateReference(t *testing.T) {
	src := NewImageSource("http://x", "http://front")
	got := src.Resolve(items.Item{ImageName: "../../weird name"})
	if got != "http://x/images/../../weird name" {
		t.Fatalf("Resolve = %q", got)
	}
}

func TestBuildRowsPreservesOrderAndKeys(t *testing.T) {
	src := NewImageSource("http://x", "http://front")
	c := items.Collection{
		{ID: 3, Name: "I3", Category: "c3"},
		{ID: 1, Name: "I1", Category: "c1", ImageName: "one.jpg"},
		{ID: 2, Name: "I2", Category: "c2"},
	}
	rows := BuildRows(c, src)
	want := []string{"3", "1", "2"}
	for i, row := range rows {
		if row.Key != want[i] {
			t.Fatalf("row %d key = %q, want %q", i, row.Key, want[i])
		}
		if row.Name != c[i].Name || row.Category != c[i].Category {
			t.Fatalf("row %d = %+v, want fields of %+v", i, row, c[i])
		}
	}
	if rows[1].ImageURL != "http://x/images/one.jpg" {
		t.Fatalf("row 1 image = %q", rows[1].ImageURL)
	}
	if rows.IndexOf("2") != 2 || rows.IndexOf("99") != -1 {
		t.Fatalf("IndexOf mismatch")
	}
}

func TestBuildRowsIsIdempotent(t *testing.T) {
	src := NewImageSource("http://x", "http://front")
	c := items.Collection{{ID: 1, Name: "Book", Category: "Media"}, {ID: 2, Name: "Lamp", ImageName: "l.jpg"}}
	first := BuildRows(c, src)
	second := BuildRows(c, src)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("rows differ between renders:\n%+v\n%+v", first, second)
	}
	a, _, _ := renderRows(first, 0, i18n.LabelsFor(i18n.LanguageEnglish), 80)
	b, _, _ := renderRows(second, 0, i18n.LabelsFor(i18n.LanguageEnglish), 80)
	if a != b {
		t.Fatalf("rendered output differs between renders")
	}
}

func TestBuildRowsEmpty(t *testing.T) {
	rows := BuildRows(nil, ImageSource{})
	if rows == nil || len(rows) != 0 {
		t.Fatalf("rows = %#v, want empty", rows)
	}
}

func TestClipUsesDisplayWidth(t *testing.T) {
	if got := clip("Name: 本棚", 100); got != "Name: 本棚" {
		t.Fatalf("clip should not touch short text, got %q", got)
	}
	got := clip("Name: 本棚本棚本棚", 10)
	if w := runewidth.StringWidth(got); w > 10 {
		t.Fatalf("clip width = %d (%q), want <= 10", w, got)
	}
}
