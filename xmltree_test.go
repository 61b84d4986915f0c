package arnak

import (
	"errors"
	"strings"
	"testing"
)

func TestParseDocument(t *testing.T) {
	doc, err := parseDocument([]byte(`<?xml version="1.0" encoding="utf-8"?>
<items total="1">
	<item id="13"><name value="Catan"/></item>
</items>`))
	if err != nil {
		t.Fatalf("parseDocument() error = %v", err)
	}

	root := doc.root()
	if root.tag() != "items" {
		t.Errorf("tag() = %q, want items", root.tag())
	}

	items := root.children("item")
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if v, ok := items[0].attr("id"); !ok || v != "13" {
		t.Errorf("attr(id) = %q, %v", v, ok)
	}
}

func TestParseDocument_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"truncated", `<items><item id="13">`},
		{"garbage", "not xml at all"},
		{"empty", ""},
		{"unknown entity", `<items><item>&unknown;</item></items>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseDocument([]byte(tt.body))
			if err == nil {
				t.Fatal("expected error")
			}

			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected ParseError, got %T: %v", err, err)
			}
		})
	}
}

func TestParseDocument_NonStandardEntities(t *testing.T) {
	doc, err := parseDocument([]byte(`<items><item><description>a&mdash;b&ndash;c&nbsp;d</description></item></items>`))
	if err != nil {
		t.Fatalf("parseDocument() error = %v", err)
	}

	got := doc.root().child("item").childText("description")
	want := "a\u2014b\u2013c\u00a0d"
	if got != want {
		t.Errorf("description = %q, want %q", got, want)
	}
}

func TestParseDocument_AttributeOrderIrrelevant(t *testing.T) {
	first, err := parseDocument([]byte(`<item id="13" rank="1"/>`))
	if err != nil {
		t.Fatalf("parseDocument() error = %v", err)
	}
	second, err := parseDocument([]byte(`<item rank="1" id="13"/>`))
	if err != nil {
		t.Fatalf("parseDocument() error = %v", err)
	}

	for _, name := range []string{"id", "rank"} {
		a, _ := first.root().attr(name)
		b, _ := second.root().attr(name)
		if a != b {
			t.Errorf("attr(%s) differs by attribute order: %q vs %q", name, a, b)
		}
	}
}

func TestSnippet(t *testing.T) {
	short := snippet([]byte("  <items/>  "))
	if short != "<items/>" {
		t.Errorf("snippet() = %q, want %q", short, "<items/>")
	}

	long := snippet([]byte(strings.Repeat("x", 500)))
	if len(long) != snippetLength {
		t.Errorf("len(snippet()) = %d, want %d", len(long), snippetLength)
	}
}
