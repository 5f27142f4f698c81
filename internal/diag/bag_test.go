package diag

import (
	"testing"

	"loxvm/internal/source"
)

func TestBagRespectsCapacity(t *testing.T) {
	b := NewBag(2)
	sp := source.Span{}
	if !b.Add(NewError(CompUnexpectedToken, sp, "a")) {
		t.Fatal("expected first Add to succeed")
	}
	if !b.Add(NewError(CompUnexpectedToken, sp, "b")) {
		t.Fatal("expected second Add to succeed")
	}
	if b.Add(NewError(CompUnexpectedToken, sp, "c")) {
		t.Fatal("expected third Add to be dropped at capacity")
	}
	if b.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", b.Len())
	}
	if !b.HasErrors() {
		t.Fatal("HasErrors() = false, want true")
	}
}

func TestBagSortOrdersByOffsetThenSeverity(t *testing.T) {
	b := NewBag(10)
	b.Add(New(SevWarning, UnknownCode, source.Span{Start: 5}, "later"))
	b.Add(New(SevError, UnknownCode, source.Span{Start: 5}, "later-error"))
	b.Add(New(SevError, UnknownCode, source.Span{Start: 1}, "earlier"))
	b.Sort()
	items := b.Items()
	if items[0].Message != "earlier" {
		t.Fatalf("items[0] = %q, want earlier", items[0].Message)
	}
	if items[1].Message != "later-error" {
		t.Fatalf("items[1] = %q, want later-error (error before warning at same offset)", items[1].Message)
	}
}
