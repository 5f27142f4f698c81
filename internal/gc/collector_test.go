package gc

import (
	"testing"

	"loxvm/internal/value"
)

type noRoots struct{}

func (noRoots) MarkRoots(*Collector) {}

func TestInternStringReturnsSamePointer(t *testing.T) {
	c := New()
	c.SetRoots(noRoots{})
	a := c.InternString("hello")
	b := c.InternString("hello")
	if a != b {
		t.Fatalf("InternString returned distinct pointers for equal strings")
	}
}

func TestCollectSweepsUnreachableStrings(t *testing.T) {
	c := New()
	c.SetRoots(noRoots{})
	c.InternString("kept")
	dead := c.InternString("dropped")
	_ = dead

	// Nothing is rooted, so a collection should sweep both.
	c.Collect()
	if len(c.strings) != 0 {
		t.Fatalf("expected intern table empty after sweep with no roots, got %d entries", len(c.strings))
	}
}

type stackRoots struct{ stack []value.Value }

func (r stackRoots) MarkRoots(c *Collector) {
	for _, v := range r.stack {
		c.MarkValue(v)
	}
}

func TestCollectKeepsRootedString(t *testing.T) {
	c := New()
	kept := c.InternString("kept")
	c.SetRoots(stackRoots{stack: []value.Value{value.Obj(kept)}})

	c.Collect()
	if _, ok := c.strings["kept"]; !ok {
		t.Fatal("expected rooted string to survive collection")
	}
}
