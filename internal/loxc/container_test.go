package loxc

import (
	"testing"

	"loxvm/internal/compiler"
	"loxvm/internal/diag"
	"loxvm/internal/gc"
	"loxvm/internal/source"
)

type noRoots struct{}

func (noRoots) MarkRoots(*gc.Collector) {}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	src := `
fun add(a, b) {
  return a + b;
}
print add(1, 2);
`
	fs := source.NewFileSet()
	id := fs.AddVirtual("<test>", []byte(src))

	c := gc.New()
	c.SetRoots(noRoots{})
	bag := diag.NewBag(64)
	fn, ok := compiler.Compile(fs.Get(id), c, diag.BagReporter{Bag: bag})
	if !ok {
		t.Fatalf("compile failed: %v", bag.Items())
	}

	data, err := Marshal(fn)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	decoded, err := Unmarshal(data, c)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.Arity != fn.Arity {
		t.Fatalf("arity = %d, want %d", decoded.Arity, fn.Arity)
	}
	if len(decoded.Chunk.Code) != len(fn.Chunk.Code) {
		t.Fatalf("code length = %d, want %d", len(decoded.Chunk.Code), len(fn.Chunk.Code))
	}
	for i := range fn.Chunk.Code {
		if decoded.Chunk.Code[i] != fn.Chunk.Code[i] {
			t.Fatalf("code[%d] = %d, want %d", i, decoded.Chunk.Code[i], fn.Chunk.Code[i])
		}
	}
	if len(decoded.Chunk.Constants) != len(fn.Chunk.Constants) {
		t.Fatalf("constants length = %d, want %d", len(decoded.Chunk.Constants), len(fn.Chunk.Constants))
	}
}

func TestUnmarshalReinternsStrings(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<test>", []byte(`print "shared";`))

	c := gc.New()
	c.SetRoots(noRoots{})
	bag := diag.NewBag(64)
	fn, ok := compiler.Compile(fs.Get(id), c, diag.BagReporter{Bag: bag})
	if !ok {
		t.Fatalf("compile failed: %v", bag.Items())
	}

	data, err := Marshal(fn)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	alreadyInterned := c.InternString("shared")
	decoded, err := Unmarshal(data, c)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	found := false
	for _, constVal := range decoded.Chunk.Constants {
		if s, ok := constVal.Obj.(interface{ Display() string }); ok && s.Display() == "shared" {
			found = true
			if constVal.Obj != alreadyInterned {
				t.Fatalf("decoded string constant is not the collector's canonical interned pointer")
			}
		}
	}
	if !found {
		t.Fatal("expected a \"shared\" string constant in the decoded chunk")
	}
}
