package bytecode

import (
	"bytes"
	"strings"
	"testing"

	"loxvm/internal/value"
)

func TestWriteAndLineAt(t *testing.T) {
	var c Chunk
	c.WriteOp(OpNil, 1)
	c.WriteOp(OpReturn, 2)

	if c.LineAt(0) != 1 || c.LineAt(1) != 2 {
		t.Fatalf("got lines %d, %d, want 1, 2", c.LineAt(0), c.LineAt(1))
	}
	if c.LineAt(-1) != -1 || c.LineAt(2) != -1 {
		t.Fatal("LineAt should return -1 for out-of-range offsets")
	}
}

func TestAddConstantOverflow(t *testing.T) {
	var c Chunk
	for i := 0; i < MaxConstants; i++ {
		if idx := c.AddConstant(value.Number(float64(i))); idx != i {
			t.Fatalf("AddConstant returned %d, want %d", idx, i)
		}
	}
	if idx := c.AddConstant(value.Number(999)); idx != -1 {
		t.Fatalf("AddConstant past MaxConstants returned %d, want -1", idx)
	}
}

func TestDisassembleSimpleProgram(t *testing.T) {
	var c Chunk
	idx := c.AddConstant(value.Number(1))
	c.WriteOp(OpConstant, 1)
	c.Write(byte(idx), 1)
	c.WriteOp(OpReturn, 1)

	var buf bytes.Buffer
	Disassemble(&buf, &c, "test")

	out := buf.String()
	if !strings.Contains(out, "== test ==") {
		t.Errorf("missing header: %q", out)
	}
	if !strings.Contains(out, "OP_CONSTANT") {
		t.Errorf("missing constant mnemonic: %q", out)
	}
	if !strings.Contains(out, "OP_RETURN") {
		t.Errorf("missing return mnemonic: %q", out)
	}
}
