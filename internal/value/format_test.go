package value

import "testing"

type displayObj struct {
	Header
	text string
}

func (d *displayObj) Display() string { return d.text }

type plainObj struct {
	Header
}

func TestStringFormatsPrimitives(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Nil(), "nil"},
		{Bool(true), "true"},
		{Bool(false), "false"},
		{Number(7), "7"},
		{Number(3.14), "3.14"},
		{Number(-0.5), "-0.5"},
	}
	for _, tc := range cases {
		if got := tc.v.String(); got != tc.want {
			t.Errorf("String(%+v) = %q, want %q", tc.v, got, tc.want)
		}
	}
}

func TestStringUsesDisplayerWhenAvailable(t *testing.T) {
	o := &displayObj{text: "<fn greet>"}
	if got := Obj(o).String(); got != "<fn greet>" {
		t.Errorf("got %q, want %q", got, "<fn greet>")
	}
}

func TestStringFallsBackToObjKindWithoutDisplayer(t *testing.T) {
	o := &plainObj{Header: Header{Kind: ObjUpvalueKind}}
	if got := Obj(o).String(); got != "<upvalue>" {
		t.Errorf("got %q, want %q", got, "<upvalue>")
	}
}
