package value

import "testing"

type fakeObj struct {
	Header
}

func TestFalsy(t *testing.T) {
	cases := []struct {
		v    Value
		want bool
	}{
		{Nil(), true},
		{Bool(false), true},
		{Bool(true), false},
		{Number(0), false},
		{Number(1), false},
	}
	for _, tc := range cases {
		if got := tc.v.Falsy(); got != tc.want {
			t.Errorf("Falsy(%+v) = %v, want %v", tc.v, got, tc.want)
		}
	}
}

func TestEqual(t *testing.T) {
	a := &fakeObj{}
	b := &fakeObj{}

	cases := []struct {
		a, b Value
		want bool
	}{
		{Nil(), Nil(), true},
		{Nil(), Bool(false), false},
		{Bool(true), Bool(true), true},
		{Bool(true), Bool(false), false},
		{Number(1), Number(1), true},
		{Number(1), Number(2), false},
		{Obj(a), Obj(a), true},
		{Obj(a), Obj(b), false},
	}
	for _, tc := range cases {
		if got := Equal(tc.a, tc.b); got != tc.want {
			t.Errorf("Equal(%+v, %+v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestMarkedAndNextRoundTrip(t *testing.T) {
	o := &fakeObj{}
	if Marked(o) {
		t.Fatal("new object should start unmarked")
	}
	SetMarked(o, true)
	if !Marked(o) {
		t.Fatal("SetMarked(true) did not take effect")
	}

	other := &fakeObj{}
	SetNext(o, other)
	if Next(o) != other {
		t.Fatal("SetNext/Next did not round-trip")
	}
}

func TestIsObjKind(t *testing.T) {
	o := &fakeObj{Header: Header{Kind: ObjStringKind}}
	v := Obj(o)
	if !v.IsObjKind(ObjStringKind) {
		t.Fatal("expected IsObjKind(ObjStringKind) to be true")
	}
	if v.IsObjKind(ObjClassKind) {
		t.Fatal("expected IsObjKind(ObjClassKind) to be false")
	}
	if Nil().IsObjKind(ObjStringKind) {
		t.Fatal("a nil Value should never report an object kind")
	}
}
