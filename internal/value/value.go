// Package value defines Value, the tagged union every Lox expression
// produces, and Object, the interface implemented by every heap-resident
// type the garbage collector tracks.
//
// Value uses a straightforward four-variant tagged struct rather than
// NaN-boxing; the spec permits either representation as long as Value
// semantics are observationally identical, and a tagged struct is the
// idiomatic Go choice (no unsafe pointer tricks, no 48-bit truncation
// assumptions).
package value

// Kind discriminates the active field of a Value.
type Kind uint8

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindObject
)

// Value is the dynamically typed value every Lox expression produces.
// Exactly one of Bool/Number/Obj is meaningful, selected by Kind.
type Value struct {
	Kind   Kind
	Bool   bool
	Number float64
	Obj    Object
}

func Nil() Value                { return Value{Kind: KindNil} }
func Bool(b bool) Value         { return Value{Kind: KindBool, Bool: b} }
func Number(n float64) Value    { return Value{Kind: KindNumber, Number: n} }
func Obj(o Object) Value        { return Value{Kind: KindObject, Obj: o} }

func (v Value) IsNil() bool    { return v.Kind == KindNil }
func (v Value) IsBool() bool   { return v.Kind == KindBool }
func (v Value) IsNumber() bool { return v.Kind == KindNumber }
func (v Value) IsObject() bool { return v.Kind == KindObject }

// IsObjKind reports whether v holds an object of exactly the given kind.
func (v Value) IsObjKind(k ObjKind) bool {
	return v.Kind == KindObject && v.Obj != nil && v.Obj.ObjKind() == k
}

// Falsy implements Lox's truthiness rule: nil and false are falsy, every
// other value (including 0 and "") is truthy.
func (v Value) Falsy() bool {
	switch v.Kind {
	case KindNil:
		return true
	case KindBool:
		return !v.Bool
	default:
		return false
	}
}

// Equal implements Lox's "==": numbers compare as doubles (so NaN != NaN),
// every other kind compares structurally; objects compare by the identity
// Go's == gives pointer-typed Objects, which is exactly right for interned
// strings.
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindNil:
		return true
	case KindBool:
		return a.Bool == b.Bool
	case KindNumber:
		return a.Number == b.Number
	case KindObject:
		return a.Obj == b.Obj
	default:
		return false
	}
}

// ObjKind discriminates the concrete heap object variant.
type ObjKind uint8

const (
	ObjStringKind ObjKind = iota
	ObjFunctionKind
	ObjClosureKind
	ObjUpvalueKind
	ObjNativeKind
	ObjClassKind
	ObjInstanceKind
	ObjBoundMethodKind
)

func (k ObjKind) String() string {
	switch k {
	case ObjStringKind:
		return "string"
	case ObjFunctionKind:
		return "function"
	case ObjClosureKind:
		return "closure"
	case ObjUpvalueKind:
		return "upvalue"
	case ObjNativeKind:
		return "native"
	case ObjClassKind:
		return "class"
	case ObjInstanceKind:
		return "instance"
	case ObjBoundMethodKind:
		return "bound method"
	default:
		return "unknown"
	}
}

// Object is implemented by every heap-resident type (internal/object). The
// Header embedded in each concrete type supplies the mark bit and the
// intrusive "next" link the GC's allocation list walks; Object only exposes
// the read side the GC and VM need across package boundaries.
type Object interface {
	ObjKind() ObjKind
	marked() bool
	setMarked(bool)
	next() Object
	setNext(Object)
}

// Header is embedded in every concrete object type.
type Header struct {
	Kind    ObjKind
	Mark    bool
	NextObj Object
}

func (h *Header) ObjKind() ObjKind   { return h.Kind }
func (h *Header) marked() bool       { return h.Mark }
func (h *Header) setMarked(m bool)   { h.Mark = m }
func (h *Header) next() Object       { return h.NextObj }
func (h *Header) setNext(o Object)   { h.NextObj = o }

// Marked and SetMarked and Next and SetNext are the GC's public window onto
// Header, kept separate from the unexported Object methods so that only
// internal/gc (which must walk the allocation list and clear mark bits) is
// expected to call them; ordinary VM/compiler code never touches them.
func Marked(o Object) bool      { return o.marked() }
func SetMarked(o Object, m bool) { o.setMarked(m) }
func Next(o Object) Object      { return o.next() }
func SetNext(o Object, n Object) { o.setNext(n) }
