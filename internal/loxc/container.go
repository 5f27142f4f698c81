// Package loxc implements the .loxc serialized bytecode container: a
// msgpack encoding of a compiled script's Function tree, written by `loxvm
// build`. No CLI command reads a .loxc file back; Unmarshal decodes one for
// library callers. This is a host-side convenience only; it
// has nothing to do with the live, GC-owned object graph a running VM
// builds from it.
package loxc

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"loxvm/internal/bytecode"
	"loxvm/internal/gc"
	"loxvm/internal/object"
	"loxvm/internal/value"
)

// Magic identifies the container format for a sanity check before decode.
const Magic = "loxc1"

// Container is the root of a serialized compilation: the top-level script
// function plus a format tag for forward-compatible error messages.
type Container struct {
	Magic string      `msgpack:"magic"`
	Root  *FunctionDTO `msgpack:"root"`
}

// FunctionDTO mirrors object.Function with its Chunk flattened to a
// serializable form and its Name stored as a plain string.
type FunctionDTO struct {
	Name         string    `msgpack:"name"`
	Arity        int       `msgpack:"arity"`
	UpvalueCount int       `msgpack:"upvalue_count"`
	Chunk        ChunkDTO  `msgpack:"chunk"`
}

// ChunkDTO mirrors bytecode.Chunk.
type ChunkDTO struct {
	Code      []byte       `msgpack:"code"`
	Lines     []int        `msgpack:"lines"`
	Constants []ConstantDTO `msgpack:"constants"`
}

// ConstantDTO is a tagged union wide enough to carry every constant kind
// the compiler ever emits into a pool: numbers, interned strings, and
// nested function constants (from OP_CLOSURE).
type ConstantDTO struct {
	Kind string       `msgpack:"kind"` // "nil" | "bool" | "number" | "string" | "function"
	Bool bool         `msgpack:"bool,omitempty"`
	Num  float64      `msgpack:"num,omitempty"`
	Str  string       `msgpack:"str,omitempty"`
	Func *FunctionDTO `msgpack:"func,omitempty"`
}

// Encode converts a compiled script Function into a Container ready for
// msgpack marshaling.
func Encode(fn *object.Function) *Container {
	return &Container{Magic: Magic, Root: encodeFunction(fn)}
}

func encodeFunction(fn *object.Function) *FunctionDTO {
	name := ""
	if fn.Name != nil {
		name = fn.Name.Chars
	}
	dto := &FunctionDTO{
		Name:         name,
		Arity:        fn.Arity,
		UpvalueCount: fn.UpvalueCount,
		Chunk: ChunkDTO{
			Code:  append([]byte{}, fn.Chunk.Code...),
			Lines: append([]int{}, fn.Chunk.Lines...),
		},
	}
	for _, c := range fn.Chunk.Constants {
		dto.Chunk.Constants = append(dto.Chunk.Constants, encodeConstant(c))
	}
	return dto
}

func encodeConstant(v value.Value) ConstantDTO {
	switch {
	case v.IsNil():
		return ConstantDTO{Kind: "nil"}
	case v.IsBool():
		return ConstantDTO{Kind: "bool", Bool: v.Bool}
	case v.IsNumber():
		return ConstantDTO{Kind: "number", Num: v.Number}
	case v.IsObjKind(value.ObjStringKind):
		return ConstantDTO{Kind: "string", Str: v.Obj.(*object.String).Chars}
	case v.IsObjKind(value.ObjFunctionKind):
		return ConstantDTO{Kind: "function", Func: encodeFunction(v.Obj.(*object.Function))}
	default:
		return ConstantDTO{Kind: "nil"}
	}
}

// Marshal encodes fn directly to msgpack bytes.
func Marshal(fn *object.Function) ([]byte, error) {
	return msgpack.Marshal(Encode(fn))
}

// Unmarshal decodes msgpack bytes back into a live *object.Function,
// allocating every nested Function and interned string through collector
// so the result is tracked by the same GC a VM built around collector
// would use.
func Unmarshal(data []byte, collector *gc.Collector) (*object.Function, error) {
	var c Container
	if err := msgpack.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	if c.Magic != Magic || c.Root == nil {
		return nil, fmt.Errorf("loxc: not a %s container (magic %q)", Magic, c.Magic)
	}
	return decodeFunction(c.Root, collector), nil
}

func decodeFunction(dto *FunctionDTO, collector *gc.Collector) *object.Function {
	fn := collector.NewFunction()
	fn.Arity = dto.Arity
	fn.UpvalueCount = dto.UpvalueCount
	if dto.Name != "" {
		fn.Name = collector.InternString(dto.Name)
	}
	fn.Chunk = bytecode.Chunk{
		Code:  append([]byte{}, dto.Chunk.Code...),
		Lines: append([]int{}, dto.Chunk.Lines...),
	}
	for _, c := range dto.Chunk.Constants {
		fn.Chunk.Constants = append(fn.Chunk.Constants, decodeConstant(c, collector))
	}
	return fn
}

func decodeConstant(c ConstantDTO, collector *gc.Collector) value.Value {
	switch c.Kind {
	case "bool":
		return value.Bool(c.Bool)
	case "number":
		return value.Number(c.Num)
	case "string":
		return value.Obj(collector.InternString(c.Str))
	case "function":
		return value.Obj(decodeFunction(c.Func, collector))
	default:
		return value.Nil()
	}
}
