package value

import "strconv"

// Displayer is implemented by object kinds that need custom text for
// String/print (functions, classes, instances, ...). Objects that don't
// implement it fall back to their ObjKind name.
type Displayer interface {
	Display() string
}

// String renders v the way `print` and the `str` native do: nil, true
// and false as their keywords, numbers as the shortest round-tripping
// decimal, strings raw, everything else via its Displayer.
func (v Value) String() string {
	switch v.Kind {
	case KindNil:
		return "nil"
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'g', -1, 64)
	case KindObject:
		if v.Obj == nil {
			return "nil"
		}
		if d, ok := v.Obj.(Displayer); ok {
			return d.Display()
		}
		return "<" + v.Obj.ObjKind().String() + ">"
	default:
		return "nil"
	}
}
