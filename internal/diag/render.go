package diag

import (
	"fmt"
	"io"

	"loxvm/internal/source"
)

// RenderCompileErrors writes diagnostics to w in the spec's compile-error
// format: "[line N] Error at '<token>': <message>." Diagnostics are assumed
// already sorted (Bag.Sort).
func RenderCompileErrors(w io.Writer, fs *source.FileSet, diags []Diagnostic) {
	for _, d := range diags {
		start, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "[line %d] %s\n", start.Line, d.Message)
	}
}
