// Package gc implements the precise mark-sweep collector that owns every
// heap object a running Lox program allocates. All object.* constructors
// live here rather than in package object: "allocated" and "reachable from
// the allocation list" must be the same event, or the collector cannot find
// what it is supposed to sweep.
package gc

import (
	"fmt"
	"io"

	"loxvm/internal/object"
	"loxvm/internal/value"
)

// heapGrowFactor is the multiple applied to live bytes after a collection
// to compute the next collection threshold.
const heapGrowFactor = 2

// initialThreshold mirrors clox's 1MB default before the first collection.
const initialThreshold = 1024 * 1024

// Roots is implemented by the owner of every GC root: the value stack,
// call frames, open upvalues, global variables, and (while a compile is in
// flight) the live chain of compiler frames. The VM implements it for its
// own state and the compiler's parser for its frame chain (pushed with
// PushRoots); keeping the interface here rather than a direct VM import is
// what lets gc avoid importing internal/vm.
type Roots interface {
	MarkRoots(c *Collector)
}

// Stats is a point-in-time snapshot exposed for the CLI's --gc-stats output
// and for tests.
type Stats struct {
	Collections    int
	BytesAllocated int64
	NextGC         int64
	LiveObjects    int
}

// Collector owns the intrusive allocation list, the string intern table,
// and the tri-color mark state used during a collection.
type Collector struct {
	rootSources []Roots

	objects value.Object
	strings map[string]*object.String

	gray []value.Object

	bytesAllocated int64
	nextGC         int64

	Stress bool
	Log    bool
	Out    io.Writer

	stats Stats
}

// New creates a Collector. SetRoots must be called before the first
// collection can find anything reachable (the VM typically does this
// immediately after constructing both itself and its Collector).
func New() *Collector {
	return &Collector{
		strings: make(map[string]*object.String),
		nextGC:  initialThreshold,
		Out:     io.Discard,
	}
}

// SetRoots installs r as the collector's permanent root source, replacing
// any previous permanent source but leaving temporarily pushed sources
// (see PushRoots) alone. Kept separate from New to break the
// VM<->Collector construction cycle: the VM needs a *Collector to build its
// natives table, and the Collector needs the VM to mark roots.
func (c *Collector) SetRoots(r Roots) {
	if len(c.rootSources) == 0 {
		c.rootSources = []Roots{r}
		return
	}
	c.rootSources[0] = r
}

// PushRoots adds an additional root source that is consulted until the
// matching PopRoots, alongside whatever SetRoots installed. The compiler
// uses this to keep the in-progress Function chain (and the constants
// interned while building it) reachable across any collection triggered
// mid-compile, per the spec's root list.
func (c *Collector) PushRoots(r Roots) { c.rootSources = append(c.rootSources, r) }

// PopRoots removes the most recently pushed temporary root source.
func (c *Collector) PopRoots() {
	if n := len(c.rootSources); n > 0 {
		c.rootSources = c.rootSources[:n-1]
	}
}

// SetInitialThreshold overrides the byte count that must be live before the
// first collection runs. Only meaningful before any allocation has grown
// nextGC past this value; used to apply a configured gc.heap-start-bytes.
func (c *Collector) SetInitialThreshold(bytes int64) {
	if bytes > 0 {
		c.nextGC = bytes
	}
}

// Stats returns a snapshot of the collector's bookkeeping counters.
func (c *Collector) Stats() Stats {
	c.stats.BytesAllocated = c.bytesAllocated
	c.stats.NextGC = c.nextGC
	c.stats.LiveObjects = c.countObjects()
	return c.stats
}

func (c *Collector) countObjects() int {
	n := 0
	for o := c.objects; o != nil; o = value.Next(o) {
		n++
	}
	return n
}

// track links a freshly allocated object into the allocation list and
// charges its approximate size against the allocation budget, collecting
// first if the budget (or Stress mode) demands it.
func (c *Collector) track(o value.Object, size int64) {
	if c.Stress || c.bytesAllocated+size > c.nextGC {
		c.Collect()
	}
	value.SetNext(o, c.objects)
	c.objects = o
	c.bytesAllocated += size
}

func sizeOf(o value.Object) int64 {
	switch o.(type) {
	case *object.String:
		return 32
	case *object.Function:
		return 96
	case *object.Closure:
		return 48
	case *object.Upvalue:
		return 40
	case *object.Native:
		return 32
	case *object.Class:
		return 48
	case *object.Instance:
		return 48
	case *object.BoundMethod:
		return 40
	default:
		return 16
	}
}

func (c *Collector) log(format string, args ...any) {
	if c.Log {
		fmt.Fprintf(c.Out, format, args...)
	}
}
