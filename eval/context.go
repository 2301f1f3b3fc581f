package eval

import (
	"github.com/motching/ginger-go/value"
	"github.com/motching/ginger-go/value/html"
)

// Lookup resolves a top-level variable name the scope stack could not
// satisfy itself.
type Lookup func(name string) value.Value

// Writer emits one HTML fragment as soon as it is produced. A host
// backed by real I/O (a socket, a file, an http.ResponseWriter) returns
// the underlying write error so a failing render can stop and report it,
// instead of silently dropping output.
type Writer func(fragment html.HTML) error

// Context bundles the two host callbacks an evaluation needs. Every call
// into Lookup or Write is a suspension point with respect to whatever
// effect the host wires in; this package represents that effect as a
// plain Go function call, the simplest carrier that still lets a host
// compose lookups and writes sequentially or lift a pure computation
// into them.
type Context struct {
	Lookup Lookup
	Write  Writer
}

// NewContext builds a Context from the two host callbacks directly, for
// a host that streams output immediately (file I/O, network, and so on).
func NewContext(lookup Lookup, write Writer) *Context {
	return &Context{Lookup: lookup, Write: write}
}

// HTMLBuffer accumulates the fragments a render writes, for a host that
// wants the whole rendered document rather than a stream of writes.
type HTMLBuffer struct {
	acc html.HTML
}

func (b *HTMLBuffer) write(fragment html.HTML) error {
	b.acc = b.acc.Append(fragment)
	return nil
}

// HTML returns everything written so far.
func (b *HTMLBuffer) HTML() html.HTML {
	return b.acc
}

// NewPureContext builds a Context from a pure lookup function, backed by
// a writer-accumulating effect: the returned *HTMLBuffer holds the
// rendered output once Eval returns.
func NewPureContext(lookup Lookup) (*Context, *HTMLBuffer) {
	buf := &HTMLBuffer{}
	return &Context{Lookup: lookup, Write: buf.write}, buf
}
