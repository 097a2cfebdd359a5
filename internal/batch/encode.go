package batch

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// encode writes a batch in wire form. The writer side lives with the
// constraint solver; this copy backs round-trip tests.
func encode(w io.Writer, b *batchWire) error {
	b.Schema = SchemaVersion
	return msgpack.NewEncoder(w).Encode(b)
}
