// Package json provides JSON encoding with pooled buffers, built on the
// repool pool package and goccy/go-json. It exists both as a convenience and
// as the library dogfooding its own pooling.
package json

import (
	"bytes"
	"io"

	gojson "github.com/goccy/go-json"

	"github.com/repool/repool/pkg/pool"
)

// encodeBuffers holds buffers reused across Marshal calls. The pool is
// bounded so a burst of large documents cannot pin memory forever; when it
// is exhausted, Marshal falls back to a one-off allocation.
var encodeBuffers = pool.NewSync(
	func() *bytes.Buffer {
		return bytes.NewBuffer(make([]byte, 0, 4096))
	},
	pool.WithMaxSize[*bytes.Buffer](64),
	pool.WithOnRelease(func(b *bytes.Buffer) { b.Reset() }),
)

// Marshal encodes v to JSON using a pooled buffer.
func Marshal(v interface{}) ([]byte, error) {
	buf, err := encodeBuffers.Acquire()
	if err != nil {
		// Pool exhausted; a plain encode is always possible.
		return gojson.Marshal(v)
	}
	defer encodeBuffers.Release(buf)

	enc := gojson.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	// Encoder.Encode appends a newline; drop it. The buffer is reused, so
	// the caller gets its own copy.
	out := buf.Bytes()
	if n := len(out); n > 0 && out[n-1] == '\n' {
		out = out[:n-1]
	}
	result := make([]byte, len(out))
	copy(result, out)
	return result, nil
}

// Unmarshal decodes JSON data into v.
func Unmarshal(data []byte, v interface{}) error {
	return gojson.Unmarshal(data, v)
}

// NewEncoder returns a JSON encoder writing to w with HTML escaping off.
func NewEncoder(w io.Writer) *gojson.Encoder {
	enc := gojson.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc
}

// NewDecoder returns a JSON decoder reading from r.
func NewDecoder(r io.Reader) *gojson.Decoder {
	return gojson.NewDecoder(r)
}

// BufferPoolStats reports activity of the shared encode buffer pool.
func BufferPoolStats() pool.Stats {
	return encodeBuffers.Stats()
}
