package serialization

import (
	"fmt"

	"github.com/born-ml/adcheck/internal/autodiff"
	"github.com/born-ml/adcheck/internal/tensor"
)

// Reader is a cursor over a flat buffer. Each Read consumes exactly as many
// scalars as its prototype holds and returns a value of the prototype's shape
// whose elements come from the buffer, and therefore carry the buffer's
// scalar type.
type Reader struct {
	buf []autodiff.Scalar
	pos int
}

// NewReader creates a Reader over buf. The buffer is not copied.
func NewReader(buf []autodiff.Scalar) *Reader {
	return &Reader{buf: buf}
}

// Remaining returns the number of unread scalars.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}

// Pos returns the number of scalars consumed so far.
func (r *Reader) Pos() int {
	return r.pos
}

// Read rebuilds a value shaped like proto from the next proto.Size() scalars.
// On failure nothing is consumed and the error matches ErrShapeMismatch.
func (r *Reader) Read(proto tensor.Value) (tensor.Value, error) {
	if need := proto.Size(); need > r.Remaining() {
		return nil, &ShapeError{
			Shape:     tensor.ShapeOf(proto).String(),
			Need:      need,
			Remaining: r.Remaining(),
		}
	}
	return r.read(proto), nil
}

// ReadAll reads one value per prototype, in order.
func (r *Reader) ReadAll(protos ...tensor.Value) ([]tensor.Value, error) {
	out := make([]tensor.Value, len(protos))
	for i, p := range protos {
		v, err := r.Read(p)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// read assumes the size check already passed.
func (r *Reader) read(proto tensor.Value) tensor.Value {
	switch p := proto.(type) {
	case autodiff.Scalar:
		return r.next(1)[0]
	case tensor.Int:
		return p
	case tensor.Vector:
		return tensor.Vector(r.next(len(p)))
	case tensor.Matrix:
		m, err := tensor.NewMatrix(p.Rows(), p.Cols(), r.next(p.Size()))
		if err != nil {
			panic(err) // dimensions come from a valid prototype
		}
		return m
	case tensor.Array:
		out := make(tensor.Array, len(p))
		for i, e := range p {
			out[i] = r.read(e)
		}
		return out
	}
	panic(fmt.Sprintf("serialization: unsupported value type %T", proto))
}

// next returns a copy of the next n scalars and advances the cursor.
func (r *Reader) next(n int) []autodiff.Scalar {
	out := make([]autodiff.Scalar, n)
	copy(out, r.buf[r.pos:r.pos+n])
	r.pos += n
	return out
}

// Deserialize rebuilds one value per prototype from buf, which must be
// consumed exactly.
func Deserialize(buf []autodiff.Scalar, protos ...tensor.Value) ([]tensor.Value, error) {
	r := NewReader(buf)
	out, err := r.ReadAll(protos...)
	if err != nil {
		return nil, err
	}
	if r.Remaining() != 0 {
		return nil, fmt.Errorf("%w: %d left over", ErrTrailingScalars, r.Remaining())
	}
	return out, nil
}
