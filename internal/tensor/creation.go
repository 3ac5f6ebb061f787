package tensor

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/adcheck/internal/autodiff"
)

// Float returns x as a real scalar.
func Float(x float64) autodiff.Scalar {
	return autodiff.Real(x)
}

// Vec creates a real vector.
//
// Example:
//
//	v := tensor.Vec(-1, 0, 1)
func Vec(xs ...float64) Vector {
	return Vector(autodiff.Reals(xs))
}

// FromRows creates a real matrix from row slices. All rows must have the same length.
//
// Example:
//
//	m, _ := tensor.FromRows([][]float64{{1, 2}, {3, 4}})
//	m.At(1, 0) // 3
func FromRows(rows [][]float64) (Matrix, error) {
	r := len(rows)
	c := 0
	if r > 0 {
		c = len(rows[0])
	}
	flat := make([]float64, 0, r*c)
	for i, row := range rows {
		if len(row) != c {
			return Matrix{}, fmt.Errorf("row %d has %d columns, want %d", i, len(row), c)
		}
		flat = append(flat, row...)
	}
	if r == 0 || c == 0 {
		return Matrix{rows: r, cols: c}, nil
	}
	return FromDense(mat.NewDense(r, c, flat)), nil
}

// MustFromRows is like FromRows but panics on ragged input.
func MustFromRows(rows [][]float64) Matrix {
	m, err := FromRows(rows)
	if err != nil {
		panic(err)
	}
	return m
}

// FromDense creates a real matrix holding a copy of m.
func FromDense(m mat.Matrix) Matrix {
	r, c := m.Dims()
	data := make([]autodiff.Scalar, r*c)
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			data[j*r+i] = autodiff.Real(m.At(i, j))
		}
	}
	return Matrix{rows: r, cols: c, data: data}
}

// Dense returns the primal values of m as a gonum matrix.
func (m Matrix) Dense() *mat.Dense {
	if m.rows == 0 || m.cols == 0 {
		return &mat.Dense{}
	}
	d := mat.NewDense(m.rows, m.cols, nil)
	for j := 0; j < m.cols; j++ {
		for i := 0; i < m.rows; i++ {
			d.Set(i, j, m.data[j*m.rows+i].Value())
		}
	}
	return d
}

// VecDense returns the primal values of v as a gonum vector.
func (v Vector) VecDense() *mat.VecDense {
	if len(v) == 0 {
		return &mat.VecDense{}
	}
	return mat.NewVecDense(len(v), autodiff.Values(v))
}

// FromVecDense creates a real vector holding a copy of v.
func FromVecDense(v mat.Vector) Vector {
	out := make(Vector, v.Len())
	for i := range out {
		out[i] = autodiff.Real(v.AtVec(i))
	}
	return out
}
