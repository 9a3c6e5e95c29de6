package ratio

// Matrix is a dense rows x cols matrix of exact Rationals, stored
// row-major. It is the substrate for repetition-vector extraction: rows
// are topology-matrix equations (one per channel), columns are actors.
type Matrix struct {
	rows, cols int
	a          []Rational
}

// NewMatrix returns a zero Matrix of the given shape.
func NewMatrix(rows, cols int) Matrix {
	return Matrix{rows: rows, cols: cols, a: make([]Rational, rows*cols)}
}

// MatrixFromInts builds a Matrix from an integer topology matrix, one
// Rational per entry.
func MatrixFromInts(rows, cols int, ints []int) Matrix {
	m := NewMatrix(rows, cols)
	for i, v := range ints {
		m.a[i] = FromInt(v)
	}
	return m
}

func (m Matrix) Rows() int { return m.rows }
func (m Matrix) Cols() int { return m.cols }

func (m Matrix) At(r, c int) Rational { return m.a[r*m.cols+c] }

func (m *Matrix) Set(r, c int, v Rational) { m.a[r*m.cols+c] = v }

func (m Matrix) swapRows(r1, r2 int) {
	for c := 0; c < m.cols; c++ {
		i1, i2 := r1*m.cols+c, r2*m.cols+c
		m.a[i1], m.a[i2] = m.a[i2], m.a[i1]
	}
}

// RREF reduces m to reduced row echelon form in place, using exact
// rational pivoting (no numerical tolerance is needed or used). The
// algorithm mirrors the textbook Gauss-Jordan elimination used by the
// reference implementation this package's callers were derived from:
// for each pivot column, find a nonzero row at or below the current row,
// swap it into place, scale the pivot row to make the pivot entry 1, and
// eliminate that column from every other row.
func (m *Matrix) RREF() {
	pivot := 0
	for r := 0; r < m.rows; r++ {
		if pivot >= m.cols {
			return
		}
		i := r
		for m.At(i, pivot).IsZero() {
			i++
			if i == m.rows {
				i = r
				pivot++
				if pivot == m.cols {
					return
				}
			}
		}
		if r != i {
			m.swapRows(r, i)
		}
		divisor := m.At(r, pivot)
		if !divisor.IsZero() {
			for c := 0; c < m.cols; c++ {
				m.Set(r, c, m.At(r, c).Div(divisor))
			}
		}
		for j := 0; j < m.rows; j++ {
			if j == r {
				continue
			}
			hold := m.At(j, pivot)
			if hold.IsZero() {
				continue
			}
			for c := 0; c < m.cols; c++ {
				m.Set(j, c, m.At(j, c).Sub(hold.Mul(m.At(r, c))))
			}
		}
		pivot++
	}
}

// IsIdentityBlock reports whether the top-left size x size block of m
// equals the identity matrix.
func (m Matrix) IsIdentityBlock(size int) bool {
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			want := Zero
			if r == c {
				want = One
			}
			if !m.At(r, c).Equal(want) {
				return false
			}
		}
	}
	return true
}

// IsZeroBlock reports whether rows [fromRow, rows) are entirely zero.
func (m Matrix) IsZeroBlock(fromRow int) bool {
	for r := fromRow; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			if !m.At(r, c).IsZero() {
				return false
			}
		}
	}
	return true
}
