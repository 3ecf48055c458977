// Package blmfile reads and writes the .npy arrays that hold beam
// harmonic coefficients on disk. Files are rank 1 (a single co-polar
// row) or rank 2 with shape (3, N) (an explicit co / spin -2 /
// spin +2 triplet). Paths without an extension get ".npy" appended.
package blmfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sbinet/npyio"
)

// DefaultExt is appended to coefficient paths that carry no extension.
const DefaultExt = ".npy"

var (
	ErrBadRank          = errors.New("coefficient array rank must be 1 or 2")
	ErrEmptyArray       = errors.New("coefficient array is empty")
	ErrUnsupportedDType = errors.New("unsupported coefficient dtype")
)

// Array is a loaded coefficient array: the numpy shape plus the data
// flattened in row-major order. Real-valued files are widened to
// complex on load.
type Array struct {
	Shape []int
	Data  []complex128
}

// NumRows returns the leading dimension, treating rank-1 arrays as a
// single row.
func (a *Array) NumRows() int {
	if len(a.Shape) == 2 {
		return a.Shape[0]
	}
	return 1
}

// Row returns the i-th row of the array. The returned slice aliases
// a.Data; callers that want private storage must copy.
func (a *Array) Row(i int) []complex128 {
	if len(a.Shape) == 2 {
		n := a.Shape[1]
		return a.Data[i*n : (i+1)*n]
	}
	return a.Data
}

// ResolvePath appends DefaultExt when path has no extension.
func ResolvePath(path string) string {
	if filepath.Ext(path) == "" {
		return path + DefaultExt
	}
	return path
}

// Load reads a coefficient array from path, appending DefaultExt when
// the path has no extension. Complex64/128 and float32/64 files are
// accepted; everything else is ErrUnsupportedDType.
func Load(path string) (*Array, error) {
	resolved := ResolvePath(path)
	f, err := os.Open(resolved)
	if err != nil {
		return nil, fmt.Errorf("blmfile: %w", err)
	}
	defer f.Close()

	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("blmfile: %q: %w", resolved, err)
	}

	shape := r.Header.Descr.Shape
	if len(shape) < 1 || len(shape) > 2 {
		return nil, fmt.Errorf("blmfile: %q: %w (rank %d)", resolved, ErrBadRank, len(shape))
	}

	data, err := readData(r)
	if err != nil {
		return nil, fmt.Errorf("blmfile: %q: %w", resolved, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("blmfile: %q: %w", resolved, ErrEmptyArray)
	}

	return &Array{Shape: append([]int(nil), shape...), Data: data}, nil
}

// readData reads the payload in its native dtype and widens it to
// complex128.
func readData(r *npyio.Reader) ([]complex128, error) {
	dtype := r.Header.Descr.Type
	switch {
	case strings.HasSuffix(dtype, "c16"):
		var data []complex128
		if err := r.Read(&data); err != nil {
			return nil, err
		}
		return data, nil
	case strings.HasSuffix(dtype, "c8"):
		var data []complex64
		if err := r.Read(&data); err != nil {
			return nil, err
		}
		out := make([]complex128, len(data))
		for i, v := range data {
			out[i] = complex128(v)
		}
		return out, nil
	case strings.HasSuffix(dtype, "f8"):
		var data []float64
		if err := r.Read(&data); err != nil {
			return nil, err
		}
		out := make([]complex128, len(data))
		for i, v := range data {
			out[i] = complex(v, 0)
		}
		return out, nil
	case strings.HasSuffix(dtype, "f4"):
		var data []float32
		if err := r.Read(&data); err != nil {
			return nil, err
		}
		out := make([]complex128, len(data))
		for i, v := range data {
			out[i] = complex(float64(v), 0)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDType, dtype)
	}
}
