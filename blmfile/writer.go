package blmfile

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
)

// Save writes a complex128 coefficient array to path in .npy v1.0
// format, appending DefaultExt when the path has no extension.
// npyio's writer only covers 1-D slices and float matrices, so the
// rank-2 complex layout used for explicit triplets is written here.
func Save(path string, a *Array) error {
	if len(a.Shape) < 1 || len(a.Shape) > 2 {
		return fmt.Errorf("blmfile: %w (rank %d)", ErrBadRank, len(a.Shape))
	}
	want := 1
	for _, d := range a.Shape {
		want *= d
	}
	if want != len(a.Data) {
		return fmt.Errorf("blmfile: shape %v does not match %d elements", a.Shape, len(a.Data))
	}

	resolved := ResolvePath(path)
	f, err := os.Create(resolved)
	if err != nil {
		return fmt.Errorf("blmfile: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := writeHeader(w, a.Shape); err != nil {
		return fmt.Errorf("blmfile: %q: %w", resolved, err)
	}
	if err := binary.Write(w, binary.LittleEndian, a.Data); err != nil {
		return fmt.Errorf("blmfile: %q: %w", resolved, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("blmfile: %q: %w", resolved, err)
	}
	return nil
}

// writeHeader emits the .npy v1.0 preamble for a little-endian
// complex128 array of the given shape. The header dictionary is
// padded so that the payload starts on a 64-byte boundary, as the
// format specifies.
func writeHeader(w *bufio.Writer, shape []int) error {
	var shapeStr string
	if len(shape) == 1 {
		shapeStr = fmt.Sprintf("(%d,)", shape[0])
	} else {
		shapeStr = fmt.Sprintf("(%d, %d)", shape[0], shape[1])
	}
	dict := fmt.Sprintf("{'descr': '<c16', 'fortran_order': False, 'shape': %s, }", shapeStr)

	// magic + version + header-length field take 10 bytes.
	pad := 64 - (10+len(dict)+1)%64
	if pad == 64 {
		pad = 0
	}
	for i := 0; i < pad; i++ {
		dict += " "
	}
	dict += "\n"

	if _, err := w.WriteString("\x93NUMPY"); err != nil {
		return err
	}
	if _, err := w.Write([]byte{1, 0}); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(len(dict))); err != nil {
		return err
	}
	_, err := w.WriteString(dict)
	return err
}
