package encoding

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// offsetReader performs the big-endian fixed width reads of the format while
// keeping track of how many bytes were consumed. Reads either fully succeed or
// fail with io.ErrUnexpectedEOF, the format has no point at which the input
// may end other than the terminating tag.
type offsetReader struct {
	*bufio.Reader
	off int64
	buf []byte
	num [8]byte
}

func (r *offsetReader) Off() int64 {
	return r.off
}

// read returns the next n bytes. The returned slice is reused by the next
// call to read.
func (r *offsetReader) read(n int) ([]byte, error) {
	if cap(r.buf) < n {
		r.buf = make([]byte, n)
	}
	b := r.buf[:n]
	if err := r.full(b); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *offsetReader) full(b []byte) error {
	n, err := io.ReadFull(r.Reader, b)
	r.off += int64(n)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

func (r *offsetReader) skip(n int) error {
	d, err := r.Discard(n)
	r.off += int64(d)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

func (r *offsetReader) magic() ([4]byte, error) {
	var m [4]byte
	err := r.full(m[:])
	return m, err
}

// expect reads 4 bytes that must match m.
func (r *offsetReader) expect(m [4]byte) error {
	got, err := r.magic()
	if err != nil {
		return err
	}
	if got != m {
		return fmt.Errorf(`%w: expected %q; got %q`, ErrMagic, m[:], got[:])
	}
	return nil
}

func (r *offsetReader) u16() (uint16, error) {
	if err := r.full(r.num[:2]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(r.num[:2]), nil
}

func (r *offsetReader) u32() (uint32, error) {
	if err := r.full(r.num[:4]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(r.num[:4]), nil
}

func (r *offsetReader) u64() (uint64, error) {
	if err := r.full(r.num[:8]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(r.num[:8]), nil
}
