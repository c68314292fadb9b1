package dmx

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

// Frame dumps carry received universes over a byte stream such as USB
// serial. A record is
//
//	'D' 'M' 'X' 0x01 | seq u32 LE | len u16 LE | frame | checksum
//
// where checksum is the XOR of every byte after the magic.
const (
	dumpHeaderLen = 10
	// MaxDumpLen is the largest encoded record: a full universe with start code.
	MaxDumpLen = dumpHeaderLen + MaxChannels + 1 + 1
)

var dumpMagic = [4]byte{'D', 'M', 'X', 0x01}

// Frame dump errors.
var (
	ErrShortDump = errors.New("dmx: short frame dump")
	ErrBadDump   = errors.New("dmx: corrupt frame dump")
)

// AppendDump appends the record for frame with sequence number seq to dst.
func AppendDump(dst []byte, seq uint32, frame []byte) []byte {
	start := len(dst)
	dst = append(dst, dumpMagic[:]...)
	dst = binary.LittleEndian.AppendUint32(dst, seq)
	dst = binary.LittleEndian.AppendUint16(dst, uint16(len(frame)))
	dst = append(dst, frame...)
	return append(dst, xorSum(dst[start+len(dumpMagic):]))
}

// DecodeDump decodes the record at the start of b. frame aliases b.
// n is the number of bytes the record occupies.
func DecodeDump(b []byte) (seq uint32, frame []byte, n int, err error) {
	if len(b) < dumpHeaderLen {
		return 0, nil, 0, ErrShortDump
	}
	if !bytes.Equal(b[:len(dumpMagic)], dumpMagic[:]) {
		return 0, nil, 0, ErrBadDump
	}
	seq = binary.LittleEndian.Uint32(b[4:])
	flen := int(binary.LittleEndian.Uint16(b[8:]))
	if flen == 0 || flen > MaxChannels+1 {
		return 0, nil, 0, ErrBadDump
	}
	n = dumpHeaderLen + flen + 1
	if len(b) < n {
		return 0, nil, 0, ErrShortDump
	}
	if xorSum(b[len(dumpMagic):n-1]) != b[n-1] {
		return 0, nil, 0, ErrBadDump
	}
	return seq, b[dumpHeaderLen : n-1], n, nil
}

func xorSum(b []byte) (sum byte) {
	for _, c := range b {
		sum ^= c
	}
	return sum
}

// DumpReader decodes frame dumps from a stream, skipping whatever does not
// form a valid record.
type DumpReader struct {
	r       io.Reader
	buf     []byte
	skipped int
	err     error
}

func NewDumpReader(r io.Reader) *DumpReader {
	return &DumpReader{r: r, buf: make([]byte, 0, 2*MaxDumpLen)}
}

// Next returns the next valid record. The frame is only valid until the
// following call. At the end of the stream it returns io.EOF, or
// io.ErrUnexpectedEOF if the stream ended inside a record.
func (d *DumpReader) Next() (seq uint32, frame []byte, err error) {
	for {
		partial := false
		if i := bytes.Index(d.buf, dumpMagic[:]); i < 0 {
			// Keep a tail that may be the beginning of the magic.
			keep := len(dumpMagic) - 1
			if len(d.buf) < keep {
				keep = len(d.buf)
			}
			d.discard(len(d.buf) - keep)
		} else {
			d.discard(i)
			seq, frame, n, err := DecodeDump(d.buf)
			switch err {
			case nil:
				d.buf = d.buf[n:]
				return seq, frame, nil
			case ErrBadDump:
				d.discard(1)
				continue
			}
			partial = true
		}
		if d.err != nil {
			if d.err == io.EOF && partial {
				return 0, nil, io.ErrUnexpectedEOF
			}
			return 0, nil, d.err
		}
		d.fill()
	}
}

// Skipped returns the number of bytes dropped while resynchronising.
func (d *DumpReader) Skipped() int { return d.skipped }

func (d *DumpReader) discard(n int) {
	d.skipped += n
	d.buf = d.buf[n:]
}

func (d *DumpReader) fill() {
	if cap(d.buf)-len(d.buf) < MaxDumpLen {
		d.buf = append(make([]byte, 0, len(d.buf)+2*MaxDumpLen), d.buf...)
	}
	n, err := d.r.Read(d.buf[len(d.buf):cap(d.buf)])
	d.buf = d.buf[:len(d.buf)+n]
	if err != nil {
		d.err = err
	}
}
