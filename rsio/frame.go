// The MIT License (MIT)
//
// # Copyright (c) 2016 xtaci
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package rsio generalises rs's per-block Encode/Decode into a stream: it
// chunks an io.Reader into payload-sized blocks, runs each through a shared
// *rs.Codec, and frames the result as seq(4B) || flags(1B) || length(2B) ||
// data || parity on an io.Writer. The layout mirrors the "small header in
// front of a shard" shape kcp-go's fec.go uses for its own FEC packets
// (fecHeaderSize, typeData/typeParity), adapted to one RS block per frame
// rather than a row/column erasure matrix.
package rsio

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

const (
	flagCompressed = 1 << 0
	flagEncrypted  = 1 << 1

	frameHeaderSize = 4 + 1 + 2 // seq + flags + length
)

var (
	// ErrSymbolOverflow is returned when the codec's field is too wide for
	// this package's one-byte-per-symbol wire encoding.
	ErrSymbolOverflow = errors.New("rsio: codec symbols do not fit in one byte (N must be <= 255)")
	// ErrPayloadTooLarge is returned when a sealed/compressed block no
	// longer fits the codec's payload budget.
	ErrPayloadTooLarge = errors.New("rsio: block payload exceeds codec capacity after framing")
	// ErrShortFrame is returned by readFrameHeader and readExact when the
	// stream ends mid-frame.
	ErrShortFrame = errors.New("rsio: truncated frame")
)

type frameHeader struct {
	seq    uint32
	flags  uint8
	length uint16
}

func writeFrameHeader(w io.Writer, h frameHeader) error {
	var buf [frameHeaderSize]byte
	binary.BigEndian.PutUint32(buf[0:4], h.seq)
	buf[4] = h.flags
	binary.BigEndian.PutUint16(buf[5:7], h.length)
	_, err := w.Write(buf[:])
	return errors.WithStack(err)
}

func readFrameHeader(r io.Reader) (frameHeader, error) {
	var buf [frameHeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if err == io.EOF {
			return frameHeader{}, io.EOF
		}
		return frameHeader{}, errors.WithStack(ErrShortFrame)
	}
	return frameHeader{
		seq:    binary.BigEndian.Uint32(buf[0:4]),
		flags:  buf[4],
		length: binary.BigEndian.Uint16(buf[5:7]),
	}, nil
}

// readExact reads exactly n bytes or returns ErrShortFrame.
func readExact(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, errors.WithStack(ErrShortFrame)
	}
	return buf, nil
}
