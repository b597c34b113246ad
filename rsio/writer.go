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

package rsio

import (
	"io"

	"github.com/golang/snappy"
	"github.com/pkg/errors"
	"github.com/xtaci/rscodec/rs"
)

// Config selects the optional front-ends a Writer/Reader pair applies to
// each block before/after it passes through the RS codec.
type Config struct {
	// Compress snappy-compresses each block before encoding.
	Compress bool
	// Key, when non-empty, SM4-GCM-seals each block under a key derived
	// from this passphrase via pbkdf2. Encryption is applied after
	// compression, so ciphertext is never itself fed to the compressor.
	Key string
}

// Writer chunks bytes written to it into codec-sized blocks, encodes each
// with codec, and frames the result onto the underlying io.Writer.
type Writer struct {
	w     io.Writer
	codec *rs.Codec
	cfg   Config
	key   []byte
	stats *Stats

	chunkSize int
	seq       uint32
}

// NewWriter builds a Writer over w using codec for error correction. stats
// may be nil, in which case frame counts are not tracked. codec must have
// N() <= 255 so each symbol fits in one wire byte.
func NewWriter(w io.Writer, codec *rs.Codec, cfg Config, stats *Stats) (*Writer, error) {
	if codec.N() > 255 {
		return nil, ErrSymbolOverflow
	}

	overhead := 0
	if cfg.Key != "" {
		overhead += gcmNonceSize + gcmTagSize
	}
	chunkSize := codec.MaxPayload() - overhead
	if cfg.Compress {
		// Reserve headroom for snappy's worst-case expansion
		// (32 + n + n/6, per snappy.MaxEncodedLen) so a post-compression
		// block, even if it fails to shrink, still fits the codec.
		chunkSize = (chunkSize - 32) * 6 / 7
	}
	if chunkSize <= 0 {
		return nil, ErrPayloadTooLarge
	}

	var key []byte
	if cfg.Key != "" {
		key = deriveKey(cfg.Key)
	}

	return &Writer{
		w:         w,
		codec:     codec,
		cfg:       cfg,
		key:       key,
		stats:     stats,
		chunkSize: chunkSize,
	}, nil
}

// Write implements io.Writer: p is split into one or more frames, each
// independently RS-encoded and written to the underlying stream.
func (wr *Writer) Write(p []byte) (int, error) {
	total := len(p)
	for len(p) > 0 {
		n := wr.chunkSize
		if n > len(p) {
			n = len(p)
		}
		if err := wr.writeBlock(p[:n]); err != nil {
			return total - len(p), err
		}
		p = p[n:]
	}
	return total, nil
}

func (wr *Writer) writeBlock(block []byte) error {
	var flags uint8
	payload := block

	if wr.cfg.Compress {
		payload = snappy.Encode(nil, payload)
		flags |= flagCompressed
	}
	if wr.key != nil {
		sealed, err := seal(wr.key, payload)
		if err != nil {
			return err
		}
		payload = sealed
		flags |= flagEncrypted
	}
	if len(payload) > wr.codec.MaxPayload() {
		return ErrPayloadTooLarge
	}

	data := make([]uint16, len(payload))
	for i, b := range payload {
		data[i] = uint16(b)
	}
	parity := make([]uint16, wr.codec.NRoots())
	if err := wr.codec.Encode(data, parity, 0); err != nil {
		return errors.WithStack(err)
	}

	if err := writeFrameHeader(wr.w, frameHeader{seq: wr.seq, flags: flags, length: uint16(len(payload))}); err != nil {
		return err
	}
	if err := writeSymbols(wr.w, data); err != nil {
		return err
	}
	if err := writeSymbols(wr.w, parity); err != nil {
		return err
	}

	wr.seq++
	if wr.stats != nil {
		wr.stats.incFramesEncoded()
	}
	return nil
}

func writeSymbols(w io.Writer, symbols []uint16) error {
	buf := make([]byte, len(symbols))
	for i, s := range symbols {
		buf[i] = byte(s)
	}
	_, err := w.Write(buf)
	return errors.WithStack(err)
}
