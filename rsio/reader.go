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

// FrameResult describes the outcome of decoding one frame, passed to a
// Reader's optional onFrame callback.
type FrameResult struct {
	Seq       uint32
	Corrected int // number of symbols DecodeErr corrected, 0 if clean
}

// Reader reads frames written by a Writer, RS-decodes and optionally
// decompresses/decrypts each block, and serves the recovered bytes through
// Read. Unlike std.Pipe's silent byte forwarding, a frame decode failure is
// surfaced to the caller as an error from Read rather than dropped.
type Reader struct {
	r       io.Reader
	codec   *rs.Codec
	cfg     Config
	key     []byte
	stats   *Stats
	erasPos []int // caller-known erasure positions, applied to every frame

	onFrame func(FrameResult)

	pending []byte // undelivered bytes from the most recently decoded frame
}

// NewReader builds a Reader over r using codec. onFrame, if non-nil, is
// invoked once per successfully or unsuccessfully decoded frame (before any
// error is returned from Read), so callers can log per-frame correction
// counts the way kcptun logs scavenger events.
//
// erasPos, if non-empty, lists caller-known erasure positions (within the
// shortened block, i.e. already excluding pad) that are hinted to
// DecodeErr on every frame read from r, the way rscodec's -erasures flag
// supplies a fixed erasure list for the whole stream.
func NewReader(r io.Reader, codec *rs.Codec, cfg Config, stats *Stats, onFrame func(FrameResult), erasPos []int) (*Reader, error) {
	if codec.N() > 255 {
		return nil, ErrSymbolOverflow
	}
	var key []byte
	if cfg.Key != "" {
		key = deriveKey(cfg.Key)
	}
	return &Reader{
		r:       r,
		codec:   codec,
		cfg:     cfg,
		key:     key,
		stats:   stats,
		erasPos: erasPos,
		onFrame: onFrame,
	}, nil
}

// Read implements io.Reader.
func (rd *Reader) Read(p []byte) (int, error) {
	for len(rd.pending) == 0 {
		if err := rd.readBlock(); err != nil {
			return 0, err
		}
	}
	n := copy(p, rd.pending)
	rd.pending = rd.pending[n:]
	return n, nil
}

func (rd *Reader) readBlock() error {
	hdr, err := readFrameHeader(rd.r)
	if err != nil {
		return err
	}

	payloadBytes, err := readExact(rd.r, int(hdr.length))
	if err != nil {
		return err
	}
	parityBytes, err := readExact(rd.r, rd.codec.NRoots())
	if err != nil {
		return err
	}

	data := make([]uint16, len(payloadBytes))
	for i, b := range payloadBytes {
		data[i] = uint16(b)
	}
	parity := make([]uint16, len(parityBytes))
	for i, b := range parityBytes {
		parity[i] = uint16(b)
	}

	var erasPos []int
	if len(rd.erasPos) > 0 {
		erasPos = make([]int, len(rd.erasPos))
		copy(erasPos, rd.erasPos)
	}
	count, decErr := rd.codec.DecodeErr(data, parity, erasPos, len(erasPos), nil, 0)
	if rd.onFrame != nil {
		rd.onFrame(FrameResult{Seq: hdr.seq, Corrected: count})
	}
	if decErr != nil {
		if rd.stats != nil {
			rd.stats.incFramesUncorrectable()
		}
		return errors.Wrapf(decErr, "rsio: frame %d uncorrectable", hdr.seq)
	}
	if rd.stats != nil {
		rd.stats.incFramesDecoded()
		if count > 0 {
			rd.stats.addSymbolsCorrected(uint64(count))
		}
	}

	payload := make([]byte, len(data))
	for i, s := range data {
		payload[i] = byte(s)
	}

	if hdr.flags&flagEncrypted != 0 {
		if rd.key == nil {
			return errors.New("rsio: frame is encrypted but no key was configured")
		}
		opened, err := open(rd.key, payload)
		if err != nil {
			return err
		}
		payload = opened
	}
	if hdr.flags&flagCompressed != 0 {
		decoded, err := snappy.Decode(nil, payload)
		if err != nil {
			return errors.WithStack(err)
		}
		payload = decoded
	}

	rd.pending = payload
	return nil
}
