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

package rs

import (
	"math/rand"
	"testing"
)

func randomBlock(rng *rand.Rand, c *Codec, dataLen int) (data, parity []uint16) {
	data = make([]uint16, dataLen)
	for i := range data {
		data[i] = uint16(rng.Intn(c.n + 1))
	}
	parity = make([]uint16, c.nroots)
	if err := c.Encode(data, parity, 0); err != nil {
		panic(err)
	}
	return data, parity
}

func corruptSymbols(rng *rand.Rand, c *Codec, data, parity []uint16, count int) []int {
	total := len(data) + len(parity)
	picked := make(map[int]bool)
	positions := make([]int, 0, count)
	for len(positions) < count {
		pos := rng.Intn(total)
		if picked[pos] {
			continue
		}
		picked[pos] = true
		positions = append(positions, pos)

		bad := uint16(rng.Intn(c.n + 1))
		if pos < len(data) {
			for bad == data[pos] {
				bad = uint16(rng.Intn(c.n + 1))
			}
			data[pos] = bad
		} else {
			j := pos - len(data)
			for bad == parity[j] {
				bad = uint16(rng.Intn(c.n + 1))
			}
			parity[j] = bad
		}
	}
	return positions
}

func TestEncodeRejectsWrongParityLength(t *testing.T) {
	c, err := New(8, 32, 1, 1, 0x11d)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	data := make([]uint16, 100)
	parity := make([]uint16, 31) // one short
	if err := c.Encode(data, parity, 0); err != ErrLengthOutOfRange {
		t.Fatalf("expected ErrLengthOutOfRange, got %v", err)
	}
}

func TestDecodeRejectsWrongParityLength(t *testing.T) {
	c, err := New(8, 32, 1, 1, 0x11d)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	data := make([]uint16, 100)
	parity := make([]uint16, 31) // one short
	if _, err := c.Decode(data, parity, nil, 0, nil, 0); err != ErrLengthOutOfRange {
		t.Fatalf("expected ErrLengthOutOfRange, got %v", err)
	}
}

func TestEncodeRejectsOversizedData(t *testing.T) {
	c, err := New(8, 32, 1, 1, 0x11d)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	data := make([]uint16, c.MaxPayload()+1)
	parity := make([]uint16, c.nroots)
	if err := c.Encode(data, parity, 0); err != ErrLengthOutOfRange {
		t.Fatalf("expected ErrLengthOutOfRange, got %v", err)
	}
}

func TestRoundTripClean(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, p := range Presets {
		p := p
		t.Run(p.Name, func(t *testing.T) {
			for _, nroots := range []int{2, 4, 8, 16} {
				if nroots >= p.N {
					continue
				}
				c, err := p.New(nroots)
				if err != nil {
					t.Fatalf("New: %v", err)
				}
				data, parity := randomBlock(rng, c, c.MaxPayload())
				origData := append([]uint16(nil), data...)
				origParity := append([]uint16(nil), parity...)

				count, err := c.Decode(data, parity, nil, 0, nil, 0)
				if err != nil {
					t.Fatalf("Decode: %v", err)
				}
				if count != 0 {
					t.Fatalf("count = %d, want 0 for a clean codeword", count)
				}
				for i := range data {
					if data[i] != origData[i] {
						t.Fatalf("clean decode mutated data at %d", i)
					}
				}
				for i := range parity {
					if parity[i] != origParity[i] {
						t.Fatalf("clean decode mutated parity at %d", i)
					}
				}
			}
		})
	}
}

func TestCorrectsUpToHalfNRootsErrors(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	c, err := New(8, 32, 1, 1, 0x11d)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	maxErrs := c.nroots / 2

	for trial := 0; trial < 20; trial++ {
		data, parity := randomBlock(rng, c, c.MaxPayload())
		want := append([]uint16(nil), data...)
		corruptSymbols(rng, c, data, parity, maxErrs)

		count, err := c.DecodeErr(data, parity, nil, 0, nil, 0)
		if err != nil {
			t.Fatalf("trial %d: DecodeErr: %v", trial, err)
		}
		if count > maxErrs {
			t.Fatalf("trial %d: count = %d, want <= %d", trial, count, maxErrs)
		}
		for i := range data {
			if data[i] != want[i] {
				t.Fatalf("trial %d: data[%d] = %d, want %d after correcting %d errors",
					trial, i, data[i], want[i], maxErrs)
			}
		}
	}
}

func TestCorrectsErasuresUpToNRoots(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	c, err := New(8, 16, 1, 1, 0x11d)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for trial := 0; trial < 20; trial++ {
		data, parity := randomBlock(rng, c, c.MaxPayload())
		want := append([]uint16(nil), data...)
		positions := corruptSymbols(rng, c, data, parity, c.nroots)

		erasPos := append([]int(nil), positions...)
		count, err := c.DecodeErr(data, parity, erasPos, len(positions), nil, 0)
		if err != nil {
			t.Fatalf("trial %d: DecodeErr: %v", trial, err)
		}
		if count != len(positions) {
			t.Fatalf("trial %d: count = %d, want %d", trial, count, len(positions))
		}
		for i := range data {
			if data[i] != want[i] {
				t.Fatalf("trial %d: data[%d] = %d, want %d", trial, i, data[i], want[i])
			}
		}
	}
}

func TestCorrectsErasuresPlusErrorsWithinBudget(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	c, err := New(8, 16, 1, 1, 0x11d)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// budget: 2*errors + erasures <= nroots
	nEras, nErrs := 10, 3

	for trial := 0; trial < 20; trial++ {
		data, parity := randomBlock(rng, c, c.MaxPayload())
		want := append([]uint16(nil), data...)

		erasures := corruptSymbols(rng, c, data, parity, nEras)
		// corrupt additional, distinct positions as plain errors
		total := len(data) + len(parity)
		taken := make(map[int]bool)
		for _, p := range erasures {
			taken[p] = true
		}
		errCount := 0
		for errCount < nErrs {
			pos := rng.Intn(total)
			if taken[pos] {
				continue
			}
			taken[pos] = true
			errCount++
			if pos < len(data) {
				data[pos] ^= uint16(1 + rng.Intn(c.n))
			} else {
				parity[pos-len(data)] ^= uint16(1 + rng.Intn(c.n))
			}
		}

		erasPos := append([]int(nil), erasures...)
		count, err := c.DecodeErr(data, parity, erasPos, len(erasures), nil, 0)
		if err != nil {
			t.Fatalf("trial %d: DecodeErr: %v", trial, err)
		}
		if count < len(erasures) {
			t.Fatalf("trial %d: count = %d, want >= %d", trial, count, len(erasures))
		}
		for i := range data {
			if data[i] != want[i] {
				t.Fatalf("trial %d: data[%d] = %d, want %d", trial, i, data[i], want[i])
			}
		}
	}
}

func TestUncorrectableNeverCorruptsOrPanics(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	c, err := New(8, 8, 1, 1, 0x11d)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for trial := 0; trial < 50; trial++ {
		data, parity := randomBlock(rng, c, c.MaxPayload())
		// corrupt well beyond the correction budget; the decoder must either
		// report -1 without partial corruption, or (rarely) miscorrect to
		// some other valid-looking codeword without crashing or going out
		// of bounds. Either way it must never panic.
		corruptSymbols(rng, c, data, parity, c.nroots)
		received := append([]uint16(nil), data...)
		receivedParity := append([]uint16(nil), parity...)

		count, err := c.Decode(data, parity, nil, 0, nil, 0)
		if err != nil {
			t.Fatalf("trial %d: Decode returned error: %v", trial, err)
		}
		if count < -1 || count > c.nroots {
			t.Fatalf("trial %d: count = %d out of sane range", trial, count)
		}
		if count == -1 {
			for i := range data {
				if data[i] != received[i] {
					t.Fatalf("trial %d: data[%d] changed by a decode that returned -1", trial, i)
				}
			}
			for i := range parity {
				if parity[i] != receivedParity[i] {
					t.Fatalf("trial %d: parity[%d] changed by a decode that returned -1", trial, i)
				}
			}
		}
	}
}

func TestInvmaskRoundTrips(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	c, err := New(8, 16, 1, 1, 0x11d)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for _, mask := range []uint16{0x00, 0x01, 0xff, 0x5a} {
		data := make([]uint16, c.MaxPayload())
		for i := range data {
			data[i] = uint16(rng.Intn(256))
		}
		parity := make([]uint16, c.nroots)
		if err := c.Encode(data, parity, mask); err != nil {
			t.Fatalf("Encode: %v", err)
		}

		want := append([]uint16(nil), data...)
		corruptSymbols(rng, c, data, parity, c.nroots/2)

		count, err := c.DecodeErr(data, parity, nil, 0, nil, mask)
		if err != nil {
			t.Fatalf("mask %#x: DecodeErr: %v", mask, err)
		}
		_ = count
		for i := range data {
			if data[i] != want[i] {
				t.Fatalf("mask %#x: data[%d] = %d, want %d", mask, i, data[i], want[i])
			}
		}

		// decoding with the wrong mask must not silently succeed on a
		// codeword that actually had errors.
		if mask != 0 {
			data2 := append([]uint16(nil), want...)
			parity2 := make([]uint16, c.nroots)
			if err := c.Encode(data2, parity2, mask); err != nil {
				t.Fatalf("Encode: %v", err)
			}
			corruptSymbols(rng, c, data2, parity2, c.nroots/2)
			if _, err := c.DecodeErr(data2, parity2, nil, 0, nil, 0); err == nil {
				t.Fatalf("mask %#x: decode with wrong mask unexpectedly succeeded", mask)
			}
		}
	}
}

func TestShortenedBlockRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	c, err := New(8, 32, 1, 1, 0x11d)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for _, dataLen := range []int{1, 10, 50, c.MaxPayload()} {
		data, parity := randomBlock(rng, c, dataLen)
		want := append([]uint16(nil), data...)
		corruptSymbols(rng, c, data, parity, c.nroots/2)

		count, err := c.DecodeErr(data, parity, nil, 0, nil, 0)
		if err != nil {
			t.Fatalf("dataLen %d: DecodeErr: %v", dataLen, err)
		}
		_ = count
		for i := range data {
			if data[i] != want[i] {
				t.Fatalf("dataLen %d: data[%d] = %d, want %d", dataLen, i, data[i], want[i])
			}
		}
	}
}
