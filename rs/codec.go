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

// Package rs implements a generic Reed-Solomon error-correcting codec over
// GF(2^m): field-table construction, an LFSR encoder, and a Berlekamp-Massey /
// Chien-search / Forney decoder with erasure support. One block is one
// (possibly shortened) codeword; there is no state shared across blocks.
package rs

// Codec is an immutable Reed-Solomon codec instance for one set of
// (m, nroots, fcr, prim, poly) parameters. A Codec's field tables are built
// once and never mutated; Encode and Decode only touch caller-supplied
// buffers, so a single Codec value may be used concurrently from multiple
// goroutines against disjoint buffers.
type Codec struct {
	m      int // bits per symbol
	n      int // 2^m - 1, symbols per full block
	nroots int // number of parity symbols
	fcr    int // first consecutive root
	prim   int // primitive element stride
	poly   int // primitive polynomial over GF(2)

	t *tables
}

// New builds a Codec for the given field degree m, parity count nroots,
// first-consecutive-root fcr, primitive-element stride prim and primitive
// polynomial poly. It fails with ErrNonPrimitivePolynomial if poly does not
// generate the full multiplicative group of GF(2^m).
func New(m, nroots, fcr, prim, poly int) (*Codec, error) {
	n := (1 << uint(m)) - 1
	t, err := buildTables(m, n, nroots, fcr, prim, poly)
	if err != nil {
		return nil, err
	}
	return &Codec{
		m:      m,
		n:      n,
		nroots: nroots,
		fcr:    fcr,
		prim:   prim,
		poly:   poly,
		t:      t,
	}, nil
}

// M returns the symbol width in bits.
func (c *Codec) M() int { return c.m }

// N returns the number of symbols in a full (unshortened) block, 2^m - 1.
func (c *Codec) N() int { return c.n }

// NRoots returns the number of parity symbols appended per block.
func (c *Codec) NRoots() int { return c.nroots }

// FCR returns the first consecutive root index.
func (c *Codec) FCR() int { return c.fcr }

// Prim returns the primitive-element stride.
func (c *Codec) Prim() int { return c.prim }

// Poly returns the primitive polynomial used to build the field.
func (c *Codec) Poly() int { return c.poly }

// MaxPayload returns the largest data length (in symbols) this codec accepts
// in a single Encode/Decode call, n - nroots.
func (c *Codec) MaxPayload() int { return c.n - c.nroots }

// a0 is the sentinel index-form value representing log(0): always equal to n.
func (c *Codec) a0() uint16 { return uint16(c.n) }

// modn is the fast modular reducer described in §4.2: while x >= n it
// subtracts n and folds the high bits onto the low ones, (x>>m)+(x&n), which
// keeps x congruent mod n because 2^m = n+1. For non-negative x up to 3n it
// terminates in at most two iterations: the first pass leaves x <= n, and a
// second pass maps x == n to 0.
func (c *Codec) modn(x int) int {
	n, m := c.n, c.m
	for x >= n {
		x -= n
		x = (x >> uint(m)) + (x & n)
	}
	return x
}

// pad computes the shortened-block leading pad for a given data length, and
// validates it against the codec's block size.
func (c *Codec) pad(length int) (int, error) {
	pad := c.n - c.nroots - length
	if pad < 0 || pad >= c.n {
		return 0, ErrLengthOutOfRange
	}
	return pad, nil
}
