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

import "sync"

// tables holds the immutable, read-only-after-construction lookup tables for
// one (m, nroots, fcr, prim, poly) parameter tuple. A0 (log of zero) is always
// equal to n, so it is not stored separately on the struct.
type tables struct {
	alphaTo []uint16 // antilog: index form -> element form, size n+1
	indexOf []uint16 // log: element form -> index form, size n+1
	genPoly []uint16 // generator polynomial, index form, size nroots+1
	iprim   int       // inverse of prim modulo n
}

// tableKey identifies a unique set of field tables. Two codecs built with the
// same tuple share one *tables value.
type tableKey struct {
	m      int
	nroots int
	fcr    int
	prim   int
	poly   int
}

var (
	tableCacheMu sync.RWMutex
	tableCache   = make(map[tableKey]*tables)
)

// buildTables builds (or reuses, via the package-level cache) the field
// tables for the given parameter tuple. The cache uses a read-lock probe
// followed by a write-lock build-if-absent, so concurrent first-use by
// multiple goroutines constructing the same preset never races and never
// double-builds.
func buildTables(m, n, nroots, fcr, prim, poly int) (*tables, error) {
	key := tableKey{m: m, nroots: nroots, fcr: fcr, prim: prim, poly: poly}

	tableCacheMu.RLock()
	if t, ok := tableCache[key]; ok {
		tableCacheMu.RUnlock()
		return t, nil
	}
	tableCacheMu.RUnlock()

	tableCacheMu.Lock()
	defer tableCacheMu.Unlock()
	// re-check: another goroutine may have built it while we waited for the lock
	if t, ok := tableCache[key]; ok {
		return t, nil
	}

	t, err := newTables(m, n, nroots, fcr, prim, poly)
	if err != nil {
		return nil, err
	}
	tableCache[key] = t
	return t, nil
}

// step advances the LFSR by one position of alpha, per the field-generator
// contract: step(0) = 1; for nonzero sr, shift left and reduce modulo poly
// whenever bit m would be set.
func step(sr, m, n, poly int) int {
	if sr == 0 {
		return 1
	}
	sr <<= 1
	if sr&(1<<uint(m)) != 0 {
		sr ^= poly
	}
	return sr & n
}

// newTables constructs fresh field tables from scratch; it never touches the
// cache. Construction is transactional: on failure nothing is returned to the
// caller and the half-built tables are discarded with the function.
func newTables(m, n, nroots, fcr, prim, poly int) (*tables, error) {
	a0 := uint16(n)
	alphaTo := make([]uint16, n+1)
	indexOf := make([]uint16, n+1)

	indexOf[0] = a0
	alphaTo[a0] = 0

	sr := step(0, m, n, poly)
	for i := 0; i < n; i++ {
		if i > 0 && sr == 1 {
			// alpha's order is i < n: the cycle closed before visiting every
			// nonzero element.
			return nil, ErrNonPrimitivePolynomial
		}
		indexOf[sr] = uint16(i)
		alphaTo[i] = uint16(sr)
		sr = step(sr, m, n, poly)
	}
	if sr != int(alphaTo[0]) {
		return nil, ErrNonPrimitivePolynomial
	}

	iprim := 1
	for iprim%prim != 0 {
		iprim += n
	}
	iprim /= prim

	genPoly := make([]uint16, nroots+1)
	genPoly[0] = 1
	for i := 0; i < nroots; i++ {
		genPoly[i+1] = 1
		root := fcr*prim + i*prim
		for j := i; j >= 1; j-- {
			if genPoly[j] != 0 {
				genPoly[j] = genPoly[j-1] ^ alphaTo[modnGeneric(int(indexOf[genPoly[j]])+root, n, m)]
			} else {
				genPoly[j] = genPoly[j-1]
			}
		}
		genPoly[0] = alphaTo[modnGeneric(int(indexOf[genPoly[0]])+root, n, m)]
	}
	// convert to index form
	for i := 0; i <= nroots; i++ {
		genPoly[i] = indexOf[genPoly[i]]
	}

	return &tables{
		alphaTo: alphaTo,
		indexOf: indexOf,
		genPoly: genPoly,
		iprim:   iprim,
	}, nil
}

// modnGeneric is the non-inlined modular reducer used while tables are still
// being constructed (before a Codec with its own modn method exists). See
// (*Codec).modn for the hot-path version and its termination argument.
func modnGeneric(x, n, m int) int {
	for x >= n {
		x -= n
		x = (x >> uint(m)) + (x & n)
	}
	return x
}
