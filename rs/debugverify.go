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

// VerifyLocator is the diagnostic mentioned as an Open Question in the
// specification's design notes: it runs the same syndrome and
// Berlekamp-Massey stages Decode would, then checks that every position in
// erasPos is actually a root of the resulting error+erasure locator
// polynomial. Unlike the erasure-only polynomial seedErasureLocatorElem
// builds (which has roots at erasPos by construction, regardless of whether
// those symbols are really corrupted), the post-BM locator is derived from
// the received word's own syndromes, so a position that was never touched
// will generally not be a root once genuine errors are folded in.
//
// It is not part of Decode's hot path; call it explicitly when diagnosing a
// decoder that is rejecting erasures it shouldn't, or to sanity-check a
// candidate erasure list before spending a real Decode call on it.
//
// erasPos entries are shortened-block positions, same convention as Decode.
func (c *Codec) VerifyLocator(data, parity []uint16, erasPos []int, noEras int) (bool, error) {
	pad, err := c.pad(len(data))
	if err != nil {
		return false, err
	}
	if noEras < 0 || noEras > c.nroots {
		return false, ErrLengthOutOfRange
	}
	for i := 0; i < noEras; i++ {
		if erasPos[i] < 0 || erasPos[i] >= c.n-pad {
			return false, ErrBadErasure
		}
	}

	syn, clean := c.syndromes(data, parity, 0)
	if clean {
		return noEras == 0, nil
	}

	_, lambdaIdx, degLambda := berlekampMassey(c, syn, erasPos, noEras, pad)
	alphaTo := c.t.alphaTo
	a0 := c.a0()

	roots := 0
	for k := 0; k < noEras; k++ {
		fullPos := erasPos[k] + pad
		// the Chien search finds full-block position p at alpha^(prim*(p+1))
		exp := c.modn(c.prim * (fullPos + 1))
		var acc uint16
		for i := degLambda; i >= 0; i-- {
			if lambdaIdx[i] != a0 {
				acc ^= alphaTo[c.modn(int(lambdaIdx[i])+i*exp)]
			}
		}
		if acc == 0 {
			roots++
		}
	}
	return roots == noEras, nil
}
