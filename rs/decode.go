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

// Decode corrects data and parity in place using the received symbols plus,
// optionally, caller-known erasure positions.
//
// Return value semantics:
//   - count == 0: codeword was clean, buffers are untouched.
//   - count  > 0: count symbols were corrected. If erasPos was supplied, its
//     first count entries (as many as len(erasPos) holds, if fewer) are
//     overwritten with the shortened-block positions of the corrections, in
//     Chien-search order; if corr was supplied, its first count entries hold
//     the XOR patterns applied, aligned with erasPos.
//   - count == -1: uncorrectable, including a locator with a root in the
//     pad; no partial corrections were applied.
//
// erasPos and corr may both be nil. If erasPos is supplied with a positive
// no_eras, its first no_eras entries on entry are the known erasure
// positions (within the shortened block, i.e. already excluding pad).
func (c *Codec) Decode(data, parity []uint16, erasPos []int, noEras int, corr []uint16, invmask uint16) (int, error) {
	pad, err := c.pad(len(data))
	if err != nil {
		return 0, err
	}
	if len(parity) != c.nroots {
		return 0, ErrLengthOutOfRange
	}
	if noEras < 0 || noEras > c.nroots {
		return 0, ErrLengthOutOfRange
	}
	for i := 0; i < noEras; i++ {
		if erasPos[i] < 0 || erasPos[i] >= c.n-pad {
			return 0, ErrBadErasure
		}
	}

	nroots := c.nroots
	n := c.n
	alphaTo := c.t.alphaTo
	indexOf := c.t.indexOf
	a0 := c.a0()

	syn, clean := c.syndromes(data, parity, invmask)
	if clean {
		return 0, nil
	}

	_, lambdaIdx, degLambda := berlekampMassey(c, syn, erasPos, noEras, pad)

	// Chien search.
	reg := make([]uint16, nroots+1)
	copy(reg, lambdaIdx)
	root := make([]int, nroots)
	loc := make([]int, nroots)
	count := 0
	k := c.t.iprim - 1
	for i := 1; i <= n; i++ {
		q := 1
		for j := degLambda; j > 0; j-- {
			if reg[j] != a0 {
				reg[j] = uint16(c.modn(int(reg[j]) + j))
				q ^= int(alphaTo[reg[j]])
			}
		}
		if q == 0 {
			root[count] = i
			loc[count] = k
			count++
			if count == degLambda {
				break
			}
		}
		k = c.modn(k + c.t.iprim)
	}

	if count != degLambda {
		return -1, nil
	}
	// A root in the pad locates an error in a symbol that is never sent and
	// is known to be zero, so the locator is a miscorrection.
	for i := 0; i < count; i++ {
		if loc[i] < pad {
			return -1, nil
		}
	}

	// Forney: Omega(x) = S(x)*Lambda(x) mod x^nroots, truncated to deg_lambda-1.
	degOmega := degLambda - 1
	omega := make([]uint16, nroots)
	for i := 0; i <= degOmega; i++ {
		var omegaElem uint16
		for j := 0; j <= i; j++ {
			if syn[i-j] != a0 && lambdaIdx[j] != a0 {
				omegaElem ^= alphaTo[c.modn(int(syn[i-j])+int(lambdaIdx[j]))]
			}
		}
		omega[i] = indexOf[omegaElem]
	}

	for j := count - 1; j >= 0; j-- {
		var num1 uint16
		for i := degOmega; i >= 0; i-- {
			if omega[i] != a0 {
				num1 ^= alphaTo[c.modn(int(omega[i])+i*root[j])]
			}
		}
		if num1 == 0 {
			continue
		}
		num2 := alphaTo[c.modn(root[j]*(c.fcr-1)+n)]

		var den uint16
		top := degLambda
		if nroots-1 < top {
			top = nroots - 1
		}
		top &^= 1 // largest even i <= top
		for i := top; i >= 0; i -= 2 {
			if lambdaIdx[i+1] != a0 {
				den ^= alphaTo[c.modn(int(lambdaIdx[i+1])+i*root[j])]
			}
		}

		cor := alphaTo[c.modn(int(indexOf[num1])+int(indexOf[num2])+n-int(indexOf[den]))]

		pos := loc[j]
		if pos >= pad {
			if pos < n-nroots {
				data[pos-pad] ^= cor
			} else if pos < n {
				parity[pos-(n-nroots)] ^= cor
			}
			if corr != nil {
				corr[j] = cor
			}
		}
	}

	if erasPos != nil {
		for i := 0; i < count && i < len(erasPos); i++ {
			erasPos[i] = loc[i] - pad
		}
	}

	return count, nil
}

// DecodeErr is a convenience wrapper around Decode for callers built around
// the if err != nil idiom: a decode result of -1 is surfaced as
// ErrUncorrectable instead of as an ordinary non-error return value.
func (c *Codec) DecodeErr(data, parity []uint16, erasPos []int, noEras int, corr []uint16, invmask uint16) (int, error) {
	count, err := c.Decode(data, parity, erasPos, noEras, corr, invmask)
	if err != nil {
		return count, err
	}
	if count < 0 {
		return count, ErrUncorrectable
	}
	return count, nil
}

// syndromes computes the nroots syndromes of the received word (data||parity)
// in index form. clean is true when every syndrome is zero, meaning the
// codeword requires no correction; in that case syn is nil.
func (c *Codec) syndromes(data, parity []uint16, invmask uint16) (syn []uint16, clean bool) {
	nroots := c.nroots
	alphaTo := c.t.alphaTo
	indexOf := c.t.indexOf

	synElem := make([]uint16, nroots)
	var synError uint16
	for i := 0; i < nroots; i++ {
		rootOffset := (c.fcr + i) * c.prim
		var s uint16
		started := false
		for _, sym := range data {
			cSym := sym ^ invmask
			switch {
			case !started:
				s = cSym
				started = true
			case s == 0:
				s = cSym
			default:
				s = cSym ^ alphaTo[c.modn(int(indexOf[s])+rootOffset)]
			}
		}
		for _, cSym := range parity {
			switch {
			case !started:
				s = cSym
				started = true
			case s == 0:
				s = cSym
			default:
				s = cSym ^ alphaTo[c.modn(int(indexOf[s])+rootOffset)]
			}
		}
		synElem[i] = s
		synError |= s
	}
	if synError == 0 {
		return nil, true
	}

	syn = make([]uint16, nroots)
	for i := range syn {
		syn[i] = indexOf[synElem[i]]
	}
	return syn, false
}

// seedErasureLocatorElem rebuilds the element-form erasure locator polynomial
// described in §4.4.2. erasPos entries are shortened-block positions as
// required by Decode's precondition; they are converted to full-block
// positions (+pad) before feeding the u_k formula, since the Chien search and
// Forney stages downstream both work in full-block coordinates and the final
// correction step converts back by subtracting pad (§4.4.7).
func seedErasureLocatorElem(c *Codec, erasPos []int, noEras, pad int) []uint16 {
	nroots := c.nroots
	alphaTo := c.t.alphaTo
	indexOf := c.t.indexOf
	a0 := c.a0()
	n := c.n

	lambda := make([]uint16, nroots+1)
	lambda[0] = 1
	if noEras == 0 {
		return lambda
	}

	u0 := c.modn(c.prim * (n - 1 - (erasPos[0] + pad)))
	lambda[1] = alphaTo[u0]
	for k := 1; k < noEras; k++ {
		uk := c.modn(c.prim * (n - 1 - (erasPos[k] + pad)))
		for j := k + 1; j >= 1; j-- {
			if indexOf[lambda[j-1]] != a0 {
				lambda[j] ^= alphaTo[c.modn(uk+int(indexOf[lambda[j-1]]))]
			}
		}
	}
	return lambda
}

// berlekampMassey runs the erasure-seeded Berlekamp-Massey recurrence of
// §4.4.3 over the given syndromes, returning the final error+erasure locator
// in both element and index form, plus its degree. Shared by Decode and
// VerifyLocator so the two stay byte-for-byte consistent.
func berlekampMassey(c *Codec, syn []uint16, erasPos []int, noEras, pad int) (lambdaElem, lambdaIdx []uint16, degLambda int) {
	nroots := c.nroots
	n := c.n
	alphaTo := c.t.alphaTo
	indexOf := c.t.indexOf
	a0 := c.a0()

	lambdaElem = seedErasureLocatorElem(c, erasPos, noEras, pad)
	b := make([]uint16, nroots+1)
	for i, v := range lambdaElem {
		b[i] = indexOf[v]
	}

	t := make([]uint16, nroots+1)
	r := noEras
	el := noEras
	for {
		r++
		if r > nroots {
			break
		}
		var discrElem uint16
		for i := 0; i < r; i++ {
			if lambdaElem[i] != 0 && syn[r-i-1] != a0 {
				discrElem ^= alphaTo[c.modn(int(indexOf[lambdaElem[i]])+int(syn[r-i-1]))]
			}
		}
		discr := indexOf[discrElem]

		if discr == a0 {
			copy(b[1:], b[:nroots])
			b[0] = a0
		} else {
			t[0] = lambdaElem[0]
			for i := 0; i < nroots; i++ {
				if b[i] != a0 {
					t[i+1] = lambdaElem[i+1] ^ alphaTo[c.modn(int(discr)+int(b[i]))]
				} else {
					t[i+1] = lambdaElem[i+1]
				}
			}
			if 2*el <= r+noEras-1 {
				el = r + noEras - el
				for i := 0; i <= nroots; i++ {
					if lambdaElem[i] == 0 {
						b[i] = a0
					} else {
						b[i] = uint16(c.modn(int(indexOf[lambdaElem[i]]) - int(discr) + n))
					}
				}
			} else {
				copy(b[1:], b[:nroots])
				b[0] = a0
			}
			copy(lambdaElem, t)
		}
	}

	lambdaIdx = make([]uint16, nroots+1)
	degLambda = 0
	for i := 0; i <= nroots; i++ {
		lambdaIdx[i] = indexOf[lambdaElem[i]]
		if lambdaIdx[i] != a0 {
			degLambda = i
		}
	}
	return lambdaElem, lambdaIdx, degLambda
}
