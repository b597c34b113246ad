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

// Encode computes nroots parity symbols for data and writes them into parity.
// data may be shorter than MaxPayload(), in which case the block is treated
// as shortened (implicitly zero-padded on the left). parity must have length
// c.NRoots(); it is fully overwritten, any prior contents are discarded.
//
// invmask is XORed into every data symbol before it enters the LFSR; a
// decoder call over the resulting codeword must use the same mask for the
// effective message to match (see Decode).
func (c *Codec) Encode(data []uint16, parity []uint16, invmask uint16) error {
	if _, err := c.pad(len(data)); err != nil {
		return err
	}
	if len(parity) != c.nroots {
		return ErrLengthOutOfRange
	}

	alphaTo := c.t.alphaTo
	indexOf := c.t.indexOf
	genPoly := c.t.genPoly
	a0 := c.a0()
	nroots := c.nroots

	for i := range parity {
		parity[i] = 0
	}

	for i := 0; i < len(data); i++ {
		fbElem := data[i] ^ invmask ^ parity[0]
		fb := indexOf[fbElem]

		if fb != a0 {
			for j := 1; j < nroots; j++ {
				parity[j] ^= alphaTo[c.modn(int(fb)+int(genPoly[nroots-j]))]
			}
		}

		copy(parity, parity[1:])

		if fb != a0 {
			parity[nroots-1] = alphaTo[c.modn(int(fb)+int(genPoly[0]))]
		} else {
			parity[nroots-1] = 0
		}
	}

	return nil
}
