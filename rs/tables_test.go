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

import "testing"

func TestNewRejectsNonPrimitivePoly(t *testing.T) {
	// 0x17 does not generate the full multiplicative group of GF(2^8).
	if _, err := New(8, 32, 1, 1, 0x17); err != ErrNonPrimitivePolynomial {
		t.Fatalf("expected ErrNonPrimitivePolynomial, got %v", err)
	}
}

func TestAlphaToIndexOfAreInverses(t *testing.T) {
	for _, p := range Presets {
		p := p
		t.Run(p.Name, func(t *testing.T) {
			c, err := p.New(4)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			for i := 0; i < c.n; i++ {
				elem := c.t.alphaTo[i]
				if int(c.t.indexOf[elem]) != i {
					t.Fatalf("indexOf[alphaTo[%d]] = %d, want %d", i, c.t.indexOf[elem], i)
				}
			}
			if c.t.alphaTo[c.a0()] != 0 {
				t.Fatalf("alphaTo[a0] = %d, want 0", c.t.alphaTo[c.a0()])
			}
			if c.t.indexOf[0] != c.a0() {
				t.Fatalf("indexOf[0] = %d, want a0 (%d)", c.t.indexOf[0], c.a0())
			}
		})
	}
}

func TestIprimIsInverseOfPrim(t *testing.T) {
	for _, p := range Presets {
		p := p
		t.Run(p.Name, func(t *testing.T) {
			c, err := p.New(4)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if (c.t.iprim*c.prim)%c.n != 1 {
				t.Fatalf("iprim=%d prim=%d n=%d: iprim*prim mod n = %d, want 1",
					c.t.iprim, c.prim, c.n, (c.t.iprim*c.prim)%c.n)
			}
		})
	}
}

func TestModnMatchesNaiveMod(t *testing.T) {
	for _, p := range Presets {
		p := p
		t.Run(p.Name, func(t *testing.T) {
			c, err := p.New(4)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			for x := 0; x <= 3*c.n; x++ {
				got := c.modn(x)
				want := x % c.n
				if got != want {
					t.Fatalf("modn(%d) = %d, want %d (n=%d)", x, got, want, c.n)
				}
			}
		})
	}
}

func TestBuildTablesCachesByParameterTuple(t *testing.T) {
	c1, err := New(8, 32, 1, 1, 0x11d)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c2, err := New(8, 32, 1, 1, 0x11d)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c1.t != c2.t {
		t.Fatal("expected identical parameter tuples to share one *tables instance")
	}

	c3, err := New(8, 16, 1, 1, 0x11d)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c1.t == c3.t {
		t.Fatal("expected different nroots to produce distinct *tables instances")
	}
}
