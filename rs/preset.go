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

import "math/bits"

// Preset is a named (n, poly, fcr, prim) parameter bundle for a commonly used
// field size, as listed in §6 of the specification. nroots is not part of a
// preset: callers choose how much parity to spend within the n they pick.
type Preset struct {
	Name string
	N    int // 2^m - 1
	Poly int
	FCR  int
	Prim int
}

// M returns the symbol width in bits implied by N.
func (p Preset) M() int { return bits.Len(uint(p.N)) }

// New builds a Codec from the preset with the given number of parity symbols.
func (p Preset) New(nroots int) (*Codec, error) {
	return New(p.M(), nroots, p.FCR, p.Prim, p.Poly)
}

// Presets lists every named parameter bundle from §6, in ascending field
// order. CCSDS is the one preset whose (fcr, prim) are not (1, 1), used by
// the CCSDS Telemetry Channel Coding standard.
var Presets = []Preset{
	{Name: "RS-n3", N: 3, Poly: 0x7, FCR: 1, Prim: 1},
	{Name: "RS-n7", N: 7, Poly: 0xb, FCR: 1, Prim: 1},
	{Name: "RS-n15", N: 15, Poly: 0x13, FCR: 1, Prim: 1},
	{Name: "RS-n31", N: 31, Poly: 0x25, FCR: 1, Prim: 1},
	{Name: "RS-n63", N: 63, Poly: 0x43, FCR: 1, Prim: 1},
	{Name: "RS-n127", N: 127, Poly: 0x89, FCR: 1, Prim: 1},
	{Name: "RS-n255", N: 255, Poly: 0x11d, FCR: 1, Prim: 1},
	{Name: "CCSDS-n255", N: 255, Poly: 0x187, FCR: 112, Prim: 11},
	{Name: "RS-n511", N: 511, Poly: 0x211, FCR: 1, Prim: 1},
	{Name: "RS-n1023", N: 1023, Poly: 0x409, FCR: 1, Prim: 1},
	{Name: "RS-n2047", N: 2047, Poly: 0x805, FCR: 1, Prim: 1},
	{Name: "RS-n4095", N: 4095, Poly: 0x1053, FCR: 1, Prim: 1},
	{Name: "RS-n8191", N: 8191, Poly: 0x201b, FCR: 1, Prim: 1},
	{Name: "RS-n16383", N: 16383, Poly: 0x4443, FCR: 1, Prim: 1},
	{Name: "RS-n32767", N: 32767, Poly: 0x8003, FCR: 1, Prim: 1},
	{Name: "RS-n65535", N: 65535, Poly: 0x1100b, FCR: 1, Prim: 1},
}

// PresetByName looks up a preset by its Name field. The second return value
// is false if no preset with that name is registered.
func PresetByName(name string) (Preset, bool) {
	for _, p := range Presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}
