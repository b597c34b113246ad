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

import "github.com/pkg/errors"

var (
	// ErrNonPrimitivePolynomial is returned by New when poly does not generate
	// the full multiplicative group of GF(2^m): the LFSR failed to cycle through
	// all n nonzero field elements.
	ErrNonPrimitivePolynomial = errors.New("rs: poly is not a primitive polynomial for the given field degree")

	// ErrLengthOutOfRange is returned by Encode/Decode when the data length
	// implies a negative or too-large shortening pad.
	ErrLengthOutOfRange = errors.New("rs: data length out of range for this codec's block size")

	// ErrUncorrectable is the error-shaped form of a decode returning -1,
	// for callers built around the if err != nil idiom (see DecodeErr).
	ErrUncorrectable = errors.New("rs: received word has uncorrectable errors")

	// ErrBadErasure is returned when a caller-supplied erasure position does
	// not refer to a valid symbol of the shortened block.
	ErrBadErasure = errors.New("rs: erasure position out of range")
)
