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
	"crypto/rand"
	"crypto/sha1"
	"crypto/subtle"

	"github.com/pkg/errors"
	"github.com/tjfoc/gmsm/sm4"
	"golang.org/x/crypto/pbkdf2"
)

// saltRS is this module's own pbkdf2 salt, in the same spirit as kcptun
// client's SALT = "kcp-go" constant but distinct so the two passphrase
// spaces never collide if a key is accidentally reused across both tools.
const saltRS = "rscodec"

const (
	sm4KeySize   = 16
	gcmNonceSize = 12
	gcmTagSize   = 16
)

var (
	// ErrShortCiphertext is returned by open when the frame payload is too
	// small to contain a nonce and tag.
	ErrShortCiphertext = errors.New("rsio: ciphertext shorter than nonce+tag")
	// ErrAuthFailed is returned by open when the GCM tag does not match.
	ErrAuthFailed = errors.New("rsio: authentication failed")
)

// deriveKey expands a passphrase into a 16-byte SM4 key, the same pbkdf2
// recipe (sha1, 4096 rounds) kcptun's client uses for its own SALT.
func deriveKey(passphrase string) []byte {
	return pbkdf2.Key([]byte(passphrase), []byte(saltRS), 4096, sm4KeySize, sha1.New)
}

// seal SM4-GCM-encrypts plaintext under key, returning nonce||ciphertext||tag.
func seal(key, plaintext []byte) ([]byte, error) {
	nonce := make([]byte, gcmNonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, errors.WithStack(err)
	}
	ciphertext, tag := sm4.GCMEncrypt(key, nonce, plaintext, nil)

	out := make([]byte, 0, len(nonce)+len(ciphertext)+len(tag))
	out = append(out, nonce...)
	out = append(out, ciphertext...)
	out = append(out, tag...)
	return out, nil
}

// open authenticates and decrypts a nonce||ciphertext||tag blob produced by seal.
func open(key, sealed []byte) ([]byte, error) {
	if len(sealed) < gcmNonceSize+gcmTagSize {
		return nil, ErrShortCiphertext
	}
	nonce := sealed[:gcmNonceSize]
	tag := sealed[len(sealed)-gcmTagSize:]
	ciphertext := sealed[gcmNonceSize : len(sealed)-gcmTagSize]

	plaintext, gotTag := sm4.GCMDecrypt(key, nonce, ciphertext, nil)
	if subtle.ConstantTimeCompare(tag, gotTag) != 1 {
		return nil, ErrAuthFailed
	}
	return plaintext, nil
}
