// Package rabin computes the off-chain Rabin-encryption escrow values
// (preimage, quotient, ciphertext digits) for the optional deposit escrow
// feature (§3 "Rabin ciphertext", §4.3.1 step 6). This is native
// arbitrary-precision arithmetic only — the schoolbook polynomial
// multiply-with-carry that re-derives the same identity inside the
// constraint system lives in package circuits/rabin, grounded on
// original_source's lib/src/circuits/rabin/{poly.rs,uint.rs}.
package rabin

import (
	"crypto/rand"
	"errors"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// ErrInvalidParams is returned when a Params value is not internally
// consistent (e.g. a leaf cannot fit in the reserved high digits).
var ErrInvalidParams = errors.New("rabin: modulus_len too small to hold the leaf digits plus at least one pad digit")

// Params fixes a Rabin deployment's public parameters, matching the JSON
// wire format named in spec.md §6 ("Rabin parameters file: JSON {modulus:
// hex-LE, modulus_len, bit_size, cipher_batch}").
type Params struct {
	Modulus     *big.Int
	ModulusLen  int // m: number of base-2^BitSize digits in the preimage
	BitSize     int // b
	CipherBatch int // k: digits packed per output field element
}

func digitBase(bitSize int) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(bitSize))
}

// leafDigitCount is how many base-2^b digits are needed to hold a full
// 254-bit scalar field element.
func leafDigitCount(bitSize int) int {
	n := (254 + bitSize - 1) / bitSize
	return n
}

// Encrypt builds the preimage P = pad ∥ leaf_digits, computes Q and C with
// P·P = Q·N + C, and packs C's digits into CipherBatch-wide field elements.
// It returns (quotientDigits, cipherFieldArray, paddingDigits).
func Encrypt(p Params, leaf fr.Element) (quotient, cipher, padding []fr.Element, err error) {
	leafDigits := leafDigitCount(p.BitSize)
	if p.ModulusLen <= leafDigits {
		return nil, nil, nil, ErrInvalidParams
	}
	padLen := p.ModulusLen - leafDigits

	base := digitBase(p.BitSize)
	mask := new(big.Int).Sub(base, big.NewInt(1))

	var leafBig big.Int
	leaf.BigInt(&leafBig)

	digits := make([]*big.Int, p.ModulusLen) // little-endian
	padding = make([]fr.Element, padLen)
	for i := 0; i < padLen; i++ {
		d, rerr := rand.Int(rand.Reader, base)
		if rerr != nil {
			return nil, nil, nil, rerr
		}
		digits[i] = d
		padding[i].SetBigInt(d)
	}
	rest := new(big.Int).Set(&leafBig)
	for i := padLen; i < p.ModulusLen; i++ {
		d := new(big.Int).And(rest, mask)
		digits[i] = d
		rest.Rsh(rest, uint(p.BitSize))
	}

	preimage := digitsToBigInt(digits, p.BitSize)

	square := new(big.Int).Mul(preimage, preimage)
	q, c := new(big.Int), new(big.Int)
	q.DivMod(square, p.Modulus, c)

	quotient = bigIntToFieldDigits(q, p.BitSize, quotientLen(p))
	cipherDigits := bigIntToDigits(c, p.BitSize, p.ModulusLen)
	cipher = packDigits(cipherDigits, p.BitSize, p.CipherBatch)

	return quotient, cipher, padding, nil
}

// quotientLen bounds Q's digit count: |P²| ≤ 2·modulus_len digits, and
// Q = (P² − C) / N has at most modulus_len+1 digits since N occupies
// modulus_len digits and P² occupies at most 2·modulus_len.
func quotientLen(p Params) int {
	return p.ModulusLen + 1
}

func digitsToBigInt(digits []*big.Int, bitSize int) *big.Int {
	acc := new(big.Int)
	for i := len(digits) - 1; i >= 0; i-- {
		acc.Lsh(acc, uint(bitSize))
		acc.Or(acc, digits[i])
	}
	return acc
}

func bigIntToDigits(v *big.Int, bitSize, count int) []*big.Int {
	base := digitBase(bitSize)
	mask := new(big.Int).Sub(base, big.NewInt(1))
	rest := new(big.Int).Set(v)
	out := make([]*big.Int, count)
	for i := 0; i < count; i++ {
		out[i] = new(big.Int).And(rest, mask)
		rest.Rsh(rest, uint(bitSize))
	}
	return out
}

func bigIntToFieldDigits(v *big.Int, bitSize, count int) []fr.Element {
	digits := bigIntToDigits(v, bitSize, count)
	out := make([]fr.Element, count)
	for i, d := range digits {
		out[i].SetBigInt(d)
	}
	return out
}

// packDigits folds k consecutive base-2^b digits into one field element:
// out[i] = Σ_{j<k} digits[i·k+j] · 2^{b·j} (§3 "each packing k consecutive
// base-2^b digits").
func packDigits(digits []*big.Int, bitSize, k int) []fr.Element {
	groups := (len(digits) + k - 1) / k
	out := make([]fr.Element, groups)
	for g := 0; g < groups; g++ {
		acc := new(big.Int)
		for j := k - 1; j >= 0; j-- {
			idx := g*k + j
			acc.Lsh(acc, uint(bitSize))
			if idx < len(digits) {
				acc.Or(acc, digits[idx])
			}
		}
		out[g].SetBigInt(acc)
	}
	return out
}
