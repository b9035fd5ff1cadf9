package wire

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/soda-maze/maze/vanilla/rabin"
)

// RabinParamsFile is the JSON shape spec.md §6 names for a Rabin deployment
// ("Rabin parameters file: JSON {modulus: hex-LE, modulus_len, bit_size,
// cipher_batch}"). The modulus is hex, little-endian byte order.
type RabinParamsFile struct {
	Modulus     string `json:"modulus"`
	ModulusLen  int    `json:"modulus_len"`
	BitSize     int    `json:"bit_size"`
	CipherBatch int    `json:"cipher_batch"`
}

func reverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

// EncodeRabinParams marshals p into the §6 JSON file format.
func EncodeRabinParams(p rabin.Params) ([]byte, error) {
	be := p.Modulus.Bytes() // big-endian, as math/big produces
	le := reverseBytes(be)
	return json.Marshal(RabinParamsFile{
		Modulus:     hex.EncodeToString(le),
		ModulusLen:  p.ModulusLen,
		BitSize:     p.BitSize,
		CipherBatch: p.CipherBatch,
	})
}

// DecodeRabinParams parses the §6 JSON file format back into rabin.Params.
func DecodeRabinParams(data []byte) (rabin.Params, error) {
	var f RabinParamsFile
	if err := json.Unmarshal(data, &f); err != nil {
		return rabin.Params{}, fmt.Errorf("wire: invalid rabin params json: %w", err)
	}
	le, err := hex.DecodeString(f.Modulus)
	if err != nil {
		return rabin.Params{}, fmt.Errorf("wire: invalid rabin modulus hex: %w", err)
	}
	modulus := new(big.Int).SetBytes(reverseBytes(le))
	return rabin.Params{
		Modulus:     modulus,
		ModulusLen:  f.ModulusLen,
		BitSize:     f.BitSize,
		CipherBatch: f.CipherBatch,
	}, nil
}
