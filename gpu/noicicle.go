//go:build !icicle

package gpu

import (
	"errors"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

const HasIcicle = false

var errNoIcicle = errors.New("icicle requested but program compiled without 'icicle' build tag")

// Ready reports whether a device is available for batched transforms.
func Ready() bool {
	return false
}

func NttBatch(_ []fr.Element, _, _ int, _ bool) error {
	return errNoIcicle
}

func ReleaseDomain() error {
	return nil
}
