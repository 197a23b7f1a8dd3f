package bipoly

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Grids with at most this many cells always run on the host transform path.
const HOST_PATH_THRESHOLD = 1 << 6

// log2 of the largest transform size; bounded by the 2-adicity of fr.
const MAX_TRANSFORM_LOG = 32

// Domain separation label for seeded coset samplers.
const COSET_SAMPLER_LABEL = "BIPOLY_COSET_SAMPLER"

var one = fr.One()
