package bipoly

import (
	"fmt"
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"golang.org/x/crypto/sha3"
)

// CosetSampler draws the coset shifts used by DivByVanishing.
type CosetSampler interface {
	SampleCoset() (fr.Element, error)
}

type randomSampler struct{}

// SampleCoset returns a uniformly random field element from crypto/rand.
func (randomSampler) SampleCoset() (fr.Element, error) {
	var e fr.Element
	if _, err := e.SetRandom(); err != nil {
		return fr.Element{}, fmt.Errorf("sample coset: %w", err)
	}
	return e, nil
}

// TranscriptSampler derives coset shifts from a SHAKE-256 stream keyed by a
// seed. Two samplers with the same seed produce the same sequence.
type TranscriptSampler struct {
	mu  sync.Mutex
	xof sha3.ShakeHash
}

// NewTranscriptSampler returns a sampler seeded with seed.
func NewTranscriptSampler(seed []byte) *TranscriptSampler {
	h := sha3.NewShake256()
	h.Write([]byte(COSET_SAMPLER_LABEL))
	h.Write(seed)
	return &TranscriptSampler{xof: h}
}

// SampleCoset squeezes 48 bytes and reduces them modulo the field order.
// The extra 16 bytes keep the reduction bias negligible.
func (s *TranscriptSampler) SampleCoset() (fr.Element, error) {
	var buf [48]byte
	s.mu.Lock()
	_, err := s.xof.Read(buf[:])
	s.mu.Unlock()
	if err != nil {
		return fr.Element{}, fmt.Errorf("squeeze coset: %w", err)
	}
	var e fr.Element
	e.SetBytes(buf[:])
	return e, nil
}
