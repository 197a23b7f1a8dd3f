//go:build icicle

package gpu

import (
	"fmt"
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"
	"github.com/consensys/gnark/logger"

	icicle_core "github.com/ingonyama-zk/icicle-gnark/v3/wrappers/golang/core"
	icicle_bls12_381 "github.com/ingonyama-zk/icicle-gnark/v3/wrappers/golang/curves/bls12381"
	icicle_ntt "github.com/ingonyama-zk/icicle-gnark/v3/wrappers/golang/curves/bls12381/ntt"
	icicle_runtime "github.com/ingonyama-zk/icicle-gnark/v3/wrappers/golang/runtime"

	bls12_381_gpu "github.com/tokamak-network/bipoly/gpu/bls12381"
)

const HasIcicle = true

type deviceInfo struct {
	Device icicle_runtime.Device

	// the device NTT domain is process-wide; domainSize is the order of the
	// root it was initialized with (0: none), domainRefs the transforms
	// currently running on it.
	domainSize uint64
	domainRefs int
}

var (
	setupOnce sync.Once
	setupErr  error
	device    *deviceInfo

	domainMu   sync.Mutex
	domainIdle = sync.NewCond(&domainMu)
)

func setupDevice() error {
	setupOnce.Do(func() {
		if st := icicle_runtime.LoadBackendFromEnvOrDefault(); st != icicle_runtime.Success {
			setupErr = fmt.Errorf("icicle backend: %s", st.AsString())
			return
		}
		device = &deviceInfo{Device: icicle_runtime.CreateDevice("CUDA", 0)}
		log := logger.Logger()
		log.Debug().Str("device", "CUDA:0").Msg("icicle device ready")
	})
	return setupErr
}

// Ready reports whether a device is available for batched transforms.
func Ready() bool {
	return setupDevice() == nil
}

// acquireDomain makes sure the device domain supports transforms of size n
// and pins it. A domain that is too small is only re-initialized once no
// transform holds it.
func acquireDomain(n uint64) error {
	domainMu.Lock()
	defer domainMu.Unlock()
	for device.domainSize < n && device.domainRefs > 0 {
		domainIdle.Wait()
	}
	if device.domainSize < n {
		if err := initDomain(n); err != nil {
			return err
		}
	}
	device.domainRefs++
	return nil
}

func releaseDomainRef() {
	domainMu.Lock()
	device.domainRefs--
	if device.domainRefs == 0 {
		domainIdle.Broadcast()
	}
	domainMu.Unlock()
}

// initDomain must be called with domainMu held and no references.
func initDomain(n uint64) error {
	gen, err := fft.Generator(n)
	if err != nil {
		return fmt.Errorf("fft.Generator(%d): %w", n, err)
	}
	genBits := gen.Bits()
	limbs := icicle_core.ConvertUint64ArrToUint32Arr(genBits[:])
	var rou icicle_bls12_381.ScalarField
	rou = rou.FromLimbs(limbs)

	var stRls, stInit icicle_runtime.EIcicleError
	hadDomain := device.domainSize > 0
	done := make(chan struct{})
	icicle_runtime.RunOnDevice(&device.Device, func(args ...any) {
		defer close(done)
		if hadDomain {
			stRls = icicle_ntt.ReleaseDomain()
		}
		stInit = icicle_ntt.InitDomain(rou, icicle_core.GetDefaultNTTInitDomainConfig())
	})
	<-done
	if hadDomain && stRls != icicle_runtime.Success {
		return fmt.Errorf("ReleaseDomain failed: %s", stRls.AsString())
	}
	if stInit != icicle_runtime.Success {
		device.domainSize = 0
		return fmt.Errorf("InitDomain failed: %s", stInit.AsString())
	}
	device.domainSize = n
	return nil
}

// ReleaseDomain frees the device domain if no transform holds it.
func ReleaseDomain() error {
	if device == nil {
		return nil
	}
	domainMu.Lock()
	defer domainMu.Unlock()
	if device.domainRefs > 0 || device.domainSize == 0 {
		return nil
	}
	var st icicle_runtime.EIcicleError
	done := make(chan struct{})
	icicle_runtime.RunOnDevice(&device.Device, func(args ...any) {
		defer close(done)
		st = icicle_ntt.ReleaseDomain()
	})
	<-done
	device.domainSize = 0
	if st != icicle_runtime.Success {
		return fmt.Errorf("ReleaseDomain failed: %s", st.AsString())
	}
	return nil
}

// NttBatch runs batch independent transforms of length size on the device,
// in place. data is [batch][size] row-major, natural order in and out.
func NttBatch(data []fr.Element, size, batch int, inverse bool) error {
	if err := setupDevice(); err != nil {
		return err
	}
	if len(data) != size*batch {
		return fmt.Errorf("icicle ntt: %d elements for %d x %d", len(data), batch, size)
	}
	if err := acquireDomain(uint64(size)); err != nil {
		return err
	}
	defer releaseDomainRef()

	var st icicle_runtime.EIcicleError
	done := make(chan struct{})
	icicle_runtime.RunOnDevice(&device.Device, func(args ...any) {
		defer close(done)

		host := icicle_core.HostSliceFromElements(data)
		var dataDev icicle_core.DeviceSlice
		host.CopyToDevice(&dataDev, true)
		defer dataDev.Free()

		if inverse {
			st = bls12_381_gpu.INttBatchOnDevice(dataDev, batch)
		} else {
			st = bls12_381_gpu.NttBatchOnDevice(dataDev, batch)
		}
		if st == icicle_runtime.Success {
			host.CopyFromDevice(&dataDev)
		}
	})
	<-done

	if st != icicle_runtime.Success {
		return fmt.Errorf("icicle ntt (size=%d batch=%d): %s", size, batch, st.AsString())
	}
	return nil
}
