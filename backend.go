package bipoly

import (
	"runtime"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"
	"github.com/consensys/gnark/logger"

	"github.com/tokamak-network/bipoly/gpu"
)

type transformPath int

const (
	// hostPath runs every 1-D transform sequentially on the calling goroutine.
	hostPath transformPath = iota
	// acceleratedPath batches the 1-D transforms on the device when built
	// with icicle, and fans them out over CPUs otherwise.
	acceleratedPath
)

func (t transformPath) String() string {
	if t == hostPath {
		return "host"
	}
	return "accelerated"
}

// selectPath is the only place deciding where a 2-D transform runs. The
// batched path is unreliable for degenerate grids, so small grids and
// single-row or single-column grids always go to the host.
func selectPath(xSize, ySize int) transformPath {
	if xSize == 1 || ySize == 1 || xSize*ySize <= HOST_PATH_THRESHOLD {
		return hostPath
	}
	return acceleratedPath
}

// batchNTT transforms the batch rows of length n stored row-major in data,
// in place, natural order in and out.
func batchNTT(path transformPath, data []fr.Element, n, batch int, inverse bool) {
	if n == 1 {
		return
	}

	if path == acceleratedPath && gpu.HasIcicle && gpu.Ready() {
		err := gpu.NttBatch(data, n, batch, inverse)
		if err == nil {
			return
		}
		log := logger.Logger()
		log.Warn().Err(err).Int("size", n).Int("batch", batch).
			Msg("[GPU failed -> CPU] batched ntt")
	}

	domain := domains.acquire(uint64(n))
	defer domains.release(uint64(n))

	nbTasks := 1
	if path == acceleratedPath && batch < runtime.NumCPU() {
		nbTasks = runtime.NumCPU() / batch
	}
	work := func(start, end int) {
		for r := start; r < end; r++ {
			row := data[r*n : (r+1)*n]
			if inverse {
				domain.FFTInverse(row, fft.DIF, fft.WithNbTasks(nbTasks))
			} else {
				domain.FFT(row, fft.DIF, fft.WithNbTasks(nbTasks))
			}
			fft.BitReverse(row)
		}
	}

	if path == hostPath {
		work(0, batch)
		return
	}
	parallelize(batch, work)
}

// TransformBackend names the path a transform of the given shape runs on.
func TransformBackend(xSize, ySize int) string {
	return selectPath(xSize, ySize).String()
}
