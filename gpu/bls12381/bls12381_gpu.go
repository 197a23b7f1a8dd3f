//go:build icicle

package bls12_381_gpu

import (
	icicle_core "github.com/ingonyama-zk/icicle-gnark/v3/wrappers/golang/core"
	icicle_ntt "github.com/ingonyama-zk/icicle-gnark/v3/wrappers/golang/curves/bls12381/ntt"
	icicle_runtime "github.com/ingonyama-zk/icicle-gnark/v3/wrappers/golang/runtime"
)

// NttBatchOnDevice transforms the batchSize rows of dataBatch in place. The
// device domain must be initialized with an order that is a multiple of the
// row length.
func NttBatchOnDevice(dataBatch icicle_core.DeviceSlice, batchSize int) icicle_runtime.EIcicleError {
	return nttRows(dataBatch, batchSize, icicle_core.KForward)
}

// INttBatchOnDevice is the inverse of NttBatchOnDevice, including the 1/n
// factor.
func INttBatchOnDevice(dataBatch icicle_core.DeviceSlice, batchSize int) icicle_runtime.EIcicleError {
	return nttRows(dataBatch, batchSize, icicle_core.KInverse)
}

// nttRows runs batchSize row-major vectors, natural order in and out.
func nttRows(data icicle_core.DeviceSlice, batchSize int, dir icicle_core.NTTDir) icicle_runtime.EIcicleError {
	cfg := icicle_ntt.GetDefaultNttConfig()
	cfg.BatchSize = int32(batchSize)
	cfg.ColumnsBatch = false
	cfg.Ordering = icicle_core.KNN
	return icicle_ntt.Ntt(data, dir, &cfg, data)
}
