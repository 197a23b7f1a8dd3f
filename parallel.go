package bipoly

import (
	"runtime"
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// parallelize splits [0, nbIterations) into contiguous chunks and runs work on
// each chunk in its own goroutine. Chunks never overlap.
func parallelize(nbIterations int, work func(int, int), maxCpus ...int) {
	if nbIterations <= 0 {
		return
	}

	nbTasks := runtime.NumCPU()
	if len(maxCpus) == 1 && maxCpus[0] > 0 {
		nbTasks = maxCpus[0]
	}
	nbIterationsPerCpus := nbIterations / nbTasks

	// more CPUs than tasks: a CPU will work on exactly one iteration
	if nbIterationsPerCpus < 1 {
		nbIterationsPerCpus = 1
		nbTasks = nbIterations
	}

	if nbTasks == 1 {
		work(0, nbIterations)
		return
	}

	var wg sync.WaitGroup

	extraTasks := nbIterations - (nbTasks * nbIterationsPerCpus)
	extraTasksOffset := 0

	for i := 0; i < nbTasks; i++ {
		wg.Add(1)
		_start := i*nbIterationsPerCpus + extraTasksOffset
		_end := _start + nbIterationsPerCpus
		if extraTasks > 0 {
			_end++
			extraTasks--
			extraTasksOffset++
		}
		go func() {
			work(_start, _end)
			wg.Done()
		}()
	}

	wg.Wait()
}

// transpose returns the cols x rows transpose of a row-major rows x cols matrix.
func transpose(m []fr.Element, rows, cols int) []fr.Element {
	out := make([]fr.Element, len(m))
	parallelize(rows, func(start, end int) {
		for i := start; i < end; i++ {
			row := m[i*cols : (i+1)*cols]
			for j := range row {
				out[j*rows+i] = row[j]
			}
		}
	})
	return out
}
