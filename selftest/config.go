package selftest

import (
	"errors"
	"fmt"

	"github.com/snuf/iomemory-vsl-freebsd/constants"
)

// ErrInvalidConfig wraps every Config.Validate failure.
var ErrInvalidConfig = errors.New("selftest: invalid config")

// Config sizes one self-test run.
type Config struct {
	Workers      int
	OpsPerWorker int
	Seed         string
	// Pin locks each worker to an OS thread bound to one CPU.
	Pin bool
}

// DefaultConfig returns the compile-time defaults.
func DefaultConfig() Config {
	return Config{
		Workers:      constants.DefaultWorkers,
		OpsPerWorker: constants.DefaultOpsPerWorker,
		Seed:         constants.DefaultSeed,
		Pin:          true,
	}
}

// Validate rejects sizes whose expected sums would not fit in an int32.
func (c Config) Validate() error {
	switch {
	case c.Workers < 1 || c.Workers > constants.MaxWorkers:
		return fmt.Errorf("%w: workers %d outside [1,%d]", ErrInvalidConfig, c.Workers, constants.MaxWorkers)
	case c.OpsPerWorker < 2 || c.OpsPerWorker > constants.MaxOpsPerWorker:
		return fmt.Errorf("%w: ops per worker %d outside [2,%d]", ErrInvalidConfig, c.OpsPerWorker, constants.MaxOpsPerWorker)
	case c.OpsPerWorker%2 != 0:
		return fmt.Errorf("%w: ops per worker %d must be even", ErrInvalidConfig, c.OpsPerWorker)
	}
	return nil
}
