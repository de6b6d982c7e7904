package dirpack

import (
	"github.com/restic/dirpack/internal/errors"
)

type atomicOutput struct {
	fileOutput
}

func newAtomicOutput(archivePath string, overwrite bool) (*atomicOutput, error) {
	return nil, errors.New("atomic archive creation is not supported on Windows")
}
