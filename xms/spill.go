package xms

import (
	"fmt"
	"io"
	"os"

	"github.com/fxamacker/cbor/v2"
)

// spillRun is one sorted run written to a temp file. Records are framed
// as a sequential stream of CBOR items (cbor.Decoder.Decode reads exactly
// one item per call and reports io.EOF cleanly at the end of the stream).
//
// The file is removed immediately after creation: unlinking an open
// file's directory entry frees the name while keeping the underlying
// data reachable through the open descriptor, cleaned up automatically
// when the process exits or the descriptor is closed.
type spillRun[T any] struct {
	f *os.File
	n int
	dec *cbor.Decoder
}

func spillDir(cfg Config, idx int) string {
	if len(cfg.TempDirs) == 0 {
		return os.TempDir()
	}
	return cfg.TempDirs[idx%len(cfg.TempDirs)]
}

// writeRun spills a sorted in-memory slice to a new temp file and returns
// a run positioned for subsequent reads from the start.
func writeRun[T any](cfg Config, dirIdx int, sorted []T) (*spillRun[T], error) {
	f, err := os.CreateTemp(spillDir(cfg, dirIdx), "graphline-xms-*.cbor")
	if err != nil {
		return nil, fmt.Errorf("%w: create temp file: %v", ErrIOFailure, err)
	}
	removeErr := os.Remove(f.Name()) // unlink immediately; fd keeps data alive

	enc := cbor.NewEncoder(f)
	for i := range sorted {
		if err := enc.Encode(&sorted[i]); err != nil {
			f.Close()
			return nil, fmt.Errorf("%w: encode record: %v", ErrIOFailure, err)
		}
	}
	if removeErr != nil {
		f.Close()
		return nil, fmt.Errorf("%w: unlink temp file: %v", ErrIOFailure, removeErr)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: rewind temp file: %v", ErrIOFailure, err)
	}

	cfg.Logger.Debug().Int("records", len(sorted)).Msg("xms: spilled run")
	return &spillRun[T]{f: f, n: len(sorted), dec: cbor.NewDecoder(f)}, nil
}

// rewind repositions a run's decoder at its first record.
func (r *spillRun[T]) rewind() error {
	if _, err := r.f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("%w: rewind run: %v", ErrIOFailure, err)
	}
	r.dec = cbor.NewDecoder(r.f)
	return nil
}

// next decodes the run's next record, returning (rec, true), or the zero
// value and false at end of stream.
func (r *spillRun[T]) next() (T, bool, error) {
	var rec T
	if err := r.dec.Decode(&rec); err != nil {
		if err == io.EOF {
			return rec, false, nil
		}
		return rec, false, fmt.Errorf("%w: decode record: %v", ErrIOFailure, err)
	}
	return rec, true, nil
}

func (r *spillRun[T]) close() error {
	return r.f.Close()
}
