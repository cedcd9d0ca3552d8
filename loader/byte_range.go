package loader

import (
	"errors"
	"fmt"
)

// ErrInvalidPartialLoad is returned by ByteRange when part/numParts is
// out of range — validated at configuration time, not guessed.
var ErrInvalidPartialLoad = errors.New("loader: invalid partial_load_part/partial_load_num_parts")

// ByteRange computes the [start, end) byte span part (1-indexed) owns
// out of numParts shards of a file sized size, using the
// [filesize*(p-1)/n, filesize*p/n) formula. Callers are expected to
// resync to the next line boundary after seeking to start (except for
// part 1, which always starts at byte 0).
func ByteRange(size int64, part, numParts int) (start, end int64, err error) {
	if numParts < 1 || part < 1 || part > numParts {
		return 0, 0, fmt.Errorf("%w: part=%d numParts=%d", ErrInvalidPartialLoad, part, numParts)
	}
	start = size * int64(part-1) / int64(numParts)
	end = size * int64(part) / int64(numParts)
	return start, end, nil
}
