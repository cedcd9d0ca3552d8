package loader

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/graphline/ingest"
)

// ErrTooManyParseErrors is returned once a PlainEdgeList's malformed-line
// count exceeds the limit set with WithMaxParseErrors.
var ErrTooManyParseErrors = errors.New("loader: too many malformed lines")

// PlainEdgeListOption mutates a PlainEdgeList under construction.
type PlainEdgeListOption func(*PlainEdgeList)

// WithMaxParseErrors overrides the malformed-line budget: once more than n
// lines are malformed, Pull abandons the file. The default 0 sets no limit;
// malformed lines are then logged and skipped without ever abandoning it.
func WithMaxParseErrors(n int) PlainEdgeListOption {
	return func(p *PlainEdgeList) { p.maxParseErrors = n }
}

// WithPlainEdgeListLogger overrides the diagnostics logger.
func WithPlainEdgeListLogger(l zerolog.Logger) PlainEdgeListOption {
	return func(p *PlainEdgeList) { p.logger = l }
}

// PlainEdgeList reads the SNAP-style plain edge list format: newline
// delimited, '#'-prefixed comment lines, whitespace-separated "tail
// head" integer pairs. It implements ingest.DataSource.
type PlainEdgeList struct {
	scanner *bufio.Scanner
	logger zerolog.Logger
	maxParseErrors int
	parseErrors int
	done bool

	pending []Edge
	batchPos int
}

// NewPlainEdgeList wraps r for sequential Pull/NextEdge consumption.
func NewPlainEdgeList(r io.Reader, opts ...PlainEdgeListOption) *PlainEdgeList {
	p := &PlainEdgeList{
		scanner: bufio.NewScanner(r),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Pull implements ingest.DataSource, reading up to maxEdges valid lines.
func (p *PlainEdgeList) Pull(ctx context.Context, maxEdges int) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if p.done {
		return false, nil
	}

	p.pending = p.pending[:0]
	p.batchPos = 0

	for len(p.pending) < maxEdges && p.scanner.Scan() {
		line := strings.TrimSpace(p.scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		tail, head, ok := parseEdgeLine(line)
		if !ok {
			p.parseErrors++
			p.logger.Warn().Str("line", line).Msg("loader: skipping malformed edge line")
			if p.maxParseErrors > 0 && p.parseErrors > p.maxParseErrors {
				p.done = true
				return false, fmt.Errorf("%w: %d malformed lines", ErrTooManyParseErrors, p.parseErrors)
			}
			continue
		}
		p.pending = append(p.pending, Edge{Tail: tail, Head: head})
	}

	if err := p.scanner.Err(); err != nil {
		p.done = true
		return false, err
	}

	if len(p.pending) == 0 {
		p.done = true
		return false, nil
	}
	return true, nil
}

// NextEdge implements ingest.DataSource.
func (p *PlainEdgeList) NextEdge() (tail, head ingest.NodeID, weight float32, ok bool) {
	if p.batchPos >= len(p.pending) {
		return 0, 0, 0, false
	}
	e := p.pending[p.batchPos]
	p.batchPos++
	return e.Tail, e.Head, 0, true
}

// Weighted implements ingest.DataSource: the plain format carries no
// weight column.
func (p *PlainEdgeList) Weighted() bool { return false }

func parseEdgeLine(line string) (tail, head ingest.NodeID, ok bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, 0, false
	}
	t, err := strconv.ParseUint(fields[0], 10, 32)
	if err != nil {
		return 0, 0, false
	}
	h, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil {
		return 0, 0, false
	}
	return ingest.NodeID(t), ingest.NodeID(h), true
}
