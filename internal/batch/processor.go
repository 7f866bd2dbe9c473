package batch

import (
	"bufio"
	"bytes"
	"context"
	"io"

	"github.com/bytedance/sonic"
	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"
	"github.com/yanun0323/pkg/sys"

	"github.com/tparks5/ntpsec/pkg/bufpool"
	"github.com/tparks5/ntpsec/pkg/exception"
	"github.com/tparks5/ntpsec/pkg/ntpfp"
)

const maxLineSize = 64 << 10

// Option configures a Processor.
type Option struct {
	Defaults ntpfp.Request
	Parse    func(string) (ntpfp.Short, error)
	Pool     *bufpool.Pool
}

// Stats counts the non-blank lines a Run has seen.
type Stats struct {
	Lines     int
	Formatted int
	Failed    int
}

// Processor formats JSON-lines requests into JSON-lines responses.
type Processor struct {
	defaults ntpfp.Request
	parse    func(string) (ntpfp.Short, error)
	pool     *bufpool.Pool
}

func New(opt Option) *Processor {
	p := &Processor{
		defaults: opt.Defaults,
		parse:    opt.Parse,
		pool:     opt.Pool,
	}
	if p.parse == nil {
		p.parse = ntpfp.Parse
	}
	if p.pool == nil {
		p.pool = bufpool.New(ntpfp.MaxLen)
	}

	return p
}

// Run answers every request line of r on w until EOF, ctx is done or the
// process is shutting down. Bad lines get an error response and do not stop
// the run. Lines are read on a separate goroutine so a blocked read does not
// delay cancellation; that goroutine exits once r returns.
func (p *Processor) Run(ctx context.Context, r io.Reader, w io.Writer) (Stats, error) {
	var stats Stats
	bw := bufio.NewWriter(w)

	done := make(chan struct{})
	defer close(done)
	lines := scanLines(r, done)

	for line := 1; ; line++ {
		if err := ctx.Err(); err != nil {
			return stats, flush(bw, err)
		}

		var res scanResult
		select {
		case <-ctx.Done():
			return stats, flush(bw, ctx.Err())
		case <-sys.Shutdown():
			logs.Info("stop batch. reason: shutdown")
			return stats, flush(bw, nil)
		case l, ok := <-lines:
			if !ok {
				return stats, flush(bw, nil)
			}
			res = l
		}

		if res.err != nil {
			return stats, flush(bw, errors.Wrap(res.err, "scan requests"))
		}

		data := bytes.TrimSpace(res.data)
		if len(data) == 0 {
			continue
		}

		stats.Lines++
		resp := p.Handle(line, data)
		if resp.Error != "" {
			stats.Failed++
		} else {
			stats.Formatted++
		}

		out, err := sonic.ConfigFastest.Marshal(resp)
		if err != nil {
			return stats, flush(bw, errors.Wrapf(err, "marshal response, line: %d", line))
		}
		out = append(out, '\n')
		if _, err := bw.Write(out); err != nil {
			return stats, errors.Wrapf(err, "write response, line: %d", line)
		}
	}
}

type scanResult struct {
	data []byte
	err  error
}

// scanLines feeds copies of the lines of r to the returned channel, then a
// scan error if any, and closes it. It stops early when done is closed.
func scanLines(r io.Reader, done <-chan struct{}) <-chan scanResult {
	lines := make(chan scanResult)
	go func() {
		defer close(lines)

		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 4096), maxLineSize)
		for sc.Scan() {
			select {
			case lines <- scanResult{data: bytes.Clone(sc.Bytes())}:
			case <-done:
				return
			}
		}

		if err := sc.Err(); err != nil {
			select {
			case lines <- scanResult{err: err}:
			case <-done:
			}
		}
	}()

	return lines
}

// Handle answers a single request line.
func (p *Processor) Handle(line int, data []byte) Response {
	var req Request
	if err := sonic.ConfigFastest.Unmarshal(data, &req); err != nil {
		err = errors.Wrapf(exception.ErrInvalidRequest, "line: %d, err: %v", line, err)
		logs.Errorf("handle request, err: %+v", err)
		return Response{Line: line, Input: string(data), Error: err.Error()}
	}

	r, err := req.resolve(p.defaults, p.parse)
	if err != nil {
		err = errors.Wrapf(err, "line: %d", line)
		logs.Errorf("handle request, err: %+v", err)
		return Response{Line: line, Input: req.input(), Error: err.Error()}
	}

	buf := r.AppendTo(p.pool.Get())
	resp := Response{Line: line, Input: req.input(), Text: string(buf)}
	p.pool.Put(buf)

	return resp
}

func flush(bw *bufio.Writer, err error) error {
	if ferr := bw.Flush(); ferr != nil && err == nil {
		return errors.Wrap(ferr, "flush responses")
	}
	return err
}
