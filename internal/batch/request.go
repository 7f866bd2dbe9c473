package batch

import (
	"strconv"

	"github.com/yanun0323/errors"

	"github.com/tparks5/ntpsec/pkg/exception"
	"github.com/tparks5/ntpsec/pkg/ntpfp"
)

// Request is one input line. Either Value (text) or Raw (the 32 bit
// pattern) must be set; Raw wins when both are. Nil options fall back to
// the processor defaults.
type Request struct {
	Value          string  `json:"value"`
	Raw            *uint32 `json:"raw,omitempty"`
	Negative       *bool   `json:"negative,omitempty"`
	FractionDigits *int    `json:"fractionDigits,omitempty"`
	Msec           *bool   `json:"msec,omitempty"`
}

// Response is one output line.
type Response struct {
	Line  int    `json:"line"`
	Input string `json:"input"`
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

func (req Request) input() string {
	if req.Raw != nil {
		return "0x" + strconv.FormatUint(uint64(*req.Raw), 16)
	}
	return req.Value
}

// resolve merges req over defaults.
func (req Request) resolve(defaults ntpfp.Request, parse func(string) (ntpfp.Short, error)) (ntpfp.Request, error) {
	r := defaults
	switch {
	case req.Raw != nil:
		r.Value = ntpfp.Short(*req.Raw)
	case req.Value == "":
		return ntpfp.Request{}, exception.ErrEmptyValue
	default:
		v, err := parse(req.Value)
		if err != nil {
			return ntpfp.Request{}, errors.Wrap(err, "parse value")
		}
		r.Value = v
	}

	if req.Negative != nil {
		r.Negative = *req.Negative
	}
	if req.FractionDigits != nil {
		r.FractionDigits = *req.FractionDigits
	}
	if req.Msec != nil {
		r.Msec = *req.Msec
	}

	return r, nil
}
