package parse

import (
	"github.com/signadot/ward/format"
)

type parseOpts struct {
	format format.Format
}

type ParseOption func(*parseOpts)

func ParseYAML() ParseOption {
	return ParseFormat(format.YAMLFormat)
}
func ParseJSON() ParseOption {
	return ParseFormat(format.JSONFormat)
}
func ParseFormat(f format.Format) ParseOption {
	return func(o *parseOpts) { o.format = f }
}

func newOpts(opts []ParseOption) *parseOpts {
	o := &parseOpts{format: format.YAMLFormat}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
