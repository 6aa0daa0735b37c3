package msh

import "log"

type options struct {
	logger  *log.Logger
	splines bool
}

// Option configures Load, Save and Checksum
type Option func(*options)

// WithLogger routes diagnostics, such as skipped sections, to l
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithSplineExtension enables the $NanoSplineFormat, $Curves and $Patches
// sections. Without it those sections are skipped on load and never written.
func WithSplineExtension() Option {
	return func(o *options) { o.splines = true }
}

func newOptions(opts []Option) *options {
	o := &options{logger: log.Default()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
