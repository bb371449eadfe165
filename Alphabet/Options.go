package Alphabet

import (
	StUtils "github.com/g-m-twostay/st-utils"
	"github.com/g-m-twostay/st-utils/Dict"
)

type options struct {
	growth uint32
	logger *StUtils.Logger
}

type Option func(*options)

// WithGrowth sets the pool growth step of the underlying Dict, Dict.DefaultGrowth by default.
func WithGrowth(n uint32) Option {
	return func(o *options) {
		o.growth = n
	}
}

// WithLogger logs failures to l. nil disables logging.
func WithLogger(l *StUtils.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func applyOptions(optFns []Option) options {
	o := options{growth: Dict.DefaultGrowth}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.logger == nil {
		o.logger = StUtils.NoopLogger()
	}
	return o
}
