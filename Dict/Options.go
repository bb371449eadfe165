package Dict

import StUtils "github.com/g-m-twostay/st-utils"

// DefaultGrowth is the pool growth step used by callers that have no better estimate.
const DefaultGrowth uint32 = 1000000

type options struct {
	hash      HashFunc
	equal     EqualFunc
	clearList bool
	logger    *StUtils.Logger
}

// Option configures New and Load.
type Option func(*options)

// WithHash sets the bucket function. nil means HashSimple.
func WithHash(f HashFunc) Option {
	return func(o *options) {
		o.hash = f
	}
}

// WithEqual sets the key comparison. nil means SignEqual.
func WithEqual(f EqualFunc) Option {
	return func(o *options) {
		o.equal = f
	}
}

// WithClearList keeps a list of occupied buckets so that Clear runs in O(occupied).
func WithClearList() Option {
	return func(o *options) {
		o.clearList = true
	}
}

// WithLogger logs failures to l. nil disables logging.
func WithLogger(l *StUtils.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func applyOptions(optFns []Option) options {
	o := options{}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.hash == nil {
		o.hash = HashSimple
	}
	if o.equal == nil {
		o.equal = SignEqual
	}
	if o.logger == nil {
		o.logger = StUtils.NoopLogger()
	}
	return o
}
