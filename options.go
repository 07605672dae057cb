package dynarray

import (
	"github.com/go-kit/log"
	"github.com/pkg/errors"
)

// DefaultInitialCapacity is the number of elements allocated by Init.
const DefaultInitialCapacity = 32

// options holds the per-array configuration.
type options struct {
	initialCapacity int
	growth          GrowthPolicy
	memory          Memory
	logger          log.Logger
}

// Option configures an Array at Init time.
type Option func(*options)

// WithInitialCapacity sets the number of elements allocated by Init.
// Must be positive.
func WithInitialCapacity(capacity int) Option {
	return func(o *options) {
		o.initialCapacity = capacity
	}
}

// WithGrowthPolicy selects how capacity grows when a single element no longer fits.
// The policy is fixed for the lifetime of the array.
func WithGrowthPolicy(policy GrowthPolicy) Option {
	return func(o *options) {
		o.growth = policy
	}
}

// WithMemory specifies the allocator for the array's buffer.
// Default: Go heap memory.
func WithMemory(memory Memory) Option {
	return func(o *options) {
		o.memory = memory
	}
}

// WithLogger sets the logger used for debug output about allocations and growth.
// Default: a no-op logger.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func newOptions(ops []Option) (options, error) {
	var opts = options{
		initialCapacity: DefaultInitialCapacity,
		growth:          GrowthDoubling,
		memory:          heapMemory{},
		logger:          log.NewNopLogger(),
	}
	for _, op := range ops {
		op(&opts)
	}

	if opts.initialCapacity <= 0 {
		return opts, errors.Wrapf(ErrInvalidArgument, "initial capacity %d", opts.initialCapacity)
	}
	if !opts.growth.valid() {
		return opts, errors.Wrapf(ErrInvalidArgument, "growth policy %d", int(opts.growth))
	}
	if opts.memory == nil {
		return opts, errors.Wrap(ErrInvalidArgument, "nil memory")
	}
	if opts.logger == nil {
		opts.logger = log.NewNopLogger()
	}
	return opts, nil
}
