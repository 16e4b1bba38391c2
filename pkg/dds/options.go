package dds

// Option configures Decode.
type Option func(*options)

type options struct {
	flip   bool
	strict bool
}

// WithVerticalFlip mirrors every surface vertically as it is read.
func WithVerticalFlip(flip bool) Option {
	return func(o *options) {
		o.flip = flip
	}
}

// WithStrict additionally requires the CAPS and PIXELFORMAT header flags
// and the TEXTURE capability, which many writers omit.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
