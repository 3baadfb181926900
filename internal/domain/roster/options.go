package roster

import "github.com/okian/quizmerge/pkg/logger"

// Option applies a configuration option to Build.
type Option func(*builder)

// WithStrictKeys makes two different ids sharing a name key a hard error
// instead of letting the later id win.
func WithStrictKeys(strict bool) Option {
	return func(b *builder) {
		b.strict = strict
	}
}

// WithLogger sets the logger used for data-quality warnings.
func WithLogger(l logger.Logger) Option {
	return func(b *builder) {
		if l != nil {
			b.logger = l
		}
	}
}
