package resolve

import "github.com/okian/quizmerge/pkg/logger"

// Option applies a configuration option to the Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for unresolved-identity warnings.
func WithLogger(l logger.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}
