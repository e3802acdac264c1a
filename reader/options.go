package reader

import (
	"github.com/rs/zerolog"

	"github.com/arloliu/memdwarf/internal/options"
	"github.com/arloliu/memdwarf/objaccess"
)

// Option configures a Session at Open.
type Option = options.Option[*sessionConfig]

type sessionConfig struct {
	logger        zerolog.Logger
	supplementary objaccess.Access
}

// WithLogger sets the session logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return options.NoError(func(c *sessionConfig) {
		c.logger = logger
	})
}

// WithSupplementary sets the supplementary object whose .debug_str backs
// DW_FORM_strp_sup and DW_FORM_GNU_strp_alt.
func WithSupplementary(access objaccess.Access) Option {
	return options.NoError(func(c *sessionConfig) {
		c.supplementary = access
	})
}
