package checkout

import (
	"context"

	"github.com/rs/zerolog"
)

// Opener hands a deep link to whatever opens it for the shopper.
type Opener interface {
	Open(ctx context.Context, link string) error
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(ctx context.Context, link string) error

// Open calls f(ctx, link).
func (f OpenerFunc) Open(ctx context.Context, link string) error {
	return f(ctx, link)
}

type logOpener struct {
	logger zerolog.Logger
}

// NewLogOpener returns an Opener that only records the link. Over HTTP the
// link is returned to the caller, which opens it client-side.
func NewLogOpener(logger zerolog.Logger) Opener {
	return &logOpener{logger: logger.With().Str("component", "opener").Logger()}
}

func (o *logOpener) Open(_ context.Context, link string) error {
	o.logger.Info().Str("link", link).Msg("checkout link handed off")
	return nil
}
