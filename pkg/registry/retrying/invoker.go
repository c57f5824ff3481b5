// Package retrying retries registry calls that failed with a transient
// persistence error. Only an explicit allow-list of transient kinds is
// retried; everything else is returned after a single invocation.
package retrying

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sethvargo/go-retry"
	"go.opentelemetry.io/otel/attribute"

	"github.com/genie-oss/genie/pkg/genieerrors"
	"github.com/genie-oss/genie/pkg/lib/backoff"
	"github.com/genie-oss/genie/pkg/lib/validate"
	"github.com/genie-oss/genie/pkg/registry"
)

const (
	errComponent = "RetryingInvoker"

	defaultInitialInterval = 100 * time.Millisecond
	defaultMaxInterval     = 2 * time.Second
	defaultMaxRetries      = 3
)

// Policy bounds the retries of a single call.
type Policy struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries uint64
}

// DefaultPolicy is used when no policy is given.
func DefaultPolicy() Policy {
	return Policy{
		InitialInterval: defaultInitialInterval,
		MaxInterval:     defaultMaxInterval,
		MaxRetries:      defaultMaxRetries,
	}
}

func (p Policy) Validate() error {
	return errors.Join(
		validate.IsGreaterThanZero(p.InitialInterval, "initial retry interval must be greater than zero"),
		validate.IsGreaterOrEqualToZero(p.MaxInterval, "max retry interval must not be negative"),
	)
}

type InvokerParams struct {
	Policy Policy
	// Retryable is the allow-list of transient kinds. Defaults to
	// registry.TransientKinds.
	Retryable []registry.TransientKind
	// Backoff overrides the backoff built from Policy. Mostly for tests.
	Backoff backoff.Backoff
}

// Invoker runs a function and retries it while it fails with an
// allow-listed transient error.
type Invoker struct {
	backoff   backoff.Backoff
	retryable map[registry.TransientKind]struct{}
}

func NewInvoker(params InvokerParams) (*Invoker, error) {
	if params.Policy == (Policy{}) {
		params.Policy = DefaultPolicy()
	}
	if params.Backoff == nil {
		if err := params.Policy.Validate(); err != nil {
			return nil, err
		}
		params.Backoff = backoff.NewExponential(
			params.Policy.InitialInterval, params.Policy.MaxInterval, params.Policy.MaxRetries)
	}
	if params.Retryable == nil {
		params.Retryable = registry.TransientKinds
	}

	allow := make(map[registry.TransientKind]struct{}, len(params.Retryable))
	for _, kind := range params.Retryable {
		allow[kind] = struct{}{}
	}
	return &Invoker{
		backoff:   params.Backoff,
		retryable: allow,
	}, nil
}

// IsRetryable reports whether err is a transient error on the allow-list.
func (i *Invoker) IsRetryable(err error) bool {
	kind, ok := registry.TransientKindOf(err)
	if !ok {
		return false
	}
	_, ok = i.retryable[kind]
	return ok
}

// Do invokes fn until it succeeds, fails with a non allow-listed error, the
// retries run out or ctx is done. op names the call in logs and errors.
// When retries are exhausted the last error is returned wrapped with
// genieerrors.ServerError.
func (i *Invoker) Do(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	attempt := 0
	var lastTransient error
	err := retry.Do(ctx, i.backoff.New(), func(ctx context.Context) error {
		attempt++
		if attempt > 1 {
			retriesCounter.Inc(ctx, attribute.String("op", op))
		}
		err := fn(ctx)
		if err == nil {
			lastTransient = nil
			return nil
		}
		if ctx.Err() == nil && i.IsRetryable(err) {
			lastTransient = err
			log.Ctx(ctx).Debug().Err(err).Str("op", op).Int("attempt", attempt).Msg("transient registry failure, retrying")
			return retry.RetryableError(err)
		}
		lastTransient = nil
		return err
	})
	if err == nil {
		return nil
	}

	if lastTransient != nil && errors.Is(err, lastTransient) {
		exhaustedCounter.Inc(ctx, attribute.String("op", op))
		kind, _ := registry.TransientKindOf(lastTransient)
		return genieerrors.Wrap(lastTransient, "%s failed after %d attempts", op, attempt).
			WithCode(genieerrors.ServerError).
			WithComponent(errComponent).
			WithDetail("op", op).
			WithDetail("transientKind", string(kind))
	}
	return err
}

// Call is Do for functions returning a value.
func Call[T any](ctx context.Context, i *Invoker, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := i.Do(ctx, op, func(ctx context.Context) error {
		var err error
		result, err = fn(ctx)
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
