package service

import (
	"context"
	"errors"
	"math/big"
	"time"

	"github.com/shopspring/decimal"
	"github.com/virgidrex/sentinela-bot/models"
)

const (
	DefaultDecimals      int32 = 18
	DefaultLookupTimeout       = 10 * time.Second
)

var errNilBalance = errors.New("lookup returned no balance")

// BalanceLookup fetches the raw smallest-unit token balance of an address.
type BalanceLookup interface {
	TokenBalance(ctx context.Context, address string) (*big.Int, error)
}

// LookupFunc adapts a plain function to BalanceLookup.
type LookupFunc func(ctx context.Context, address string) (*big.Int, error)

func (f LookupFunc) TokenBalance(ctx context.Context, address string) (*big.Int, error) {
	return f(ctx, address)
}

// Classifier places an already validated address into a tier.
// It holds no mutable state and may be shared between goroutines.
type Classifier struct {
	lookup    BalanceLookup
	threshold decimal.Decimal
	decimals  int32
	timeout   time.Duration
}

type ClassifierOption func(*Classifier)

func WithDecimals(decimals int32) ClassifierOption {
	return func(c *Classifier) { c.decimals = decimals }
}

func WithLookupTimeout(timeout time.Duration) ClassifierOption {
	return func(c *Classifier) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

func NewClassifier(lookup BalanceLookup, threshold decimal.Decimal, opts ...ClassifierOption) *Classifier {
	c := &Classifier{
		lookup:    lookup,
		threshold: threshold,
		decimals:  DefaultDecimals,
		timeout:   DefaultLookupTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify runs a single bounded lookup for address with the default
// decimals and timeout.
func Classify(ctx context.Context, address string, lookup BalanceLookup, threshold decimal.Decimal) models.Outcome {
	return NewClassifier(lookup, threshold).Classify(ctx, address)
}

func (c *Classifier) Threshold() decimal.Decimal {
	return c.threshold
}

func (c *Classifier) Classify(ctx context.Context, address string) models.Outcome {
	outcome, _ := c.Evaluate(ctx, address)
	return outcome
}

// Evaluate is Classify that also returns the lookup error behind a
// LookupFailed outcome.
func (c *Classifier) Evaluate(ctx context.Context, address string) (models.Outcome, error) {
	raw, err := c.fetch(ctx, address)
	if err != nil {
		return models.LookupFailed(), err
	}
	balance := ToQuantity(raw, c.decimals)
	if balance.LessThanOrEqual(c.threshold) {
		return models.Holder(balance), nil
	}
	return models.Waiting(balance), nil
}

type lookupResult struct {
	raw *big.Int
	err error
}

// fetch returns as soon as ctx is done even if the lookup ignores ctx.
func (c *Classifier) fetch(ctx context.Context, address string) (*big.Int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	done := make(chan lookupResult, 1)
	go func() {
		raw, err := c.lookup.TokenBalance(ctx, address)
		done <- lookupResult{raw: raw, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-done:
		if res.err != nil {
			return nil, res.err
		}
		if res.raw == nil {
			return nil, errNilBalance
		}
		if res.raw.Sign() < 0 {
			return nil, errors.New("lookup returned a negative balance")
		}
		return res.raw, nil
	}
}
