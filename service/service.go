package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/virgidrex/sentinela-bot/models"
)

// Observer receives lookup and outcome events. metrics.Recorder implements it.
type Observer interface {
	ObserveLookup(err error, started time.Time)
	ObserveOutcome(kind models.OutcomeKind)
}

type nopObserver struct{}

func (nopObserver) ObserveLookup(error, time.Time)    {}
func (nopObserver) ObserveOutcome(models.OutcomeKind) {}

// Links are the group invites handed out per tier.
type Links struct {
	Holder  string
	Waiting string
}

type Service struct {
	DB          *gorm.DB
	Classifier  *Classifier
	Links       Links
	TokenSymbol string
	Logger      *zap.Logger
	Observer    Observer
}

func (s *Service) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s *Service) observer() Observer {
	if s.Observer == nil {
		return nopObserver{}
	}
	return s.Observer
}

// Check validates text as an address and, when it is well formed,
// classifies its balance. Invalid input never reaches the lookup.
func (s *Service) Check(ctx context.Context, text string) models.Outcome {
	address := strings.TrimSpace(text)
	log := s.logger().With(zap.String("address", address))

	if !ValidateAddress(address) {
		log.Debug("rejected address")
		s.observer().ObserveOutcome(models.OutcomeInvalidAddress)
		return models.InvalidAddress()
	}

	started := time.Now()
	outcome, err := s.Classifier.Evaluate(ctx, address)
	s.observer().ObserveLookup(err, started)
	s.observer().ObserveOutcome(outcome.Kind)

	if err != nil {
		log.Warn("balance lookup failed", zap.Error(err), zap.Duration("elapsed", time.Since(started)))
		return outcome
	}
	log.Info("classified address",
		zap.String("outcome", string(outcome.Kind)),
		zap.String("balance", outcome.Balance.String()),
	)
	return outcome
}
