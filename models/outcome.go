package models

import "github.com/shopspring/decimal"

type Tier string

const (
	TierHolder  Tier = "holder"
	TierWaiting Tier = "waiting"
)

type OutcomeKind string

const (
	OutcomeInvalidAddress OutcomeKind = "invalid_address"
	OutcomeLookupFailed   OutcomeKind = "lookup_failed"
	OutcomeHolder         OutcomeKind = "holder"
	OutcomeWaiting        OutcomeKind = "waiting"
)

// Outcome is the result of checking one submitted address.
// Balance is only meaningful for the holder and waiting kinds.
type Outcome struct {
	Kind    OutcomeKind
	Balance decimal.Decimal
}

func InvalidAddress() Outcome {
	return Outcome{Kind: OutcomeInvalidAddress}
}

func LookupFailed() Outcome {
	return Outcome{Kind: OutcomeLookupFailed}
}

func Holder(balance decimal.Decimal) Outcome {
	return Outcome{Kind: OutcomeHolder, Balance: balance}
}

func Waiting(balance decimal.Decimal) Outcome {
	return Outcome{Kind: OutcomeWaiting, Balance: balance}
}

// Tier reports the tier for classified outcomes.
func (o Outcome) Tier() (Tier, bool) {
	switch o.Kind {
	case OutcomeHolder:
		return TierHolder, true
	case OutcomeWaiting:
		return TierWaiting, true
	}
	return "", false
}

func (o Outcome) String() string {
	if _, ok := o.Tier(); ok {
		return string(o.Kind) + "(" + o.Balance.String() + ")"
	}
	return string(o.Kind)
}
