package explorer

import (
	"errors"
	"fmt"
)

const statusOK = "1"

// ErrStatus is matched by every StatusError.
var ErrStatus = errors.New("explorer reported failure")

// TokenBalanceResponse is the envelope returned by the account/tokenbalance action.
type TokenBalanceResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Result  string `json:"result"`
}

// StatusError is returned when the explorer answers with a status other than "1",
// e.g. an invalid API key or a rate limit notice.
type StatusError struct {
	Status  string
	Message string
	Result  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("explorer status %s: %s (%s)", e.Status, e.Message, e.Result)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrStatus
}
