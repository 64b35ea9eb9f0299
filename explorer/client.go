package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Client queries an Etherscan compatible API for ERC-20 balances of one token.
type Client struct {
	client   *resty.Client
	endpoint string
	chainID  int64
	apiKey   string
	contract string
	logger   *zap.Logger
}

// NewClient targets the multichain (V2) API; chainID selects the network.
func NewClient(client *resty.Client, endpoint string, chainID int64, apiKey, contract string, logger *zap.Logger) *Client {
	if client == nil {
		client = resty.New().SetTimeout(10 * time.Second)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		client:   client,
		endpoint: endpoint,
		chainID:  chainID,
		apiKey:   apiKey,
		contract: contract,
		logger:   logger,
	}
}

// TokenBalance returns the raw smallest-unit balance of address.
// A single request is made; failures are returned, never retried.
func (c *Client) TokenBalance(ctx context.Context, address string) (*big.Int, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"chainid":         strconv.FormatInt(c.chainID, 10),
			"module":          "account",
			"action":          "tokenbalance",
			"contractaddress": c.contract,
			"address":         address,
			"tag":             "latest",
			"apikey":          c.apiKey,
		}).
		Get(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("explorer request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("explorer http status %d", resp.StatusCode())
	}

	var body TokenBalanceResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("decode explorer response: %w", err)
	}
	if body.Status != statusOK {
		return nil, &StatusError{Status: body.Status, Message: body.Message, Result: body.Result}
	}

	raw, ok := new(big.Int).SetString(body.Result, 10)
	if !ok {
		return nil, fmt.Errorf("explorer result %q is not an integer", body.Result)
	}
	if raw.Sign() < 0 {
		return nil, fmt.Errorf("explorer result %q is negative", body.Result)
	}

	c.logger.Debug("explorer token balance",
		zap.String("address", address),
		zap.String("raw", raw.String()),
		zap.Duration("elapsed", resp.Time()),
	)
	return raw, nil
}
