package handlers

import (
	"context"
	_ "embed"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
)

//go:embed abis/erc20.json
var erc20ABI string

type Erc20Handler struct {
	BaseHandler
}

func NewErc20Handler(contract string, caller ethereum.ContractCaller) (*Erc20Handler, error) {
	if !common.IsHexAddress(contract) {
		return nil, fmt.Errorf("token contract %q is not a hex address", contract)
	}
	base, err := NewBaseHandler(erc20ABI, common.HexToAddress(contract), caller)
	if err != nil {
		return nil, err
	}
	return &Erc20Handler{*base}, nil
}

// TokenBalance returns balanceOf(address) in the token's smallest unit.
func (erc20Handler *Erc20Handler) TokenBalance(ctx context.Context, address string) (*big.Int, error) {
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("%q is not a hex address", address)
	}
	out, err := erc20Handler.Call(ctx, "balanceOf", common.HexToAddress(address))
	if err != nil {
		return nil, err
	}
	if len(out) != 1 {
		return nil, fmt.Errorf("balanceOf returned %d values", len(out))
	}
	balance, ok := out[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("balanceOf returned %T", out[0])
	}
	return balance, nil
}

func (erc20Handler *Erc20Handler) Decimals(ctx context.Context) (uint8, error) {
	out, err := erc20Handler.Call(ctx, "decimals")
	if err != nil {
		return 0, err
	}
	decimals, ok := out[0].(uint8)
	if !ok {
		return 0, fmt.Errorf("decimals returned %T", out[0])
	}
	return decimals, nil
}
