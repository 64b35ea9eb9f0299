package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// BaseHandler performs read-only calls against one deployed contract.
type BaseHandler struct {
	ABI      abi.ABI
	Contract common.Address
	caller   ethereum.ContractCaller
}

func NewBaseHandler(abiJSON string, contract common.Address, caller ethereum.ContractCaller) (*BaseHandler, error) {
	parsedABI, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return nil, fmt.Errorf("parse abi: %w", err)
	}
	return &BaseHandler{ABI: parsedABI, Contract: contract, caller: caller}, nil
}

// Call packs method with args, executes it at the latest block and unpacks the outputs.
func (baseHandler *BaseHandler) Call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	data, err := baseHandler.ABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	out, err := baseHandler.caller.CallContract(ctx, ethereum.CallMsg{To: &baseHandler.Contract, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	values, err := baseHandler.ABI.Unpack(method, out)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	return values, nil
}
