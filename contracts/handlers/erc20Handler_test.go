package handlers

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testToken  = "0x4444444444444444444444444444444444444444"
	testHolder = "0x5555555555555555555555555555555555555555"
)

type fakeCaller struct {
	calls []ethereum.CallMsg
	out   func(data []byte) ([]byte, error)
}

func (f *fakeCaller) CallContract(_ context.Context, call ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	f.calls = append(f.calls, call)
	return f.out(call.Data)
}

func newHandler(t *testing.T, caller *fakeCaller) *Erc20Handler {
	t.Helper()
	h, err := NewErc20Handler(testToken, caller)
	require.NoError(t, err)
	return h
}

func TestErc20Handler_TokenBalance(t *testing.T) {
	raw, ok := new(big.Int).SetString("300000000000000000000000", 10)
	require.True(t, ok)

	caller := &fakeCaller{}
	h := newHandler(t, caller)
	caller.out = func([]byte) ([]byte, error) {
		return h.ABI.Methods["balanceOf"].Outputs.Pack(raw)
	}

	got, err := h.TokenBalance(context.Background(), testHolder)
	require.NoError(t, err)
	assert.Equal(t, 0, raw.Cmp(got))

	require.Len(t, caller.calls, 1)
	assert.Equal(t, common.HexToAddress(testToken), *caller.calls[0].To)
	assert.Equal(t, "0x70a08231", hexutil.Encode(caller.calls[0].Data[:4]))
	assert.Equal(t, common.HexToAddress(testHolder).Bytes(), caller.calls[0].Data[len(caller.calls[0].Data)-20:])
}

func TestErc20Handler_TokenBalanceErrors(t *testing.T) {
	t.Run("call error", func(t *testing.T) {
		caller := &fakeCaller{out: func([]byte) ([]byte, error) { return nil, errors.New("node down") }}
		h := newHandler(t, caller)
		_, err := h.TokenBalance(context.Background(), testHolder)
		assert.ErrorContains(t, err, "node down")
	})

	t.Run("empty output", func(t *testing.T) {
		caller := &fakeCaller{out: func([]byte) ([]byte, error) { return nil, nil }}
		h := newHandler(t, caller)
		_, err := h.TokenBalance(context.Background(), testHolder)
		assert.Error(t, err)
	})

	t.Run("non hex address", func(t *testing.T) {
		caller := &fakeCaller{}
		h := newHandler(t, caller)
		_, err := h.TokenBalance(context.Background(), "0x"+"zz"+testHolder[4:])
		assert.Error(t, err)
		assert.Empty(t, caller.calls)
	})
}

func TestErc20Handler_Decimals(t *testing.T) {
	caller := &fakeCaller{}
	h := newHandler(t, caller)
	caller.out = func([]byte) ([]byte, error) {
		return h.ABI.Methods["decimals"].Outputs.Pack(uint8(18))
	}

	got, err := h.Decimals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint8(18), got)
}

func TestNewErc20HandlerRejectsContract(t *testing.T) {
	_, err := NewErc20Handler("not-a-contract", &fakeCaller{})
	assert.Error(t, err)
}
