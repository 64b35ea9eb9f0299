package explorer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testContract = "0x2222222222222222222222222222222222222222"
	testWallet   = "0x3333333333333333333333333333333333333333"
)

type requestLog struct {
	mu      sync.Mutex
	queries []url.Values
}

func (l *requestLog) add(q url.Values) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.queries = append(l.queries, q)
}

func (l *requestLog) all() []url.Values {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]url.Values(nil), l.queries...)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *requestLog) {
	t.Helper()
	seen := &requestLog{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen.add(r.URL.Query())
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return NewClient(resty.New(), srv.URL, 8453, "secret", testContract, nil), seen
}

func TestClient_TokenBalance(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		want       string
		wantStatus bool
		wantErr    bool
	}{
		{
			name: "success",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"status":"1","message":"OK","result":"300000000000000000000001"}`))
			},
			want: "300000000000000000000001",
		},
		{
			name: "zero balance",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"status":"1","message":"OK","result":"0"}`))
			},
			want: "0",
		},
		{
			name: "explorer business error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"status":"0","message":"NOTOK","result":"Invalid API Key"}`))
			},
			wantErr:    true,
			wantStatus: true,
		},
		{
			name: "http error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
			wantErr: true,
		},
		{
			name: "malformed payload",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`<html>`))
			},
			wantErr: true,
		},
		{
			name: "non numeric result",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"status":"1","message":"OK","result":"abc"}`))
			},
			wantErr: true,
		},
		{
			name: "negative result",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"status":"1","message":"OK","result":"-5"}`))
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, tt.handler)
			got, err := c.TokenBalance(context.Background(), testWallet)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, got)
				assert.Equal(t, tt.wantStatus, errors.Is(err, ErrStatus))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestClient_TokenBalanceQuery(t *testing.T) {
	c, seen := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"1","message":"OK","result":"1"}`))
	})

	_, err := c.TokenBalance(context.Background(), testWallet)
	require.NoError(t, err)
	queries := seen.all()
	require.Len(t, queries, 1)

	q := queries[0]
	assert.Equal(t, "8453", q.Get("chainid"))
	assert.Equal(t, "account", q.Get("module"))
	assert.Equal(t, "tokenbalance", q.Get("action"))
	assert.Equal(t, testContract, q.Get("contractaddress"))
	assert.Equal(t, testWallet, q.Get("address"))
	assert.Equal(t, "latest", q.Get("tag"))
	assert.Equal(t, "secret", q.Get("apikey"))
}

func TestClient_TokenBalanceSingleAttempt(t *testing.T) {
	c, seen := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.TokenBalance(context.Background(), testWallet)
	require.Error(t, err)
	assert.Len(t, seen.all(), 1)
}

func TestClient_TokenBalanceDeadline(t *testing.T) {
	release := make(chan struct{})
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	started := time.Now()
	_, err := c.TokenBalance(ctx, testWallet)
	require.Error(t, err)
	assert.Less(t, time.Since(started), 5*time.Second)
}
