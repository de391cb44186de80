package coingecko

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KNICEX/pairwatch/internal/service/instrument"
	"github.com/KNICEX/pairwatch/internal/service/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, now time.Time) *Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(
		WithBaseURL(srv.URL),
		WithHTTPClient(srv.Client()),
		WithClock(func() time.Time { return now }),
	)
}

func TestClient_Fetch(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	var gotPath, gotQuery string
	cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"prices": [[1699999800000, 101.5], [1699913000000, 90], [1699999500000, 100.25]],
			"total_volumes": [[1699999800000, 2500000], [1699999500000, 1.5e6]]
		}`))
	}, now)

	snap, err := cli.Fetch(context.Background(), instrument.Instrument{Symbol: "BTCUSDT", DataId: "bitcoin"}, time.Hour)
	require.NoError(t, err)

	assert.Equal(t, "/coins/bitcoin/market_chart", gotPath)
	assert.Equal(t, "vs_currency=usd&days=1", gotQuery)
	assert.Equal(t, now, snap.FetchedAt)
	assert.Equal(t, "BTCUSDT", snap.Instrument.Symbol)

	// 窗口之外的点被丢弃, 其余按时间排序
	require.Len(t, snap.Samples, 2)
	assert.Equal(t, "100.25", snap.Samples[0].Price.String())
	assert.Equal(t, "1500000", snap.Samples[0].Volume.String())
	assert.Equal(t, "101.5", snap.Samples[1].Price.String())
	assert.Equal(t, "2500000", snap.Samples[1].Volume.String())
}

func TestClient_FetchErrors(t *testing.T) {
	testCases := []struct {
		name    string
		handler http.HandlerFunc
		wantErr error
	}{
		{
			name: "限流",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
			wantErr: market.ErrDataUnavailable,
		},
		{
			name: "币种不存在",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"error":"coin not found"}`))
			},
			wantErr: market.ErrDataUnavailable,
		},
		{
			name: "响应格式错误",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"prices": "oops"}`))
			},
			wantErr: market.ErrMalformedResponse,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cli := newTestClient(t, tc.handler, time.Now())
			_, err := cli.Fetch(context.Background(), instrument.Instrument{Symbol: "BTCUSDT"}, time.Hour)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestClient_FetchNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	cli := NewClient(WithBaseURL(srv.URL))
	_, err := cli.Fetch(context.Background(), instrument.Instrument{Symbol: "BTCUSDT"}, time.Hour)
	assert.ErrorIs(t, err, market.ErrDataUnavailable)
}

func TestClient_FetchDefaultsToLowercaseSymbol(t *testing.T) {
	var gotPath string
	cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"prices": [], "total_volumes": []}`))
	}, time.Now())

	ins, err := instrument.Parse("bitcoin")
	require.NoError(t, err)
	_, err = cli.Fetch(context.Background(), ins, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "/coins/bitcoin/market_chart", gotPath)

	_, err = cli.Fetch(context.Background(), instrument.Instrument{Symbol: "ETHEREUM"}, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "/coins/ethereum/market_chart", gotPath)
}
