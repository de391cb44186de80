package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTelegram_Send(t *testing.T) {
	var gotPath string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"ok":true,"result":{}}`))
	}))
	defer srv.Close()

	tg := NewTelegram("123:abc", "42", time.Second).WithBaseURL(srv.URL)
	require.NoError(t, tg.Send(context.Background(), "buy opportunity for BTCUSDT"))
	assert.Equal(t, "/bot123:abc/sendMessage", gotPath)
	assert.Equal(t, "42", gotBody["chat_id"])
	assert.Equal(t, "buy opportunity for BTCUSDT", gotBody["text"])
}

func TestTelegram_SendFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"description":"Bad Request: chat not found"}`))
	}))
	defer srv.Close()

	err := NewTelegram("123:abc", "42", time.Second).WithBaseURL(srv.URL).Send(context.Background(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")

	srv.Close()
	err = NewTelegram("123:abc", "42", time.Second).WithBaseURL(srv.URL).Send(context.Background(), "hi")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "123:abc")
}

func TestBestEffort_Notify(t *testing.T) {
	ok := NewBestEffort(NotifierFunc(func(ctx context.Context, text string) error {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return nil
	}))
	assert.True(t, ok.Notify(context.Background(), "hi"))

	failed := NewBestEffort(NotifierFunc(func(ctx context.Context, text string) error {
		return errors.New("network down")
	}))
	assert.NotPanics(t, func() {
		assert.False(t, failed.Notify(context.Background(), "hi"))
	})

	// 慢通道被超时打断
	slow := NewBestEffort(NotifierFunc(func(ctx context.Context, text string) error {
		<-ctx.Done()
		return ctx.Err()
	}), WithTimeout(10*time.Millisecond))
	assert.False(t, slow.Notify(context.Background(), "hi"))

	var nilNotifier *BestEffort
	assert.False(t, nilNotifier.Notify(context.Background(), "hi"))
}

func TestMulti(t *testing.T) {
	var buf bytes.Buffer
	failing := NotifierFunc(func(ctx context.Context, text string) error {
		return errors.New("boom")
	})

	err := Multi(failing, Console(&buf)).Send(context.Background(), "hello")
	assert.EqualError(t, err, "boom")
	assert.Equal(t, "hello\n", buf.String())

	assert.NoError(t, Multi(Console(&buf)).Send(context.Background(), "again"))
}
