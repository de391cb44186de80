package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const telegramBaseURL = "https://api.telegram.org"

var _ Notifier = (*Telegram)(nil)

// Telegram 通过 Bot API 的 sendMessage 发送纯文本消息
type Telegram struct {
	baseURL string
	token   string
	chatId  string
	client  *http.Client
}

func NewTelegram(token, chatId string, timeout time.Duration) *Telegram {
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}
	return &Telegram{
		baseURL: telegramBaseURL,
		token:   token,
		chatId:  chatId,
		client:  &http.Client{Timeout: timeout},
	}
}

// WithBaseURL 替换 Bot API 地址, 用于自建 bot api server 或测试
func (t *Telegram) WithBaseURL(baseURL string) *Telegram {
	t.baseURL = baseURL
	return t
}

type telegramResp struct {
	Ok          bool   `json:"ok"`
	Description string `json:"description"`
}

func (t *Telegram) Send(ctx context.Context, text string) error {
	body, err := json.Marshal(map[string]string{
		"chat_id": t.chatId,
		"text":    text,
	})
	if err != nil {
		return fmt.Errorf("telegram: marshal payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("telegram: create request failed")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		// url.Error 中的地址带有 token, 不能写进日志
		var uErr *url.Error
		if errors.As(err, &uErr) {
			err = uErr.Err
		}
		return fmt.Errorf("telegram: send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var res telegramResp
	_ = json.Unmarshal(respBody, &res)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !res.Ok {
		return fmt.Errorf("telegram: unexpected status %d: %s", resp.StatusCode, res.Description)
	}
	return nil
}
