package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTelegramBaseURL = "https://api.telegram.org"

var _ Channel = (*Telegram)(nil)

// Telegram delivers messages via the Bot API sendMessage call.
type Telegram struct {
	botToken   string
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

func NewTelegram(botToken string, httpClient *http.Client, timeout time.Duration) *Telegram {
	return &Telegram{
		botToken:   botToken,
		baseURL:    defaultTelegramBaseURL,
		httpClient: httpClient,
		timeout:    timeout,
	}
}

func (t *Telegram) Send(ctx context.Context, recipient, text string) error {
	timeoutCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	form := url.Values{}
	form.Set("chat_id", strings.TrimSpace(recipient))
	form.Set("text", text)
	form.Set("parse_mode", "Markdown")

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.botToken)
	req, err := http.NewRequestWithContext(timeoutCtx, "POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return &PermanentError{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return &TransientError{Err: fmt.Errorf("failed to send message: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	statusErr := fmt.Errorf("HTTP error: %d %s: %s", resp.StatusCode, resp.Status, strings.TrimSpace(string(body)))

	// 429 and server-side failures are retryable; other client errors
	// (bad chat ID, revoked token) are not.
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return &TransientError{Err: statusErr}
	}
	return &PermanentError{Err: statusErr}
}
