package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/go-resty/resty/v2"
)

const defaultBaseURL = "https://api.telegram.org"

// Client calls the Telegram Bot API for a single bot token.
type Client struct {
	client           *resty.Client
	baseURL          string
	token            string
	maxRetryAttempts uint
}

// NewClient creates a new Client.
func NewClient(token string) *Client {
	return &Client{
		client:           resty.New(),
		baseURL:          defaultBaseURL,
		token:            token,
		maxRetryAttempts: 3,
	}
}

func (c *Client) methodURL(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
}

// SendMessage sends a Markdown-formatted text message.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) error {
	var result apiResponse
	res, err := c.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"chat_id":    strconv.FormatInt(chatID, 10),
			"text":       text,
			"parse_mode": "Markdown",
		}).
		SetResult(&result).
		Post(c.methodURL("sendMessage"))
	if err != nil {
		return fmt.Errorf("client.R.Post > %w", err)
	}
	if res.StatusCode() != http.StatusOK || !result.OK {
		return fmt.Errorf("response error %d: %s", res.StatusCode(), string(res.Body()))
	}
	return nil
}

// SendDocument uploads a file to the chat.
func (c *Client) SendDocument(ctx context.Context, chatID int64, filePath string, caption string) error {
	var result apiResponse
	res, err := c.client.R().
		SetContext(ctx).
		SetFile("document", filePath).
		SetFormData(map[string]string{
			"chat_id": strconv.FormatInt(chatID, 10),
			"caption": caption,
		}).
		SetResult(&result).
		Post(c.methodURL("sendDocument"))
	if err != nil {
		return fmt.Errorf("client.R.Post > %w", err)
	}
	if res.StatusCode() != http.StatusOK || !result.OK {
		return fmt.Errorf("response error %d: %s", res.StatusCode(), string(res.Body()))
	}
	return nil
}

// GetUpdates long-polls for updates after offset. Transient network and
// server errors are retried with backoff; client errors are not.
func (c *Client) GetUpdates(ctx context.Context, offset int64, timeoutSeconds int) ([]Update, error) {
	var result []Update
	if err := retry.Do(
		func() error {
			updates, err := c.getUpdates(ctx, offset, timeoutSeconds)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			result = updates
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.maxRetryAttempts+1),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) getUpdates(ctx context.Context, offset int64, timeoutSeconds int) ([]Update, error) {
	res, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"offset":  strconv.FormatInt(offset, 10),
			"timeout": strconv.Itoa(timeoutSeconds),
		}).
		Get(c.methodURL("getUpdates"))
	if err != nil {
		return nil, fmt.Errorf("client.R.Get > %w", err)
	}
	if res.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("response error %d: %s", res.StatusCode(), string(res.Body()))
	}

	var response updatesResponse
	if err := json.Unmarshal(res.Body(), &response); err != nil {
		return nil, fmt.Errorf("json.Unmarshal > %w", err)
	}
	if !response.OK {
		return nil, fmt.Errorf("response error %d: %s", response.ErrorCode, response.Description)
	}
	return response.Result, nil
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	if strings.Contains(errStr, "json.Unmarshal") || strings.Contains(errStr, "unexpected end of JSON input") {
		return true
	}
	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "i/o timeout") {
		return true
	}
	if strings.Contains(errStr, "response error 5") {
		return true
	}
	if strings.Contains(errStr, "response error 429") {
		return true
	}
	return false
}
