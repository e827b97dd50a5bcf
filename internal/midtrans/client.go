package midtrans

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/tagihin/tagihin/internal/config"
	ierr "github.com/tagihin/tagihin/internal/errors"
	"github.com/tagihin/tagihin/internal/httpclient"
	"github.com/tagihin/tagihin/internal/logger"
)

const requestTimeout = 15 * time.Second

// Client talks to the Midtrans Snap and core APIs.
type Client interface {
	// CreateSnapTransaction creates a hosted payment page transaction and
	// returns the snap token and redirect URL.
	CreateSnapTransaction(ctx context.Context, req *SnapTransactionRequest) (*SnapTransactionResponse, error)

	// GetTransactionStatus fetches the current status of a transaction by
	// order id from the core API.
	GetTransactionStatus(ctx context.Context, orderID string) (*TransactionStatus, error)

	// VerifyNotificationSignature reports whether a webhook notification
	// carries a valid signature for the configured server key.
	VerifyNotificationSignature(notification *TransactionStatus) bool
}

type client struct {
	cfg    config.MidtransConfig
	http   httpclient.Client
	logger *logger.Logger
}

// NewClient creates a Midtrans client using the configured server key and
// environment.
func NewClient(cfg *config.Configuration, log *logger.Logger) Client {
	return &client{
		cfg:    cfg.Midtrans,
		http:   httpclient.NewClientWithTimeout(requestTimeout),
		logger: log,
	}
}

// NewClientWithHTTP creates a Midtrans client on top of a caller-supplied
// HTTP client. Used by tests.
func NewClientWithHTTP(cfg *config.Configuration, httpClient httpclient.Client, log *logger.Logger) Client {
	return &client{
		cfg:    cfg.Midtrans,
		http:   httpClient,
		logger: log,
	}
}

func (c *client) authHeaders() map[string]string {
	// Midtrans uses basic auth with the server key as username and an
	// empty password.
	token := base64.StdEncoding.EncodeToString([]byte(c.cfg.ServerKey + ":"))
	return map[string]string{
		"Authorization": "Basic " + token,
		"Accept":        "application/json",
		"Content-Type":  "application/json",
	}
}

func (c *client) CreateSnapTransaction(ctx context.Context, req *SnapTransactionRequest) (*SnapTransactionResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to encode snap transaction request").
			Mark(ierr.ErrSystem)
	}

	c.logger.Debugw("creating midtrans snap transaction",
		"order_id", req.TransactionDetails.OrderID,
		"gross_amount", req.TransactionDetails.GrossAmount)

	resp, err := c.http.Send(ctx, &httpclient.Request{
		Method:  http.MethodPost,
		URL:     c.cfg.SnapBaseURL() + "/transactions",
		Headers: c.authHeaders(),
		Body:    body,
	})
	if err != nil {
		return nil, c.gatewayError(err, "failed to create snap transaction")
	}

	var snapResp SnapTransactionResponse
	if err := json.Unmarshal(resp.Body, &snapResp); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Midtrans returned an unexpected response").
			Mark(ierr.ErrGatewayUnavailable)
	}
	if snapResp.Token == "" {
		return nil, ierr.NewError("snap transaction response missing token").
			WithHint("Midtrans returned an unexpected response").
			Mark(ierr.ErrGatewayUnavailable)
	}
	return &snapResp, nil
}

func (c *client) GetTransactionStatus(ctx context.Context, orderID string) (*TransactionStatus, error) {
	if orderID == "" {
		return nil, ierr.NewError("order id is required").
			WithHint("Order ID is required").
			Mark(ierr.ErrValidation)
	}

	resp, err := c.http.Send(ctx, &httpclient.Request{
		Method:  http.MethodGet,
		URL:     fmt.Sprintf("%s/%s/status", c.cfg.APIBaseURL(), orderID),
		Headers: c.authHeaders(),
	})
	if err != nil {
		return nil, c.gatewayError(err, "failed to get transaction status")
	}

	var status TransactionStatus
	if err := json.Unmarshal(resp.Body, &status); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Midtrans returned an unexpected response").
			Mark(ierr.ErrGatewayUnavailable)
	}
	return &status, nil
}

// VerifyNotificationSignature checks the SHA-512 signature Midtrans attaches
// to every notification: sha512(order_id + status_code + gross_amount +
// server_key). Comparison is constant time.
func (c *client) VerifyNotificationSignature(notification *TransactionStatus) bool {
	if c.cfg.ServerKey == "" {
		return false
	}
	if notification == nil ||
		notification.OrderID == "" ||
		notification.StatusCode == "" ||
		notification.GrossAmount == "" ||
		notification.SignatureKey == "" {
		return false
	}

	payload := notification.OrderID + notification.StatusCode + notification.GrossAmount + c.cfg.ServerKey
	sum := sha512.Sum512([]byte(payload))
	expected := hex.EncodeToString(sum[:])

	return subtle.ConstantTimeCompare([]byte(expected), []byte(notification.SignatureKey)) == 1
}

func (c *client) gatewayError(err error, msg string) error {
	if httpErr, ok := err.(*httpclient.Error); ok {
		c.logger.Errorw(msg,
			"status_code", httpErr.StatusCode,
			"response", string(httpErr.Response))
		return ierr.WithError(httpErr).
			WithHint("Payment gateway rejected the request").
			WithReportableDetails(map[string]any{
				"status_code": httpErr.StatusCode,
			}).
			Mark(ierr.ErrGatewayUnavailable)
	}
	c.logger.Errorw(msg, "error", err)
	return ierr.WithError(err).
		WithHint("Payment gateway is unreachable").
		Mark(ierr.ErrGatewayUnavailable)
}
