package midtrans

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"net/http"
	"strings"
	"testing"

	"github.com/tagihin/tagihin/internal/config"
	ierr "github.com/tagihin/tagihin/internal/errors"
	"github.com/tagihin/tagihin/internal/httpclient"
	"github.com/tagihin/tagihin/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testServerKey = "SB-Mid-server-testkey"

// stubHTTPClient returns a canned response for URLs ending in the
// registered suffix and records the last request.
type stubHTTPClient struct {
	responses map[string]*httpclient.Response
	err       error
	lastReq   *httpclient.Request
}

func (s *stubHTTPClient) Send(ctx context.Context, req *httpclient.Request) (*httpclient.Response, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	for suffix, resp := range s.responses {
		if strings.HasSuffix(req.URL, suffix) {
			return resp, nil
		}
	}
	return &httpclient.Response{StatusCode: http.StatusNotFound, Body: []byte("Not Found")}, nil
}

func newTestClient(t *testing.T, stub *stubHTTPClient) Client {
	t.Helper()
	cfg := config.GetDefaultConfig()
	cfg.Midtrans.ServerKey = testServerKey

	log, err := logger.NewLogger(cfg)
	require.NoError(t, err)

	return NewClientWithHTTP(cfg, stub, log)
}

func signNotification(orderID, statusCode, grossAmount string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + testServerKey))
	return hex.EncodeToString(sum[:])
}

func TestCreateSnapTransaction(t *testing.T) {
	stub := &stubHTTPClient{
		responses: map[string]*httpclient.Response{
			"/transactions": {
				StatusCode: http.StatusCreated,
				Body:       []byte(`{"token":"snap-token-123","redirect_url":"https://app.sandbox.midtrans.com/snap/v4/redirection/snap-token-123"}`),
			},
		},
	}
	client := newTestClient(t, stub)

	resp, err := client.CreateSnapTransaction(context.Background(), &SnapTransactionRequest{
		TransactionDetails: TransactionDetails{
			OrderID:     "SUB-inv-1-20260309143000123",
			GrossAmount: 39000,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "snap-token-123", resp.Token)
	assert.Contains(t, resp.RedirectURL, "snap-token-123")

	require.NotNil(t, stub.lastReq)
	assert.Equal(t, http.MethodPost, stub.lastReq.Method)
	assert.Equal(t, "https://app.sandbox.midtrans.com/snap/v1/transactions", stub.lastReq.URL)
	assert.True(t, strings.HasPrefix(stub.lastReq.Headers["Authorization"], "Basic "))
}

func TestCreateSnapTransactionMissingToken(t *testing.T) {
	stub := &stubHTTPClient{
		responses: map[string]*httpclient.Response{
			"/transactions": {
				StatusCode: http.StatusOK,
				Body:       []byte(`{}`),
			},
		},
	}
	client := newTestClient(t, stub)

	_, err := client.CreateSnapTransaction(context.Background(), &SnapTransactionRequest{
		TransactionDetails: TransactionDetails{OrderID: "SUB-x", GrossAmount: 1000},
	})
	require.Error(t, err)
	assert.True(t, ierr.IsGatewayUnavailable(err))
}

func TestCreateSnapTransactionGatewayError(t *testing.T) {
	stub := &stubHTTPClient{
		err: httpclient.NewError(http.StatusUnauthorized, []byte(`{"error_messages":["unauthorized"]}`)),
	}
	client := newTestClient(t, stub)

	_, err := client.CreateSnapTransaction(context.Background(), &SnapTransactionRequest{
		TransactionDetails: TransactionDetails{OrderID: "SUB-x", GrossAmount: 1000},
	})
	require.Error(t, err)
	assert.True(t, ierr.IsGatewayUnavailable(err))
}

func TestGetTransactionStatus(t *testing.T) {
	stub := &stubHTTPClient{
		responses: map[string]*httpclient.Response{
			"/SUB-inv-1-20260309143000123/status": {
				StatusCode: http.StatusOK,
				Body:       []byte(`{"order_id":"SUB-inv-1-20260309143000123","transaction_status":"settlement","status_code":"200","gross_amount":"39000.00"}`),
			},
		},
	}
	client := newTestClient(t, stub)

	status, err := client.GetTransactionStatus(context.Background(), "SUB-inv-1-20260309143000123")
	require.NoError(t, err)
	assert.Equal(t, "settlement", status.TransactionStatus)
	assert.Equal(t, "SUB-inv-1-20260309143000123", status.OrderID)

	assert.Equal(t, "https://api.sandbox.midtrans.com/v2/SUB-inv-1-20260309143000123/status", stub.lastReq.URL)
}

func TestGetTransactionStatusEmptyOrderID(t *testing.T) {
	client := newTestClient(t, &stubHTTPClient{})

	_, err := client.GetTransactionStatus(context.Background(), "")
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestVerifyNotificationSignature(t *testing.T) {
	client := newTestClient(t, &stubHTTPClient{})

	valid := &TransactionStatus{
		OrderID:      "SUB-inv-1-20260309143000123",
		StatusCode:   "200",
		GrossAmount:  "39000.00",
		SignatureKey: signNotification("SUB-inv-1-20260309143000123", "200", "39000.00"),
	}
	assert.True(t, client.VerifyNotificationSignature(valid))

	tampered := *valid
	tampered.GrossAmount = "1.00"
	assert.False(t, client.VerifyNotificationSignature(&tampered))

	forged := *valid
	forged.SignatureKey = "deadbeef"
	assert.False(t, client.VerifyNotificationSignature(&forged))

	assert.False(t, client.VerifyNotificationSignature(nil))
	assert.False(t, client.VerifyNotificationSignature(&TransactionStatus{}))
}

func TestVerifyNotificationSignatureNoServerKey(t *testing.T) {
	cfg := config.GetDefaultConfig()
	log, err := logger.NewLogger(cfg)
	require.NoError(t, err)
	client := NewClientWithHTTP(cfg, &stubHTTPClient{}, log)

	n := &TransactionStatus{
		OrderID:      "SUB-x",
		StatusCode:   "200",
		GrossAmount:  "1.00",
		SignatureKey: signNotification("SUB-x", "200", "1.00"),
	}
	assert.False(t, client.VerifyNotificationSignature(n))
}
