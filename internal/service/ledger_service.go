package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// LedgerService anchors a receipt's content hash on an external chain via a
// single eth_sendTransaction call against a JSON-RPC node. The hash rides
// in the transaction data field; the returned tx hash is stored with the
// expense as the tamper-evidence pointer.
type LedgerService struct {
	rpcURL     string
	account    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewLedgerService(rpcURL, account string, logger *zap.Logger) *LedgerService {
	return &LedgerService{
		rpcURL:     rpcURL,
		account:    account,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// Enabled reports whether a ledger node is configured.
func (s *LedgerService) Enabled() bool {
	return s.rpcURL != "" && s.account != ""
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
	ID      int           `json:"id"`
}

type rpcResponse struct {
	Result string `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Anchor records contentHash (hex, no prefix) on the ledger and returns the
// transaction hash.
func (s *LedgerService) Anchor(ctx context.Context, contentHash string) (string, error) {
	if !s.Enabled() {
		return "", fmt.Errorf("no ledger node configured")
	}

	payload := rpcRequest{
		JSONRPC: "2.0",
		Method:  "eth_sendTransaction",
		Params: []interface{}{map[string]string{
			"from": s.account,
			"to":   s.account,
			"data": "0x" + contentHash,
		}},
		ID: 1,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.rpcURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ledger request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("ledger node returned %d: %s", resp.StatusCode, data)
	}

	var result rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode ledger response: %w", err)
	}
	if result.Error != nil {
		return "", fmt.Errorf("ledger error %d: %s", result.Error.Code, result.Error.Message)
	}
	if result.Result == "" {
		return "", fmt.Errorf("ledger response missing transaction hash")
	}

	s.logger.Info("Receipt hash anchored", zap.String("tx_hash", result.Result))

	return result.Result, nil
}
