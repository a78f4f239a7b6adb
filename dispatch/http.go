package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	solana "github.com/dfuse-io/solana-go"
)

type jsonRPCRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type jsonRPCResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func postJSONRPC(ctx context.Context, client *http.Client, url string, req jsonRPCRequest) (jsonRPCResponse, error) {
	var out jsonRPCResponse

	body, err := json.Marshal(req)
	if err != nil {
		return out, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return out, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(httpReq)
	if err != nil {
		return out, fmt.Errorf("post: %w", err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, fmt.Errorf("decode response (status %s): %w", resp.Status, err)
	}
	if out.Error != nil {
		return out, fmt.Errorf("rpc error %d: %s", out.Error.Code, out.Error.Message)
	}
	return out, nil
}

// BundleSender submits the transaction to a Jito-style bundle relay via
// its sendBundle method. Bundle relays return a bundle id rather than a
// transaction signature, but bundle ids and signatures are both
// base58-encoded 64-byte values, so the returned id parses directly as
// a solana.Signature.
type BundleSender struct {
	url    string
	client *http.Client
}

// NewBundleSender builds a Sender that POSTs to a bundle relay url.
func NewBundleSender(url string, client *http.Client) *BundleSender {
	if client == nil {
		client = http.DefaultClient
	}
	return &BundleSender{url: url, client: client}
}

func (s *BundleSender) Name() string { return "bundle" }

func (s *BundleSender) Send(ctx context.Context, _ *solana.Transaction, encoded string) (solana.Signature, error) {
	req := jsonRPCRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "sendBundle",
		Params:  []any{[]string{encoded}},
	}

	resp, err := postJSONRPC(ctx, s.client, s.url, req)
	if err != nil {
		return solana.Signature{}, err
	}

	var bundleIDs []string
	if err := json.Unmarshal(resp.Result, &bundleIDs); err != nil || len(bundleIDs) == 0 {
		return solana.Signature{}, fmt.Errorf("bundle sender: unexpected result %s", resp.Result)
	}

	sig, err := solana.SignatureFromBase58(bundleIDs[0])
	if err != nil {
		return solana.Signature{}, fmt.Errorf("bundle sender: parse bundle id: %w", err)
	}
	return sig, nil
}

// GenericHTTPSender submits the transaction via a plain JSON-RPC
// sendTransaction call, an alternate HTTP dispatch path alongside the
// bundle relay and primary RPC sender.
type GenericHTTPSender struct {
	url    string
	client *http.Client
}

// NewGenericHTTPSender builds a Sender that POSTs sendTransaction to url.
func NewGenericHTTPSender(url string, client *http.Client) *GenericHTTPSender {
	if client == nil {
		client = http.DefaultClient
	}
	return &GenericHTTPSender{url: url, client: client}
}

func (s *GenericHTTPSender) Name() string { return "http" }

func (s *GenericHTTPSender) Send(ctx context.Context, _ *solana.Transaction, encoded string) (solana.Signature, error) {
	req := jsonRPCRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "sendTransaction",
		Params: []any{
			encoded,
			map[string]any{"skipPreflight": true, "encoding": "base64"},
		},
	}

	resp, err := postJSONRPC(ctx, s.client, s.url, req)
	if err != nil {
		return solana.Signature{}, err
	}

	var sigStr string
	if err := json.Unmarshal(resp.Result, &sigStr); err != nil {
		return solana.Signature{}, fmt.Errorf("http sender: unexpected result %s", resp.Result)
	}

	sig, err := solana.SignatureFromBase58(sigStr)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("http sender: parse signature: %w", err)
	}
	return sig, nil
}
