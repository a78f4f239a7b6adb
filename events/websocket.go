package events

import (
	"context"
	"encoding/json"

	"github.com/ethereum/go-ethereum/log"
	"github.com/gorilla/websocket"
	"github.com/reactorlabs/pumpfun-sniper/params"
	"github.com/reactorlabs/pumpfun-sniper/types"
)

// WebSocketSubscriber maintains a JSON-RPC logsSubscribe feed scoped to
// a single program id.
type WebSocketSubscriber struct {
	URL       string
	ProgramID types.PublicKey
}

// Name identifies this subscriber for logging.
func (w *WebSocketSubscriber) Name() string { return "websocket" }

type subscribeRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int           `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type logsSubscribeFilter struct {
	Mentions []string `json:"mentions"`
}

type logsSubscribeOpts struct {
	Commitment string `json:"commitment"`
}

type logsNotification struct {
	Params struct {
		Result struct {
			Value struct {
				Mint      string `json:"mint"`
				Developer string `json:"developer"`
			} `json:"value"`
		} `json:"result"`
	} `json:"params"`
}

// Run implements Subscriber: connect, subscribe, decode notifications,
// reconnect with linear backoff on any connection-level failure.
// Transient network errors never cause this loop to exit; it exits only
// when ctx is cancelled or push stops accepting events.
func (w *WebSocketSubscriber) Run(ctx context.Context, push func(types.TokenEvent) bool) {
	backoff := newLinearBackoff(params.WebSocketBackoffSeed, params.BackoffCeiling)

	for {
		if ctx.Err() != nil {
			return
		}
		if !w.runOnce(ctx, push) {
			return
		}
		backoff.sleep(ctx)
	}
}

// runOnce performs a single connect-subscribe-read cycle. It returns
// false if the subscriber should stop entirely (consumer gone), true if
// it should reconnect after backoff.
func (w *WebSocketSubscriber) runOnce(ctx context.Context, push func(types.TokenEvent) bool) bool {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, w.URL, nil)
	if err != nil {
		log.Warn("WebSocket connection failed", "url", w.URL, "err", err)
		return true
	}
	defer conn.Close()

	log.Info("WebSocket connected", "url", w.URL)

	req := subscribeRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "logsSubscribe",
		Params: []interface{}{
			logsSubscribeFilter{Mentions: []string{w.ProgramID.String()}},
			logsSubscribeOpts{Commitment: "processed"},
		},
	}
	if err := conn.WriteJSON(req); err != nil {
		log.Warn("Failed to send logsSubscribe", "err", err)
		return true
	}

	for {
		if ctx.Err() != nil {
			return false
		}
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			log.Warn("WebSocket read error", "err", err)
			return true
		}

		switch msgType {
		case websocket.TextMessage:
			ev, ok := parseLogsNotification(data)
			if !ok {
				continue
			}
			if !push(ev) {
				log.Warn("Receiver gone, closing websocket listener")
				return false
			}
		case websocket.BinaryMessage, websocket.PingMessage, websocket.PongMessage:
			// ignored; gorilla/websocket answers pings with pongs via the
			// default ping handler.
		case websocket.CloseMessage:
			return true
		}
	}
}

// parseLogsNotification extracts {mint, developer} from a logsSubscribe
// notification frame. Missing or unparseable fields silently drop the
// message.
func parseLogsNotification(raw []byte) (types.TokenEvent, bool) {
	var notif logsNotification
	if err := json.Unmarshal(raw, &notif); err != nil {
		return types.TokenEvent{}, false
	}

	mintStr := notif.Params.Result.Value.Mint
	devStr := notif.Params.Result.Value.Developer
	if mintStr == "" || devStr == "" {
		return types.TokenEvent{}, false
	}

	mint, err := types.ParsePublicKey(mintStr)
	if err != nil {
		return types.TokenEvent{}, false
	}
	dev, err := types.ParsePublicKey(devStr)
	if err != nil {
		return types.TokenEvent{}, false
	}

	return types.TokenEvent{Mint: mint, Developer: dev, Source: types.SourceWebSocket}, true
}
