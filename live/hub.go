package live

import (
	"sync"

	"go.uber.org/zap"
)

// Hub はライブ配信中のWebSocketクライアントをDeviceIDで束ねます。
// hunt.Publisherの実装で、送信は各クライアントのバッファ付きチャネルへの
// 非ブロッキング投入です。遅いクライアントには古いフレームを諦めてもらいます。
type Hub struct {
	mu      sync.Mutex
	clients map[string]*Client
	logger  *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		logger:  logger,
	}
}

// Register は接続済みクライアントを登録します。同じ端末の旧接続は閉じられます。
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	old := h.clients[c.DeviceID]
	h.clients[c.DeviceID] = c
	h.mu.Unlock()
	if old != nil {
		old.Close()
	}
	h.logger.Info("live client registered", zap.String("deviceID", c.DeviceID))
}

// Unregister は切断されたクライアントを外します。再接続で別インスタンスに
// 置き換わっている場合は何もしません。
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if h.clients[c.DeviceID] == c {
		delete(h.clients, c.DeviceID)
	}
	h.mu.Unlock()
	h.logger.Info("live client removed", zap.String("deviceID", c.DeviceID))
}

// PushToDevice は個人宛てフレームを投入します。未接続なら黙って捨てます
// （通知本体はコーディネータ側のキューが保持しています）。
func (h *Hub) PushToDevice(deviceID string, frame map[string]interface{}) {
	h.mu.Lock()
	c := h.clients[deviceID]
	h.mu.Unlock()
	if c != nil {
		c.Send(frame)
	}
}

// PushAll は全接続クライアントに同じフレームを投入します。
func (h *Hub) PushAll(frame map[string]interface{}) {
	h.mu.Lock()
	targets := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.Unlock()
	for _, c := range targets {
		c.Send(frame)
	}
}
