package live

import (
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gorilla/websocket"
)

const (
	sendBuffer   = 16
	pingPeriod   = 10 * time.Second // 10秒ごとにPingを送信
	pongWait     = 60 * time.Second // Pong応答の読み取りデッドライン
	writeTimeout = 10 * time.Second
)

// Client はWebSocket接続1本です。書き込みはwritePumpの単一ゴルーチンに集約し、
// 他のゴルーチンからはsendチャネル経由でしか触りません。
type Client struct {
	DeviceID string

	conn      *websocket.Conn
	send      chan map[string]interface{}
	hub       *Hub
	logger    *zap.Logger
	closeOnce sync.Once
	done      chan struct{}
}

func NewClient(deviceID string, conn *websocket.Conn, hub *Hub, logger *zap.Logger) *Client {
	return &Client{
		DeviceID: deviceID,
		conn:     conn,
		send:     make(chan map[string]interface{}, sendBuffer),
		hub:      hub,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Send はフレームを送信キューに積みます。キューが一杯なら捨てます（非ブロッキング）。
func (c *Client) Send(frame map[string]interface{}) {
	select {
	case c.send <- frame:
	case <-c.done:
	default:
		c.logger.Warn("send buffer full, frame dropped", zap.String("deviceID", c.DeviceID))
	}
}

// Close は接続を閉じてポンプを止めます。複数回呼んでも安全です。
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// Run は読み書きのポンプを起動し、どちらかが落ちるまでブロックします。
func (c *Client) Run() {
	go c.writePump()
	c.readPump()
}

// readPump は受信ループです。クライアントからの入力は現状Pong/Closeだけですが、
// 読み続けないとコントロールフレームが処理されません。
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.Close()
	}()
	c.conn.SetReadLimit(1024)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait)) // Pong受信でデッドラインを更新
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info("websocket closed", zap.String("deviceID", c.DeviceID), zap.Error(err))
			}
			return
		}
	}
}

// writePump は送信キューとPingを1本のゴルーチンで処理します。
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()
	for {
		select {
		case frame := <-c.send:
			payload, err := json.Marshal(frame)
			if err != nil {
				c.logger.Error("failed to marshal frame", zap.Error(err))
				continue
			}
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				c.logger.Info("write failed, dropping client", zap.String("deviceID", c.DeviceID), zap.Error(err))
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}
