package handlers

import (
	"context"
	"net/http"

	"huntserver/auth"
	"huntserver/hunt"
	"huntserver/live"

	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"
)

// HandleConnections はライブ配信用WebSocketへのアップグレードを行います。
// 認証はクエリのtoken、切断からの復帰はSessionIDヘッダーで行い、
// 復帰時は未配送の通知だけをリプレイします（過去のイベントは再送しません）。
func HandleConnections(c *gin.Context, coord *hunt.Coordinator, hub *live.Hub, rdb *redis.Client, upgrader websocket.Upgrader, logger *zap.Logger) {
	ctx := c.Request.Context()

	deviceID := ""
	if tokenString := c.Query("token"); tokenString != "" {
		claims, err := auth.ParseToken(tokenString)
		if err != nil {
			logger.Warn("WebSocket認証失敗", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		deviceID = claims.DeviceID
	}

	// セッションIDによる再接続。トークンより先に確認し、旧セッションは破棄して発行し直す
	oldSessionID := c.GetHeader("SessionID")
	if resumed := live.ValidateSessionID(ctx, rdb, oldSessionID, logger); resumed != "" {
		deviceID = resumed
		live.DropSessionID(ctx, rdb, oldSessionID)
	}
	if deviceID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if _, err := coord.Get(deviceID); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown player"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error("Error upgrading WebSocket", zap.Error(err))
		return
	}

	client := live.NewClient(deviceID, conn, hub, logger)
	hub.Register(client)

	// 新しいセッションIDを発行してクライアントに知らせる
	sessionID, err := live.GenerateAndStoreSessionID(context.Background(), deviceID, rdb, logger)
	if err == nil {
		client.Send(map[string]interface{}{
			"type":      "session",
			"sessionID": sessionID,
			"deviceID":  deviceID,
		})
	}

	// 未配送の通知のリプレイ。キューの消費はポーリング/通知取得側に任せる
	for _, n := range coord.PendingNotifications(deviceID) {
		client.Send(map[string]interface{}{
			"type":    "notification",
			"kind":    n.Type,
			"message": n.Message,
		})
	}

	go client.Run()
}
