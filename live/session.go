package live

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const sessionTTL = 24 * time.Hour

// sessionInfo はRedisに保存するセッションの中身です。
type sessionInfo struct {
	DeviceID string `json:"deviceID"`
}

// GenerateAndStoreSessionID は新しいセッションIDを発行してRedisに保存します。
// クライアントは切断後このIDで再接続し、未配送の通知のリプレイを受けます。
func GenerateAndStoreSessionID(ctx context.Context, deviceID string, rdb *redis.Client, logger *zap.Logger) (string, error) {
	sessionID := uuid.New().String()
	infoJSON, err := json.Marshal(sessionInfo{DeviceID: deviceID})
	if err != nil {
		logger.Error("Error encoding session info", zap.Error(err))
		return "", err
	}
	if err := rdb.Set(ctx, "session:"+sessionID, infoJSON, sessionTTL).Err(); err != nil {
		logger.Error("Error storing session info in Redis", zap.Error(err))
		return "", err
	}
	return sessionID, nil
}

// ValidateSessionID はセッションIDを検証し、対応するDeviceIDを返します。
// 無効・期限切れは空文字を返します。
func ValidateSessionID(ctx context.Context, rdb *redis.Client, sessionID string, logger *zap.Logger) string {
	if sessionID == "" {
		return ""
	}
	infoJSON, err := rdb.Get(ctx, "session:"+sessionID).Result()
	if err != nil {
		logger.Warn("Failed to retrieve session info", zap.Error(err))
		return ""
	}
	var info sessionInfo
	if err := json.Unmarshal([]byte(infoJSON), &info); err != nil {
		logger.Error("Failed to decode session info", zap.Error(err))
		return ""
	}
	return info.DeviceID
}

// DropSessionID は使い終わったセッションIDを破棄します。
func DropSessionID(ctx context.Context, rdb *redis.Client, sessionID string) {
	if sessionID != "" {
		rdb.Del(ctx, "session:"+sessionID)
	}
}
