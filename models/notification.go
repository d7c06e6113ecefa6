package models

import "time"

// Notification はプレイヤー個人宛ての通知1件です。
// トラッカーの小型ディスプレイに表示するためMessageは短く保ちます。
type Notification struct {
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
