package models

import "time"

// Event は監査・履歴用のイベントログ1件です。IDは単調増加、
// ログ全体は上限件数を超えた分だけ古い順に破棄されます。
type Event struct {
	ID        uint64                 `json:"id"`
	Type      string                 `json:"type"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}
