package models

import "time"

// Bounty は特定プレイヤーの捕獲に対する賞金です。
// 対象が捕獲された時点で捕獲者に支払われ、削除されます。
type Bounty struct {
	ID       string    `json:"id"`
	TargetID string    `json:"target_id"`
	Points   int       `json:"points"`
	Reason   string    `json:"reason,omitempty"`
	PlacedBy string    `json:"placed_by"`
	PlacedAt time.Time `json:"placed_at"`
}
