package models

import "time"

// メッセージの宛先種別
const (
	MessageToAll    = "all"
	MessageToTeam   = "team"
	MessageToDevice = "device"
)

// Message はゲーム内チャットの1件です。
type Message struct {
	ID       uint64    `json:"id"`
	From     string    `json:"from"`
	FromName string    `json:"from_name"`
	Scope    string    `json:"scope"`            // all / team / device
	Target   string    `json:"target,omitempty"` // scope=teamならチーム名、deviceならDeviceID
	Text     string    `json:"text"`
	IsAdmin  bool      `json:"is_admin"`
	SentAt   time.Time `json:"sent_at"`
}
