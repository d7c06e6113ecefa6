package models

// EmergencyRequest は緊急ボタン発報のリクエストです。
type EmergencyRequest struct {
	DeviceID string `json:"device_id"`
	Reason   string `json:"reason"`
}

// BountyRequest は賞金設定のリクエストです。
type BountyRequest struct {
	TargetID string `json:"target_id" binding:"required"`
	Points   int    `json:"points" binding:"required"`
	Reason   string `json:"reason"`
}

// ModTargetRequest はモデレーター操作（解放・キック・権限付与など）の対象指定です。
type ModTargetRequest struct {
	DeviceID string `json:"device_id" binding:"required"`
}

// ForceRoleRequest はロール強制変更のリクエストです。
type ForceRoleRequest struct {
	DeviceID string `json:"device_id" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// AnnounceRequest は全体アナウンスのリクエストです。
type AnnounceRequest struct {
	Text string `json:"text" binding:"required"`
}

// MessageRequest はゲーム内チャット送信のリクエストです。
type MessageRequest struct {
	Scope  string `json:"scope" binding:"required"`
	Target string `json:"target"`
	Text   string `json:"text" binding:"required"`
}

// SightingRequest は目撃報告のメタデータです。写真本体はmultipartで別途受け取ります。
type SightingRequest struct {
	TargetID string `json:"target_id" binding:"required"`
}

// EscapeRequest は脱出申告のリクエストです。BeaconIDは任意です。
type EscapeRequest struct {
	BeaconID string `json:"beacon_id"`
}
