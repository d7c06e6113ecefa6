package models

// LoginRequest は端末ログイン時のリクエストボディです。
type LoginRequest struct {
	DeviceID string `json:"device_id" binding:"required"`
	Name     string `json:"name"`
}

// AdminLoginRequest は管理者ログイン時のリクエストボディです。
type AdminLoginRequest struct {
	Password string `json:"password" binding:"required"`
}
