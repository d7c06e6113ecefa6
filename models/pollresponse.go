package models

// PollResponse はトラッカーping応答のワイヤーフォーマットです。
// ファームウェアはフィールドを宣言順で解釈するため、この並びが正式な契約です。
// 特にconsent系フィールドは必ずrole系フィールドより後に置きます
// （旧ファームウェアでroleとconsentの解釈順が入れ替わるバグがあったため、
// 並び順はデコードテストで固定しています）。
type PollResponse struct {
	Phase         string         `json:"phase"`
	Status        string         `json:"status"`
	Role          string         `json:"role"`
	Name          string         `json:"name"`
	InSafeZone    bool           `json:"in_safe_zone"`
	Team          *string        `json:"team"` // 未所属はnull
	Notifications []Notification `json:"notifications"`
	Settings      Settings       `json:"settings"`
	ActiveBeacons []string       `json:"active_beacons"`
	GameMode      string         `json:"game_mode"`
	GameModeName  string         `json:"game_mode_name"`
	RemainingSec  int            `json:"remaining_sec"`
	Emergency     bool           `json:"emergency"`
	EmergencyBy   string         `json:"emergency_by"`
	InfectionMode bool           `json:"infection_mode"`
	PhotoRequired bool           `json:"photo_required"`
	HasPhotoOf    []string       `json:"has_photo_of"`
	NearestHint   string         `json:"nearest_hint"`
	ProximityWarn bool           `json:"proximity_warn"`
	ConsentPhys   bool           `json:"consent_physical"`
	ConsentPhoto  bool           `json:"consent_photo"`
	ConsentLoc    bool           `json:"consent_location"`
	ConsentBadge  string         `json:"consent_badge"`
	Ready         bool           `json:"ready"`
}
