package models

// Beacon はセーフゾーンを形成するビーコン1基の定義です。
// RSSIThreshold が0以外の場合、全体設定のしきい値より優先されます。
type Beacon struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Active        bool   `json:"active"`
	RSSIThreshold int    `json:"rssi_threshold,omitempty"`
}
