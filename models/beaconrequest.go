package models

// BeaconRequest はビーコンの登録・更新リクエストです。更新時はnilのフィールドを変更しません。
type BeaconRequest struct {
	ID            string  `json:"id"`
	Name          *string `json:"name"`
	Active        *bool   `json:"active"`
	RSSIThreshold *int    `json:"rssi_threshold"`
}
