package models

// TrackerPingRequest はトラッカー端末の定期pingです。
// RSSIはdBm（負の値・大きいほど近い）。PeerRSSIのキーは対向機のDeviceID、
// BeaconRSSIのキーはビーコンID。InSafeZoneは自己申告モード時のみ参照されます。
type TrackerPingRequest struct {
	DeviceID   string         `json:"device_id" binding:"required"`
	PeerRSSI   map[string]int `json:"peer_rssi"`
	BeaconRSSI map[string]int `json:"beacon_rssi"`
	InSafeZone *bool          `json:"in_safe_zone"`
}
