package hunt

import "time"

// Options はコーディネータの動作パラメータです。テストでは時計や
// クールダウン長を差し替えて決定的に動かします。
type Options struct {
	Now           func() time.Time // nilならtime.Now
	MaxPlayers    int
	CountdownUnit time.Duration // countdown_sec 1あたりの実時間。既定は1秒

	CaptureCooldown  time.Duration // 捕獲試行の間隔
	SightingCooldown time.Duration // 同一ペアの目撃報告の間隔
	OfflineTimeout   time.Duration // 最終ping からこの時間でオフライン扱い

	NotificationCap int // プレイヤー毎の未読通知の上限（古い順に破棄）
	EventCap        int // イベントログの上限
	MessageCap      int // チャットログの上限
	PollDrain       int // ping応答1回で配送する通知の最大件数

	MinDurationMin  int
	MaxDurationMin  int
	MinCountdownSec int
	MaxCountdownSec int
}

// DefaultOptions は実運用の既定値です。
func DefaultOptions() Options {
	return Options{
		Now:              time.Now,
		MaxPlayers:       200,
		CountdownUnit:    time.Second,
		CaptureCooldown:  10 * time.Second,
		SightingCooldown: 60 * time.Second,
		OfflineTimeout:   45 * time.Second,
		NotificationCap:  20,
		EventCap:         500,
		MessageCap:       500,
		PollDrain:        5,
		MinDurationMin:   1,
		MaxDurationMin:   240,
		MinCountdownSec:  0,
		MaxCountdownSec:  120,
	}
}

func (o *Options) fillDefaults() {
	d := DefaultOptions()
	if o.Now == nil {
		o.Now = d.Now
	}
	if o.MaxPlayers <= 0 {
		o.MaxPlayers = d.MaxPlayers
	}
	if o.CountdownUnit <= 0 {
		o.CountdownUnit = d.CountdownUnit
	}
	if o.CaptureCooldown <= 0 {
		o.CaptureCooldown = d.CaptureCooldown
	}
	if o.SightingCooldown <= 0 {
		o.SightingCooldown = d.SightingCooldown
	}
	if o.OfflineTimeout <= 0 {
		o.OfflineTimeout = d.OfflineTimeout
	}
	if o.NotificationCap <= 0 {
		o.NotificationCap = d.NotificationCap
	}
	if o.EventCap <= 0 {
		o.EventCap = d.EventCap
	}
	if o.MessageCap <= 0 {
		o.MessageCap = d.MessageCap
	}
	if o.PollDrain <= 0 {
		o.PollDrain = d.PollDrain
	}
	if o.MinDurationMin <= 0 {
		o.MinDurationMin = d.MinDurationMin
	}
	if o.MaxDurationMin <= 0 {
		o.MaxDurationMin = d.MaxDurationMin
	}
	if o.MaxCountdownSec <= 0 {
		o.MaxCountdownSec = d.MaxCountdownSec
	}
}
