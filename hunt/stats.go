package hunt

import (
	"context"
	"sync"

	"huntserver/models"
)

// Achievement は実績1件です。
type Achievement struct {
	DeviceID string `json:"device_id"`
	Key      string `json:"key"`
	Label    string `json:"label"`
}

// Stats はイベントログを購読して集計する観測者です。状態機械の経路には
// 一切関与せず、イベントの後追いだけで数字を作ります。
type Stats struct {
	mu           sync.Mutex
	totals       map[string]int // イベント種別ごとの件数
	captures     map[string]int // 捕獲者DeviceIDごとの捕獲数
	achievements []Achievement
	awarded      map[string]bool
}

// NewStats は空の集計器を返します。
func NewStats() *Stats {
	return &Stats{
		totals:   make(map[string]int),
		captures: make(map[string]int),
		awarded:  make(map[string]bool),
	}
}

// Run はイベントチャネルを消費し続けます。コーディネータのAddObserverで
// 登録したチャネルを渡してゴルーチンで起動します。
func (s *Stats) Run(ctx context.Context, events <-chan models.Event) {
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			s.consume(ev)
		case <-ctx.Done():
			return
		}
	}
}

func (s *Stats) consume(ev models.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totals[ev.Type]++

	switch ev.Type {
	case "capture", "infection":
		pred, _ := ev.Payload["pred"].(string)
		if pred == "" {
			return
		}
		s.captures[pred]++
		if s.captures[pred] == 1 {
			s.awardLocked(pred, "first_capture", "first capture")
		}
		if s.captures[pred] == 3 {
			s.awardLocked(pred, "hat_trick", "3 captures in one game")
		}
	case "game_ended":
		board, ok := ev.Payload["leaderboard"].(Leaderboard)
		if !ok {
			return
		}
		for _, e := range board.Prey {
			if e.TimesCaptured == 0 {
				s.awardLocked(e.DeviceID, "survivor", "survived the whole hunt")
			}
		}
	case "reset":
		s.captures = make(map[string]int)
	}
}

func (s *Stats) awardLocked(deviceID, key, label string) {
	mark := deviceID + "|" + key
	if s.awarded[mark] {
		return
	}
	s.awarded[mark] = true
	s.achievements = append(s.achievements, Achievement{DeviceID: deviceID, Key: key, Label: label})
}

// Report は集計スナップショットを返します。
func (s *Stats) Report() (totals map[string]int, achievements []Achievement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	totals = make(map[string]int, len(s.totals))
	for k, v := range s.totals {
		totals[k] = v
	}
	achievements = append([]Achievement(nil), s.achievements...)
	return totals, achievements
}
