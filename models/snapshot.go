package models

import "time"

// Snapshot はスナップショット行に書き込むコーディネータ状態のコピーです。
// クールダウンは寿命が短いため含めません（復元時は空から再開）。
type Snapshot struct {
	TakenAt  time.Time `json:"taken_at"`
	Game     GameState `json:"game"`
	Players  []Player  `json:"players"`
	Beacons  []Beacon  `json:"beacons"`
	Bounties []Bounty  `json:"bounties"`
	Events   []Event   `json:"events"`
	Messages []Message `json:"messages"`
	EventSeq uint64    `json:"event_seq"`
	MsgSeq   uint64    `json:"msg_seq"`
}
