package hunt

import (
	"sort"

	"huntserver/models"
)

// LeaderboardEntry はランキング1行分です。Pointsは毎回カウンターから導出され、
// どこにも保持されません（再計算が常に正）。
type LeaderboardEntry struct {
	DeviceID      string  `json:"device_id"`
	Name          string  `json:"name"`
	Role          string  `json:"role"`
	Team          *string `json:"team"`
	Points        int     `json:"points"`
	Captures      int     `json:"captures"`
	Escapes       int     `json:"escapes"`
	Sightings     int     `json:"sightings"`
	Infections    int     `json:"infections"`
	TimesCaptured int     `json:"times_captured"`
}

// Leaderboard はロール別のランキングです。
type Leaderboard struct {
	Predators  []LeaderboardEntry `json:"predators"`
	Prey       []LeaderboardEntry `json:"prey"`
	TeamScores map[string]int     `json:"team_scores,omitempty"`
}

// playerPoints はカウンターとモード配点から得点を導出する純関数です。
// 連続捕獲ボーナス: 3捕獲で+50、5捕獲で更に+100。
// 生存ボーナスはゲーム終了後、1度も捕まらなかった獲物にだけ付きます。
func playerPoints(p *models.Player, mode ModeConfig, gameEnded bool) int {
	points := p.Captures*mode.CapturePoints +
		p.Escapes*mode.EscapePoints +
		p.Sightings*mode.SightingPoints +
		p.BountyEarned
	if p.Captures >= 3 {
		points += 50
	}
	if p.Captures >= 5 {
		points += 100
	}
	if gameEnded && p.Role == models.RolePrey && p.TimesCaptured == 0 {
		points += mode.SurvivalBonus
	}
	return points
}

// Points は1人分の現在得点を返します。
func (c *Coordinator) Points(deviceID string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.players[deviceID]
	if !ok {
		return 0, notFound("unknown player")
	}
	return playerPoints(p, c.modeLocked(), c.game.Phase == models.PhaseEnded), nil
}

// Leaderboard はロール別に得点降順のランキングを組み立てます。
func (c *Coordinator) Leaderboard() Leaderboard {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.leaderboardLocked()
}

func (c *Coordinator) leaderboardLocked() Leaderboard {
	mode := c.modeLocked()
	ended := c.game.Phase == models.PhaseEnded
	var board Leaderboard
	for _, p := range c.players {
		if p.Role == models.RoleUnassigned {
			continue
		}
		entry := LeaderboardEntry{
			DeviceID:      p.DeviceID,
			Name:          p.Name,
			Role:          p.Role,
			Points:        playerPoints(p, mode, ended),
			Captures:      p.Captures,
			Escapes:       p.Escapes,
			Sightings:     p.Sightings,
			Infections:    p.Infections,
			TimesCaptured: p.TimesCaptured,
		}
		if p.Team != "" {
			t := p.Team
			entry.Team = &t
		}
		if p.Role == models.RolePred {
			board.Predators = append(board.Predators, entry)
		} else {
			board.Prey = append(board.Prey, entry)
		}
	}
	byPoints := func(list []LeaderboardEntry) {
		sort.Slice(list, func(i, j int) bool {
			if list[i].Points != list[j].Points {
				return list[i].Points > list[j].Points
			}
			return list[i].DeviceID < list[j].DeviceID
		})
	}
	byPoints(board.Predators)
	byPoints(board.Prey)
	if mode.TeamBased {
		board.TeamScores = copyIntMap(c.game.TeamScores)
	}
	return board
}
