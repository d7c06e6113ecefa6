package hunt

import (
	"math/rand"
	"sort"
	"time"
)

var teamNames = []string{"red", "blue"}

// 乱数はチーム分けのシャッフルに使用
func createLocalRandGenerator() *rand.Rand {
	source := rand.NewSource(time.Now().UnixNano())
	return rand.New(source)
}

// assignTeamsLocked はオンラインのプレイヤーをシャッフルして
// ラウンドロビンでチームに割り当てます。
func (c *Coordinator) assignTeamsLocked() {
	ids := make([]string, 0, len(c.players))
	for id, p := range c.players {
		if p.Online {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	randGen := createLocalRandGenerator()
	randGen.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })

	c.game.TeamScores = make(map[string]int)
	for _, name := range teamNames {
		c.game.TeamScores[name] = 0
	}
	for i, id := range ids {
		team := teamNames[i%len(teamNames)]
		c.players[id].Team = team
		c.notifyLocked(c.players[id], "team", "team: "+team)
	}
	c.appendEventLocked("teams_assigned", map[string]interface{}{
		"players": len(ids),
	})
}
