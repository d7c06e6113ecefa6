package hunt

import "strings"

// クールダウンのペアキーはDeviceIDが"|"を含まない前提で安全に結合できます。
func pairKey(spotter, target string) string {
	return spotter + "|" + target
}

func splitPairKey(key string) (spotter, target string, ok bool) {
	parts := strings.SplitN(key, "|", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// pruneCooldownsLocked は期限切れのクールダウンを捨てます。
// エントリはエンティティの寿命と無関係な純粋なTTLキャッシュです。
func (c *Coordinator) pruneCooldownsLocked() {
	now := c.now()
	for id, t := range c.captureCooldown {
		if now.Sub(t) > c.opts.CaptureCooldown {
			delete(c.captureCooldown, id)
		}
	}
	for key, t := range c.sightingCooldown {
		if now.Sub(t) > c.opts.SightingCooldown {
			delete(c.sightingCooldown, key)
		}
	}
}
