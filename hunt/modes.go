package hunt

// ModeConfig はゲームモード1種の固定設定です。
type ModeConfig struct {
	Key            string `json:"key"`
	Name           string `json:"name"`
	DurationMin    int    `json:"duration_min"`
	CapturePoints  int    `json:"capture_points"`
	EscapePoints   int    `json:"escape_points"`
	SightingPoints int    `json:"sighting_points"`
	SurvivalBonus  int    `json:"survival_bonus"`
	TeamBased      bool   `json:"team_based"`
	Infection      bool   `json:"infection"`
	PhotoRequired  bool   `json:"photo_required"`
}

// DefaultMode はリセット後に戻るモードです。
const DefaultMode = "standard"

// modeTable はモードキー → 設定の固定テーブルです。
var modeTable = map[string]ModeConfig{
	"standard": {
		Key: "standard", Name: "スタンダード",
		DurationMin:   30,
		CapturePoints: 100, EscapePoints: 75, SightingPoints: 25, SurvivalBonus: 200,
	},
	"short": {
		Key: "short", Name: "ショートマッチ",
		DurationMin:   15,
		CapturePoints: 100, EscapePoints: 75, SightingPoints: 25, SurvivalBonus: 100,
	},
	"long": {
		Key: "long", Name: "エンデュランス",
		DurationMin:   60,
		CapturePoints: 100, EscapePoints: 75, SightingPoints: 25, SurvivalBonus: 300,
	},
	"team": {
		Key: "team", Name: "チーム戦",
		DurationMin:   30,
		CapturePoints: 100, EscapePoints: 75, SightingPoints: 25, SurvivalBonus: 200,
		TeamBased: true,
	},
	"infection": {
		Key: "infection", Name: "感染モード",
		DurationMin:   20,
		CapturePoints: 100, EscapePoints: 0, SightingPoints: 25, SurvivalBonus: 300,
		Infection: true,
	},
	"photo": {
		Key: "photo", Name: "写真必須",
		DurationMin:   30,
		CapturePoints: 100, EscapePoints: 75, SightingPoints: 50, SurvivalBonus: 200,
		PhotoRequired: true,
	},
}

// ModeByKey はモード設定を返します。未知のキーはok=falseです。
func ModeByKey(key string) (ModeConfig, bool) {
	m, ok := modeTable[key]
	return m, ok
}

// Modes は定義済みモードの一覧を返します（表示用）。
func Modes() []ModeConfig {
	keys := []string{"standard", "short", "long", "team", "infection", "photo"}
	out := make([]ModeConfig, 0, len(keys))
	for _, k := range keys {
		out = append(out, modeTable[k])
	}
	return out
}
