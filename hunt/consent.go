package hunt

import (
	"strings"

	"huntserver/models"
)

// 同意バッジのワイヤーフォーマット:
//
//	非デフォルトのフラグを T（接触OK）→ NP（写真NG）→ NL（位置非公開）の
//	固定順で"+"区切りに連結します。該当なしはリテラル"STD"。
//	例: "T", "T+NL", "NP+NL", "STD"
//
// LoRaピアサマリ "ID|role|badge" の3フィールド目にそのまま入るため、
// バッジ内の区切りには"|"を使いません。
const (
	consentCodeTouch      = "T"
	consentCodeNoPhoto    = "NP"
	consentCodeNoLocation = "NL"
	consentBadgeStandard  = "STD"
	consentBadgeSeparator = "+"
)

// ConsentBadge はプレイヤーの同意フラグをバッジ文字列に符号化します。
func ConsentBadge(p *models.Player) string {
	var codes []string
	if p.ConsentPhysical {
		codes = append(codes, consentCodeTouch)
	}
	if !p.ConsentPhoto {
		codes = append(codes, consentCodeNoPhoto)
	}
	if !p.ConsentLocation {
		codes = append(codes, consentCodeNoLocation)
	}
	if len(codes) == 0 {
		return consentBadgeStandard
	}
	return strings.Join(codes, consentBadgeSeparator)
}

// EncodePeerSummary はLoRaパケットに載せるピアサマリを組み立てます。
// フィールド順はID、role、badgeで固定です。consentは必ずroleの後に置きます。
func EncodePeerSummary(p *models.Player) string {
	return p.DeviceID + "|" + p.Role + "|" + ConsentBadge(p)
}

// DecodePeerSummary はピアサマリを3フィールドに分解します。
// 旧ファームウェアがroleとconsentを混同した経緯があるため、
// フィールド数は厳密に3で検査します。
func DecodePeerSummary(s string) (deviceID, role, badge string, err error) {
	parts := strings.Split(s, "|")
	if len(parts) != 3 {
		return "", "", "", preconditionFailed("bad peer summary")
	}
	return parts[0], parts[1], parts[2], nil
}
