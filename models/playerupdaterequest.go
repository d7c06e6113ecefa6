package models

// PlayerUpdateRequest はプレイヤー自身によるプロフィール更新です。
// nilのフィールドは変更しません。RoleとStatusの変更可否はコーディネータ側で判定します。
type PlayerUpdateRequest struct {
	Name   *string `json:"name"`
	Role   *string `json:"role"`
	Status *string `json:"status"`
}

// ConsentRequest は同意フラグの更新です。nilのフィールドは変更しません。
type ConsentRequest struct {
	Physical *bool `json:"physical"`
	Photo    *bool `json:"photo"`
	Location *bool `json:"location"`
}
