package models

import (
	jwt "github.com/dgrijalva/jwt-go"
)

// MyClaims はJWTクレームの構造体定義です。
type MyClaims struct {
	DeviceID string `json:"deviceid"`
	IsAdmin  bool   `json:"isAdmin"`
	jwt.StandardClaims
}
