package middlewares

import (
	"time"

	"huntserver/auth"
	"huntserver/models"

	jwt "github.com/dgrijalva/jwt-go"
)

// GenerateToken は端末用JWTを生成します。有効期限は24時間です。
func GenerateToken(deviceID string) (string, error) {
	claims := &models.MyClaims{
		DeviceID: deviceID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(24 * time.Hour).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(auth.JwtKey)
}

// GenerateAdminToken は管理者用JWTを生成します。有効期限は12時間です。
func GenerateAdminToken() (string, error) {
	claims := &models.MyClaims{
		IsAdmin: true,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(12 * time.Hour).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(auth.JwtKey)
}
