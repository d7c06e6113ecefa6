package auth

import (
	"os"

	"huntserver/models"

	jwt "github.com/dgrijalva/jwt-go"
)

// JwtKey はトークン署名鍵です。本番では環境変数JWT_SECRETで差し替えます。
var JwtKey = []byte(defaultKey())

func defaultKey() string {
	if k := os.Getenv("JWT_SECRET"); k != "" {
		return k
	}
	return "hunt_secret_key"
}

// ParseToken はトークンを検証してクレームを返します。
func ParseToken(tokenString string) (*models.MyClaims, error) {
	claims := &models.MyClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return JwtKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.NewValidationError("invalid token", jwt.ValidationErrorClaimsInvalid)
	}
	return claims, nil
}

func IsValidToken(tokenString string) (bool, error) {
	_, err := ParseToken(tokenString)
	if err != nil {
		return false, err
	}
	return true, nil
}
