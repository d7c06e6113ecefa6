package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

// JoinQR は参加用URLのQRコードPNGを返します。腕章やポスターへの印刷用です。
func JoinQR(c *gin.Context, publicURL string, logger *zap.Logger) {
	if publicURL == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "public url not configured"})
		return
	}
	png, err := qrcode.Encode(publicURL, qrcode.Medium, 256)
	if err != nil {
		logger.Error("QRコードの生成に失敗しました", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate qr"})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
