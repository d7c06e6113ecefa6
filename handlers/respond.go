package handlers

import (
	"net/http"

	"huntserver/hunt"

	"github.com/gin-gonic/gin"
)

// rejectStatus はコアの拒否分類をHTTPステータスに変換します。
func rejectStatus(err error) int {
	switch hunt.RejectKind(err) {
	case hunt.KindNotFound:
		return http.StatusNotFound
	case hunt.KindInvalidState:
		return http.StatusConflict
	case hunt.KindPermissionDenied:
		return http.StatusForbidden
	case hunt.KindPreconditionFailed:
		return http.StatusBadRequest
	case hunt.KindCapacityExceeded:
		return http.StatusServiceUnavailable
	case hunt.KindEmergencyBlocked:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeReject はWebダッシュボード向けのエラー応答です。
func writeReject(c *gin.Context, err error) {
	c.JSON(rejectStatus(err), gin.H{"error": err.Error()})
}

// trackerResult はトラッカー向けの応答です。ファームウェアが理由文字列を
// 表示できるよう、業務ルール上の拒否もHTTP 200で返します。
func trackerResult(c *gin.Context, err error) {
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
