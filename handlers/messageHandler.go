package handlers

import (
	"net/http"
	"strconv"

	"huntserver/hunt"
	"huntserver/middlewares"
	"huntserver/models"

	"github.com/gin-gonic/gin"
)

// GetMessages は本人が読める範囲のチャット履歴です。
func GetMessages(c *gin.Context, coord *hunt.Coordinator) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	c.JSON(http.StatusOK, gin.H{
		"messages": coord.Messages(middlewares.DeviceID(c), limit),
	})
}

// PostMessage はチャット送信です。scopeはall/team/device。
func PostMessage(c *gin.Context, coord *hunt.Coordinator) {
	var req models.MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scope and text required"})
		return
	}
	msg, err := coord.SendMessage(middlewares.DeviceID(c), req.Scope, req.Target, req.Text, false)
	if err != nil {
		writeReject(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}
