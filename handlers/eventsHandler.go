package handlers

import (
	"net/http"
	"strconv"

	"huntserver/hunt"

	"github.com/gin-gonic/gin"
)

// GetEvents はイベントログの新しい方からlimit件です（公開・監査用）。
func GetEvents(c *gin.Context, coord *hunt.Coordinator) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	c.JSON(http.StatusOK, gin.H{"events": coord.Events(limit)})
}

// GetStats はイベント集計と実績の一覧です。
func GetStats(c *gin.Context, stats *hunt.Stats) {
	totals, achievements := stats.Report()
	c.JSON(http.StatusOK, gin.H{
		"totals":       totals,
		"achievements": achievements,
	})
}
