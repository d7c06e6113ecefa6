package handlers

import (
	"net/http"

	"huntserver/hunt"
	"huntserver/models"

	"github.com/gin-gonic/gin"
)

// ListBeacons はビーコン一覧です（公開）。
func ListBeacons(c *gin.Context, coord *hunt.Coordinator) {
	c.JSON(http.StatusOK, gin.H{"beacons": coord.Beacons()})
}

// AddBeacon はビーコン登録です（モデレーター操作）。
func AddBeacon(c *gin.Context, coord *hunt.Coordinator) {
	var req models.BeaconRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "beacon id required"})
		return
	}
	beacon, err := coord.AddBeacon(req)
	if err != nil {
		writeReject(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"beacon": beacon})
}

// UpdateBeacon はビーコンの部分更新です。
func UpdateBeacon(c *gin.Context, coord *hunt.Coordinator) {
	var req models.BeaconRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	beacon, err := coord.UpdateBeacon(c.Param("id"), req)
	if err != nil {
		writeReject(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"beacon": beacon})
}

// DeleteBeacon はビーコン削除です。
func DeleteBeacon(c *gin.Context, coord *hunt.Coordinator) {
	if err := coord.DeleteBeacon(c.Param("id")); err != nil {
		writeReject(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
