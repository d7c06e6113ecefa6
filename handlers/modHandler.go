package handlers

import (
	"net/http"

	"huntserver/hunt"
	"huntserver/models"

	"github.com/gin-gonic/gin"
)

// ReleaseCaptured は捕獲中プレイヤーの解放です（モデレーター操作）。
func ReleaseCaptured(c *gin.Context, coord *hunt.Coordinator) {
	var req models.ModTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "device_id required"})
		return
	}
	if err := coord.ReleaseCaptured(req.DeviceID); err != nil {
		writeReject(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// KickPlayer は強制退場です（モデレーター操作）。
func KickPlayer(c *gin.Context, coord *hunt.Coordinator) {
	var req models.ModTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "device_id required"})
		return
	}
	if err := coord.Kick(req.DeviceID); err != nil {
		writeReject(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ForceRole はロールの強制変更です（モデレーター操作）。
func ForceRole(c *gin.Context, coord *hunt.Coordinator) {
	var req models.ForceRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "device_id and role required"})
		return
	}
	if err := coord.ForceRole(req.DeviceID, req.Role); err != nil {
		writeReject(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AddModerator / RemoveModerator はモデレーター権限の管理です（管理者操作）。
func AddModerator(c *gin.Context, coord *hunt.Coordinator) {
	var req models.ModTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "device_id required"})
		return
	}
	if err := coord.AddModerator(req.DeviceID); err != nil {
		writeReject(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func RemoveModerator(c *gin.Context, coord *hunt.Coordinator) {
	var req models.ModTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "device_id required"})
		return
	}
	if err := coord.RemoveModerator(req.DeviceID); err != nil {
		writeReject(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Announce は全体アナウンスです（モデレーター操作）。
func Announce(c *gin.Context, coord *hunt.Coordinator) {
	var req models.AnnounceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text required"})
		return
	}
	if err := coord.Announce(req.Text); err != nil {
		writeReject(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// PlaceBounty / RemoveBounty / ListBounties は賞金の管理です（モデレーター操作）。
func PlaceBounty(c *gin.Context, coord *hunt.Coordinator) {
	var req models.BountyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "target_id and points required"})
		return
	}
	placedBy := c.GetString("deviceID")
	if placedBy == "" {
		placedBy = "admin"
	}
	bounty, err := coord.PlaceBounty(req.TargetID, req.Points, req.Reason, placedBy)
	if err != nil {
		writeReject(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bounty": bounty})
}

func RemoveBounty(c *gin.Context, coord *hunt.Coordinator) {
	if err := coord.RemoveBounty(c.Param("id")); err != nil {
		writeReject(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func ListBounties(c *gin.Context, coord *hunt.Coordinator) {
	c.JSON(http.StatusOK, gin.H{"bounties": coord.Bounties()})
}
