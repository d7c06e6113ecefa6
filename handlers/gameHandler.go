package handlers

import (
	"net/http"

	"huntserver/hunt"
	"huntserver/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetGame は現在のゲーム状態とモード一覧です。
func GetGame(c *gin.Context, coord *hunt.Coordinator) {
	c.JSON(http.StatusOK, gin.H{
		"game":  coord.Game(),
		"mode":  coord.Mode(),
		"modes": hunt.Modes(),
	})
}

// GetLeaderboard はロール別ランキングです。
func GetLeaderboard(c *gin.Context, coord *hunt.Coordinator) {
	c.JSON(http.StatusOK, coord.Leaderboard())
}

// StartGame はロビーからのゲーム開始です（モデレーター操作）。
func StartGame(c *gin.Context, coord *hunt.Coordinator, logger *zap.Logger) {
	var req models.StartRequest
	c.ShouldBindJSON(&req) // ボディ省略時はモード既定値
	if err := coord.Start(req.DurationMin, req.CountdownSec); err != nil {
		writeReject(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"game": coord.Game()})
}

// PauseGame は一時停止（countdown中ならキャンセル）です。
func PauseGame(c *gin.Context, coord *hunt.Coordinator) {
	if err := coord.Pause(); err != nil {
		writeReject(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"game": coord.Game()})
}

// ResumeGame は残り時間を保ったままの再開です。
func ResumeGame(c *gin.Context, coord *hunt.Coordinator) {
	if err := coord.Resume(); err != nil {
		writeReject(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"game": coord.Game()})
}

// EndGame は強制終了です。
func EndGame(c *gin.Context, coord *hunt.Coordinator) {
	if err := coord.End("ended by moderator"); err != nil {
		writeReject(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": coord.Leaderboard()})
}

// ResetGame は全状態をロビーに戻します（管理者操作）。
func ResetGame(c *gin.Context, coord *hunt.Coordinator) {
	if err := coord.Reset(); err != nil {
		writeReject(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"game": coord.Game()})
}

// SetMode はロビー中のモード変更です。
func SetMode(c *gin.Context, coord *hunt.Coordinator) {
	var req models.ModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mode required"})
		return
	}
	if err := coord.SetMode(req.Mode); err != nil {
		writeReject(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mode": coord.Mode()})
}

// UpdateSettings は運用パラメータの部分更新です（管理者操作）。
func UpdateSettings(c *gin.Context, coord *hunt.Coordinator) {
	var req models.SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	settings, err := coord.UpdateSettings(req)
	if err != nil {
		writeReject(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}
