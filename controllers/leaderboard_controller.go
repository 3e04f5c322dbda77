package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fitquest/fitquest/models"
	"github.com/fitquest/fitquest/utils"
)

// LeaderboardController renders all users ranked by points.
type LeaderboardController struct {
	db *gorm.DB
}

// NewLeaderboardController creates a LeaderboardController.
func NewLeaderboardController(db *gorm.DB) *LeaderboardController {
	return &LeaderboardController{db: db}
}

// List renders the ranking, points descending. The result is cached briefly
// and invalidated whenever a join credits points.
func (l *LeaderboardController) List(ctx *gin.Context) {
	user := currentUser(ctx)

	var rows []models.LeaderboardRow
	if !utils.CacheGetJSON(LeaderboardCacheKey, &rows) {
		if err := l.db.Table("leaderboard").
			Select("leaderboard.points, users.username, users.profile_picture").
			Joins("JOIN users ON leaderboard.user_id = users.id").
			Order("leaderboard.points DESC").
			Scan(&rows).Error; err != nil {
			utils.Sugar.Errorf("leaderboard query failed: %v", err)
			rows = nil
		} else {
			utils.CacheSetJSON(LeaderboardCacheKey, rows, 30*time.Second)
		}
	}

	ctx.HTML(http.StatusOK, "leaderboard.html", gin.H{
		"user":        user,
		"leaderboard": rows,
	})
}
