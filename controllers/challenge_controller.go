package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fitquest/fitquest/models"
	"github.com/fitquest/fitquest/utils"
)

// LeaderboardCacheKey is invalidated whenever a point award changes the
// standings.
const LeaderboardCacheKey = "cache:leaderboard"

var errChallengeNotFound = errors.New("challenge not found")

// ChallengeController lists the challenge catalog and records joins.
type ChallengeController struct {
	db *gorm.DB
}

// NewChallengeController creates a ChallengeController.
func NewChallengeController(db *gorm.DB) *ChallengeController {
	return &ChallengeController{db: db}
}

// List renders the catalog plus the set of challenges the user already
// joined, so the page can disable their join buttons.
func (c *ChallengeController) List(ctx *gin.Context) {
	user := currentUser(ctx)

	var challenges []models.Challenge
	if err := c.db.Find(&challenges).Error; err != nil {
		utils.Sugar.Errorf("challenge list failed: %v", err)
		challenges = nil
	}

	var joinedIDs []uint
	if err := c.db.Model(&models.UserChallenge{}).Where("user_id = ?", user.ID).Pluck("challenge_id", &joinedIDs).Error; err != nil {
		utils.Sugar.Errorf("joined challenge lookup failed for user %d: %v", user.ID, err)
	}
	joined := make(map[uint]bool, len(joinedIDs))
	for _, id := range joinedIDs {
		joined[id] = true
	}

	ctx.HTML(http.StatusOK, "challenges.html", gin.H{
		"user":       user,
		"challenges": challenges,
		"joined":     joined,
	})
}

// Join records a challenge join and credits its points to the leaderboard.
// Joining twice is a silent no-op, and the insert plus award run in one
// transaction, so the join record and the point credit land together or not
// at all. Either way the response is a redirect back to the catalog.
func (c *ChallengeController) Join(ctx *gin.Context) {
	user := currentUser(ctx)

	challengeID, err := strconv.ParseUint(ctx.PostForm("challengeId"), 10, 32)
	if err != nil {
		ctx.Redirect(http.StatusFound, "/challenges")
		return
	}

	var existing models.UserChallenge
	err = c.db.Where("user_id = ? AND challenge_id = ?", user.ID, challengeID).First(&existing).Error
	if err == nil {
		ctx.Redirect(http.StatusFound, "/challenges")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Sugar.Errorf("join pre-check failed for user %d: %v", user.ID, err)
		ctx.Redirect(http.StatusFound, "/challenges")
		return
	}

	err = c.db.Transaction(func(tx *gorm.DB) error {
		var challenge models.Challenge
		if err := tx.First(&challenge, challengeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errChallengeNotFound
			}
			return err
		}

		if err := tx.Create(&models.UserChallenge{UserID: user.ID, ChallengeID: challenge.ID}).Error; err != nil {
			return err
		}

		// Lazy-create the leaderboard row, add to it thereafter.
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"points": gorm.Expr("points + ?", challenge.Points)}),
		}).Create(&models.LeaderboardEntry{UserID: user.ID, Points: challenge.Points}).Error
	})

	if err != nil {
		if !errors.Is(err, errChallengeNotFound) {
			utils.Sugar.Errorf("join failed for user %d challenge %d: %v", user.ID, challengeID, err)
		}
		ctx.Redirect(http.StatusFound, "/challenges")
		return
	}

	utils.CacheDelete(LeaderboardCacheKey)
	ctx.Redirect(http.StatusFound, "/challenges")
}
