package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fitquest/fitquest/models"
	"github.com/fitquest/fitquest/utils"
)

var (
	errRewardNotFound  = errors.New("reward not found")
	errThresholdNotMet = errors.New("points below reward threshold")
	errAlreadyRedeemed = errors.New("reward already redeemed")
)

// RewardController lists the reward catalog and records redemptions.
type RewardController struct {
	db *gorm.DB
}

// NewRewardController creates a RewardController.
func NewRewardController(db *gorm.DB) *RewardController {
	return &RewardController{db: db}
}

// List renders the catalog, the set of rewards already earned and the user's
// current point total (zero when no leaderboard row exists yet).
func (r *RewardController) List(ctx *gin.Context) {
	user := currentUser(ctx)

	var rewards []models.Reward
	if err := r.db.Find(&rewards).Error; err != nil {
		utils.Sugar.Errorf("reward list failed: %v", err)
		rewards = nil
	}

	var earnedIDs []uint
	if err := r.db.Model(&models.UserReward{}).Where("user_id = ?", user.ID).Pluck("reward_id", &earnedIDs).Error; err != nil {
		utils.Sugar.Errorf("earned reward lookup failed for user %d: %v", user.ID, err)
	}
	earned := make(map[uint]bool, len(earnedIDs))
	for _, id := range earnedIDs {
		earned[id] = true
	}

	ctx.HTML(http.StatusOK, "rewards.html", gin.H{
		"user":    user,
		"rewards": rewards,
		"earned":  earned,
		"points":  r.userPoints(user.ID),
	})
}

// Claim redeems a reward once the user's total meets its threshold. Claiming
// twice, an unknown reward id, a missing leaderboard row or an unmet
// threshold all resolve to the same silent redirect without mutation.
// Points are never deducted; redemption is a threshold check, not a spend.
func (r *RewardController) Claim(ctx *gin.Context) {
	user := currentUser(ctx)

	rewardID, err := strconv.ParseUint(ctx.PostForm("rewardId"), 10, 32)
	if err != nil {
		ctx.Redirect(http.StatusFound, "/rewards")
		return
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.UserReward
		err := tx.Where("user_id = ? AND reward_id = ?", user.ID, rewardID).First(&existing).Error
		if err == nil {
			return errAlreadyRedeemed
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var reward models.Reward
		if err := tx.First(&reward, rewardID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errRewardNotFound
			}
			return err
		}

		var entry models.LeaderboardEntry
		points := 0
		err = tx.Where("user_id = ?", user.ID).First(&entry).Error
		if err == nil {
			points = entry.Points
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if points < reward.PointsRequired {
			return errThresholdNotMet
		}

		return tx.Create(&models.UserReward{UserID: user.ID, RewardID: reward.ID}).Error
	})

	if err != nil {
		switch {
		case errors.Is(err, errAlreadyRedeemed),
			errors.Is(err, errRewardNotFound),
			errors.Is(err, errThresholdNotMet):
			// The page already shows the disabled state.
		default:
			utils.Sugar.Errorf("claim failed for user %d reward %d: %v", user.ID, rewardID, err)
		}
	}

	ctx.Redirect(http.StatusFound, "/rewards")
}

func (r *RewardController) userPoints(userID uint) int {
	var entry models.LeaderboardEntry
	if err := r.db.Where("user_id = ?", userID).First(&entry).Error; err != nil {
		return 0
	}
	return entry.Points
}
