package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fitquest/fitquest/models"
	"github.com/fitquest/fitquest/utils"
)

// ProgressController renders and appends the user's daily activity log.
type ProgressController struct {
	db *gorm.DB
}

// NewProgressController creates a ProgressController.
func NewProgressController(db *gorm.DB) *ProgressController {
	return &ProgressController{db: db}
}

// List renders the user's records, most recent date first.
func (p *ProgressController) List(ctx *gin.Context) {
	user := currentUser(ctx)

	var records []models.ProgressRecord
	if err := p.db.Where("user_id = ?", user.ID).Order("date DESC").Find(&records).Error; err != nil {
		utils.Sugar.Errorf("progress list failed for user %d: %v", user.ID, err)
		records = nil
	}

	ctx.HTML(http.StatusOK, "progress.html", gin.H{
		"user":     user,
		"progress": records,
	})
}

// Append inserts a record verbatim. The values are the user's self-report,
// so no range validation is applied and multiple entries per date are fine.
func (p *ProgressController) Append(ctx *gin.Context) {
	user := currentUser(ctx)

	record := models.ProgressRecord{
		UserID:   user.ID,
		Date:     strings.TrimSpace(ctx.PostForm("date")),
		Steps:    formInt(ctx, "steps"),
		Calories: formInt(ctx, "calories"),
		Distance: formFloat(ctx, "distance"),
	}

	if err := p.db.Create(&record).Error; err != nil {
		utils.Sugar.Errorf("progress insert failed for user %d: %v", user.ID, err)
	}

	ctx.Redirect(http.StatusFound, "/progress")
}

func formInt(ctx *gin.Context, field string) int {
	n, err := strconv.Atoi(strings.TrimSpace(ctx.PostForm(field)))
	if err != nil {
		return 0
	}
	return n
}

func formFloat(ctx *gin.Context, field string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(ctx.PostForm(field)), 64)
	if err != nil {
		return 0
	}
	return f
}
