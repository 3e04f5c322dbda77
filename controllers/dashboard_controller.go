package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fitquest/fitquest/models"
	"github.com/fitquest/fitquest/utils"
)

// DashboardController renders the landing page after login.
type DashboardController struct {
	db *gorm.DB
}

// NewDashboardController creates a DashboardController.
func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{db: db}
}

// Show renders the greeting and the challenge catalog snapshot.
func (d *DashboardController) Show(ctx *gin.Context) {
	user := currentUser(ctx)

	var challenges []models.Challenge
	if err := d.db.Find(&challenges).Error; err != nil {
		utils.Sugar.Errorf("dashboard challenge fetch failed: %v", err)
		challenges = nil
	}

	ctx.HTML(http.StatusOK, "dashboard.html", gin.H{
		"user":       user,
		"challenges": challenges,
	})
}
