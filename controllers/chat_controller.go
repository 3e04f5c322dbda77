package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fitquest/fitquest/models"
	"github.com/fitquest/fitquest/utils"
)

// ChatController serves the single shared room: full-history reads, appends
// and the clear-all action.
type ChatController struct {
	db *gorm.DB
}

// NewChatController creates a ChatController.
func NewChatController(db *gorm.DB) *ChatController {
	return &ChatController{db: db}
}

// List renders the room's full history, oldest first, with sender usernames,
// plus the member list shown in the sidebar.
func (c *ChatController) List(ctx *gin.Context) {
	user := currentUser(ctx)

	var messages []models.MessageRow
	if err := c.db.Table("messages").
		Select("messages.id, messages.message, messages.created_at, users.username").
		Joins("JOIN users ON messages.user_id = users.id").
		Where("messages.group_id = ?", models.DefaultGroupID).
		Order("messages.created_at ASC").
		Scan(&messages).Error; err != nil {
		utils.Sugar.Errorf("chat history failed: %v", err)
		messages = nil
	}

	var members []models.User
	if err := c.db.Select("id", "username").Find(&members).Error; err != nil {
		utils.Sugar.Errorf("chat member list failed: %v", err)
		members = nil
	}

	ctx.HTML(http.StatusOK, "chat.html", gin.H{
		"user":     user,
		"messages": messages,
		"members":  members,
	})
}

// Post appends a message to the room.
func (c *ChatController) Post(ctx *gin.Context) {
	user := currentUser(ctx)

	msg := models.Message{
		GroupID: models.DefaultGroupID,
		UserID:  user.ID,
		Message: utils.Sanitize(ctx.PostForm("message")),
	}
	if err := c.db.Create(&msg).Error; err != nil {
		utils.Sugar.Errorf("chat post failed for user %d: %v", user.ID, err)
	}

	ctx.Redirect(http.StatusFound, "/chat")
}

// Clear deletes every message in the room. Any authenticated user may clear
// the room for everyone.
func (c *ChatController) Clear(ctx *gin.Context) {
	if err := c.db.Where("group_id = ?", models.DefaultGroupID).Delete(&models.Message{}).Error; err != nil {
		utils.Sugar.Errorf("chat clear failed: %v", err)
	}
	ctx.Redirect(http.StatusFound, "/chat")
}
