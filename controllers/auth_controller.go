package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fitquest/fitquest/middleware"
	"github.com/fitquest/fitquest/models"
	"github.com/fitquest/fitquest/utils"
)

// AuthController handles login, signup, logout and the profile and settings
// pages. Successful login and signup snapshot the full user row into the
// session; any mutation refreshes that snapshot so pages never render stale
// fields.
type AuthController struct {
	db       *gorm.DB
	sessions *utils.SessionStore
}

// NewAuthController creates an AuthController.
func NewAuthController(db *gorm.DB, sessions *utils.SessionStore) *AuthController {
	return &AuthController{db: db, sessions: sessions}
}

// LoginPage renders the login form.
func (a *AuthController) LoginPage(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "login.html", gin.H{"error": nil})
}

// Login verifies credentials and opens a session. Wrong email and wrong
// password produce the same message.
func (a *AuthController) Login(ctx *gin.Context) {
	email := strings.TrimSpace(ctx.PostForm("email"))
	password := ctx.PostForm("password")

	var user models.User
	if err := a.db.Where("email = ?", email).First(&user).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Sugar.Errorf("login lookup failed: %v", err)
			ctx.HTML(http.StatusOK, "login.html", gin.H{"error": "Database error."})
			return
		}
		ctx.HTML(http.StatusOK, "login.html", gin.H{"error": "Invalid email or password."})
		return
	}

	if !utils.CheckPassword(user.PasswordHash, password) {
		ctx.HTML(http.StatusOK, "login.html", gin.H{"error": "Invalid email or password."})
		return
	}

	a.openSession(ctx, user)
	ctx.Redirect(http.StatusFound, "/dashboard")
}

// SignupPage renders the signup form.
func (a *AuthController) SignupPage(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "signup.html", gin.H{"error": nil})
}

// Signup creates an account after the duplicate-email check and logs the
// new user straight in.
func (a *AuthController) Signup(ctx *gin.Context) {
	name := strings.TrimSpace(ctx.PostForm("name"))
	email := strings.TrimSpace(ctx.PostForm("email"))
	password := ctx.PostForm("password")

	var existing models.User
	err := a.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		ctx.HTML(http.StatusOK, "signup.html", gin.H{"error": "Email already exists."})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Sugar.Errorf("signup lookup failed: %v", err)
		ctx.HTML(http.StatusOK, "signup.html", gin.H{"error": "Database error."})
		return
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		utils.Sugar.Errorf("signup hash failed: %v", err)
		ctx.HTML(http.StatusOK, "signup.html", gin.H{"error": "Failed to create user."})
		return
	}

	user := models.User{Username: name, Email: email, PasswordHash: hash}
	if err := a.db.Create(&user).Error; err != nil {
		utils.Sugar.Errorf("signup create failed: %v", err)
		ctx.HTML(http.StatusOK, "signup.html", gin.H{"error": "Failed to create user."})
		return
	}

	a.openSession(ctx, user)
	ctx.Redirect(http.StatusFound, "/dashboard")
}

// Logout destroys the session if one exists. Idempotent.
func (a *AuthController) Logout(ctx *gin.Context) {
	if token, err := ctx.Cookie(utils.SessionCookieName); err == nil {
		a.sessions.Destroy(token)
	}
	ctx.SetCookie(utils.SessionCookieName, "", -1, "/", "", false, true)
	ctx.Redirect(http.StatusFound, "/login")
}

// ProfilePage renders the profile form from the session snapshot.
func (a *AuthController) ProfilePage(ctx *gin.Context) {
	user := currentUser(ctx)
	ctx.HTML(http.StatusOK, "profile.html", gin.H{"user": user})
}

// UpdateProfile applies a partial update of the mutable profile fields.
// Empty numeric inputs become NULL rather than zero.
func (a *AuthController) UpdateProfile(ctx *gin.Context) {
	user := currentUser(ctx)

	updates := map[string]interface{}{
		"username": strings.TrimSpace(ctx.PostForm("name")),
		"bio":      utils.Sanitize(ctx.PostForm("bio")),
		"gender":   strings.TrimSpace(ctx.PostForm("gender")),
		"age":      parseOptionalInt(ctx.PostForm("age")),
		"height":   parseOptionalFloat(ctx.PostForm("height")),
		"weight":   parseOptionalFloat(ctx.PostForm("weight")),
	}

	if err := a.db.Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
		utils.Sugar.Errorf("profile update failed for user %d: %v", user.ID, err)
		ctx.String(http.StatusInternalServerError, "Profile update failed.")
		return
	}

	a.refreshSession(ctx, user.ID)
	ctx.Redirect(http.StatusFound, "/profile")
}

// SettingsPage renders the settings form from the session snapshot.
func (a *AuthController) SettingsPage(ctx *gin.Context) {
	user := currentUser(ctx)
	ctx.HTML(http.StatusOK, "settings.html", gin.H{"user": user})
}

// UpdateSettings changes password, notification preference and daily goal.
// Blank password and blank goal keep the stored values.
func (a *AuthController) UpdateSettings(ctx *gin.Context) {
	user := currentUser(ctx)

	updates := map[string]interface{}{
		"notifications_enabled": ctx.PostForm("notifications") == "enabled",
	}

	if password := ctx.PostForm("password"); strings.TrimSpace(password) != "" {
		hash, err := utils.HashPassword(password)
		if err != nil {
			utils.Sugar.Errorf("settings hash failed for user %d: %v", user.ID, err)
			ctx.String(http.StatusInternalServerError, "Error updating settings.")
			return
		}
		updates["password_hash"] = hash
	}

	if goal := strings.TrimSpace(ctx.PostForm("dailyGoal")); goal != "" {
		if n, err := strconv.Atoi(goal); err == nil {
			updates["daily_goal"] = n
		}
	}

	if err := a.db.Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
		utils.Sugar.Errorf("settings update failed for user %d: %v", user.ID, err)
		ctx.String(http.StatusInternalServerError, "Error updating settings.")
		return
	}

	a.refreshSession(ctx, user.ID)
	ctx.Redirect(http.StatusFound, "/settings")
}

// openSession creates a session for the user and sets the cookie.
func (a *AuthController) openSession(ctx *gin.Context, user models.User) {
	token, err := a.sessions.Create(user)
	if err != nil {
		utils.Sugar.Errorf("session create failed for user %d: %v", user.ID, err)
		return
	}
	ctx.SetCookie(utils.SessionCookieName, token, 0, "/", "", false, true)
}

// refreshSession reloads the user row into the session after a mutation.
func (a *AuthController) refreshSession(ctx *gin.Context, userID uint) {
	token := sessionToken(ctx)
	if token == "" {
		return
	}
	var fresh models.User
	if err := a.db.First(&fresh, userID).Error; err != nil {
		utils.Sugar.Errorf("session refresh load failed for user %d: %v", userID, err)
		return
	}
	if err := a.sessions.Refresh(token, fresh); err != nil {
		utils.Sugar.Errorf("session refresh failed for user %d: %v", userID, err)
	}
}

func parseOptionalInt(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

func parseOptionalFloat(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}

// currentUser returns the session's user snapshot placed in the context by
// the session gate.
func currentUser(ctx *gin.Context) models.User {
	if v, ok := ctx.Get(middleware.ContextUserKey); ok {
		if u, ok := v.(models.User); ok {
			return u
		}
	}
	return models.User{}
}

func sessionToken(ctx *gin.Context) string {
	if v, ok := ctx.Get(middleware.ContextTokenKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
