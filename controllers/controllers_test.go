package controllers_test

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	appconfig "github.com/fitquest/fitquest/config"
	"github.com/fitquest/fitquest/models"
	"github.com/fitquest/fitquest/routes"
	"github.com/fitquest/fitquest/utils"
)

var loggerOnce sync.Once

// pageStubs render the view data as plain text so tests can assert on
// handler output without carrying the real templates around.
var pageStubs = map[string]string{
	"login.html":       `login{{if .error}} {{.error}}{{end}}`,
	"signup.html":      `signup{{if .error}} {{.error}}{{end}}`,
	"dashboard.html":   `dashboard {{.user.Username}}`,
	"challenges.html":  `{{range .challenges}}{{.Name}}={{if index $.joined .ID}}joined{{else}}open{{end}};{{end}}`,
	"progress.html":    `{{range .progress}}{{.Date}}:{{.Steps}};{{end}}`,
	"leaderboard.html": `{{range .leaderboard}}{{.Username}}:{{.Points}};{{end}}`,
	"rewards.html":     `points={{.points}} {{range .rewards}}{{.Name}}={{if index $.earned .ID}}claimed{{else}}unclaimed{{end}};{{end}}`,
	"chat.html":        `{{range .messages}}{{.Username}}:{{.Message}};{{end}}`,
	"profile.html":     `profile {{.user.Username}}`,
	"settings.html":    `settings goal={{.user.DailyGoal}}`,
}

type env struct {
	db       *gorm.DB
	router   *gin.Engine
	sessions *utils.SessionStore
}

func newTestEnv(t *testing.T) *env {
	t.Helper()

	loggerOnce.Do(func() {
		_ = utils.InitLogger(appconfig.AppConfig{LogLevel: "error"})
	})
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A fresh pool connection would see a fresh in-memory database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, appconfig.Migrate(db))
	require.NoError(t, appconfig.Seed(db))

	tmpl := template.New("")
	for name, body := range pageStubs {
		template.Must(tmpl.New(name).Parse(body))
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)

	sessions := utils.NewMemorySessionStore(time.Hour)
	routes.Register(r, db, sessions)

	return &env{db: db, router: r, sessions: sessions}
}

// newUser inserts a user and opens a session for it, returning the row and
// the session cookie.
func (e *env) newUser(t *testing.T, name, email string) (models.User, *http.Cookie) {
	t.Helper()

	hash, err := utils.HashPassword("secret")
	require.NoError(t, err)
	user := models.User{Username: name, Email: email, PasswordHash: hash}
	require.NoError(t, e.db.Create(&user).Error)

	token, err := e.sessions.Create(user)
	require.NoError(t, err)
	return user, &http.Cookie{Name: utils.SessionCookieName, Value: token}
}

func (e *env) get(path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *env) postForm(path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}
