package controllers_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaderboardRanksByPointsDescending(t *testing.T) {
	e := newTestEnv(t)
	_, low := e.newUser(t, "LowScore", "low@example.com")
	_, high := e.newUser(t, "HighScore", "high@example.com")

	joinChallenge(t, e, low, "3")  // 20 pts
	joinChallenge(t, e, high, "1") // 50 pts
	joinChallenge(t, e, high, "2") // +30 pts

	w := e.get("/leaderboard", low)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	assert.Contains(t, body, "HighScore:80;")
	assert.Contains(t, body, "LowScore:20;")
	assert.Less(t, strings.Index(body, "HighScore"), strings.Index(body, "LowScore"))
}

func TestLeaderboardOmitsUsersWithoutPoints(t *testing.T) {
	e := newTestEnv(t)
	_, scored := e.newUser(t, "Scored", "scored@example.com")
	e.newUser(t, "Idle", "idle@example.com")

	joinChallenge(t, e, scored, "4") // 40 pts

	w := e.get("/leaderboard", scored)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Scored:40;")
	assert.NotContains(t, body, "Idle")
}
