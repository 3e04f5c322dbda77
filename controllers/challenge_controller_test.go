package controllers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitquest/fitquest/models"
)

func joinChallenge(t *testing.T, e *env, cookie *http.Cookie, id string) {
	t.Helper()
	w := e.postForm("/challenges/join", url.Values{"challengeId": {id}}, cookie)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/challenges", w.Header().Get("Location"))
}

func userPoints(t *testing.T, e *env, userID uint) int {
	t.Helper()
	var entry models.LeaderboardEntry
	err := e.db.Where("user_id = ?", userID).First(&entry).Error
	if err != nil {
		return 0
	}
	return entry.Points
}

func TestJoinAwardsPointsOnce(t *testing.T) {
	e := newTestEnv(t)
	user, cookie := e.newUser(t, "Runner", "runner@example.com")

	// "Run 5km" is seeded with 50 points.
	joinChallenge(t, e, cookie, "1")
	assert.Equal(t, 50, userPoints(t, e, user.ID))

	var count int64
	require.NoError(t, e.db.Model(&models.UserChallenge{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// Rejoining is a silent no-op: one row, points unchanged.
	joinChallenge(t, e, cookie, "1")
	assert.Equal(t, 50, userPoints(t, e, user.ID))
	require.NoError(t, e.db.Model(&models.UserChallenge{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestPointsSumAcrossJoins(t *testing.T) {
	e := newTestEnv(t)
	user, cookie := e.newUser(t, "Stacker", "stacker@example.com")

	// Run 5km (50) then 100 Push-ups (30).
	joinChallenge(t, e, cookie, "1")
	joinChallenge(t, e, cookie, "2")
	assert.Equal(t, 80, userPoints(t, e, user.ID))

	joinChallenge(t, e, cookie, "1")
	assert.Equal(t, 80, userPoints(t, e, user.ID))
}

func TestJoinUnknownChallengeLeavesNoTrace(t *testing.T) {
	e := newTestEnv(t)
	user, cookie := e.newUser(t, "Ghost", "ghost@example.com")

	w := e.postForm("/challenges/join", url.Values{"challengeId": {"999"}}, cookie)
	require.Equal(t, http.StatusFound, w.Code)

	// The award transaction rolls back the join as well.
	var count int64
	require.NoError(t, e.db.Model(&models.UserChallenge{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
	assert.Equal(t, 0, userPoints(t, e, user.ID))
}

func TestChallengeListMarksJoined(t *testing.T) {
	e := newTestEnv(t)
	_, cookie := e.newUser(t, "Lister", "lister@example.com")

	joinChallenge(t, e, cookie, "2")

	w := e.get("/challenges", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "100 Push-ups=joined;")
	assert.Contains(t, body, "Run 5km=open;")
}
