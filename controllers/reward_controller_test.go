package controllers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitquest/fitquest/models"
)

func claimReward(t *testing.T, e *env, cookie *http.Cookie, id string) {
	t.Helper()
	w := e.postForm("/rewards/claim", url.Values{"rewardId": {id}}, cookie)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/rewards", w.Header().Get("Location"))
}

func rewardCount(t *testing.T, e *env, userID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, e.db.Model(&models.UserReward{}).Where("user_id = ?", userID).Count(&count).Error)
	return count
}

func TestClaimBelowThresholdFails(t *testing.T) {
	e := newTestEnv(t)
	user, cookie := e.newUser(t, "Eager", "eager@example.com")

	// "5K Runner Badge" requires 50 points; the user has none.
	claimReward(t, e, cookie, "1")
	assert.EqualValues(t, 0, rewardCount(t, e, user.ID))

	// After earning 50 points the same claim succeeds exactly once.
	joinChallenge(t, e, cookie, "1")
	claimReward(t, e, cookie, "1")
	assert.EqualValues(t, 1, rewardCount(t, e, user.ID))

	claimReward(t, e, cookie, "1")
	assert.EqualValues(t, 1, rewardCount(t, e, user.ID))
}

func TestClaimDoesNotSpendPoints(t *testing.T) {
	e := newTestEnv(t)
	user, cookie := e.newUser(t, "Holder", "holder@example.com")

	joinChallenge(t, e, cookie, "1") // 50 pts
	claimReward(t, e, cookie, "2")   // requires 30
	assert.EqualValues(t, 1, rewardCount(t, e, user.ID))
	assert.Equal(t, 50, userPoints(t, e, user.ID))
}

func TestClaimUnknownRewardIsSilent(t *testing.T) {
	e := newTestEnv(t)
	user, cookie := e.newUser(t, "Curious", "curious@example.com")

	claimReward(t, e, cookie, "999")
	assert.EqualValues(t, 0, rewardCount(t, e, user.ID))
}

func TestRewardPageShowsPointsAndClaims(t *testing.T) {
	e := newTestEnv(t)
	_, cookie := e.newUser(t, "Viewer", "viewer@example.com")

	w := e.get("/rewards", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "points=0")

	joinChallenge(t, e, cookie, "2") // 30 pts
	claimReward(t, e, cookie, "2")

	w = e.get("/rewards", cookie)
	body := w.Body.String()
	assert.Contains(t, body, "points=30")
	assert.Contains(t, body, "Push-up Pro=claimed;")
	assert.Contains(t, body, "5K Runner Badge=unclaimed;")
}
