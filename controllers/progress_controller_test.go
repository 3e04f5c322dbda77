package controllers_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitquest/fitquest/models"
)

func addProgress(t *testing.T, e *env, cookie *http.Cookie, date, steps string) {
	t.Helper()
	w := e.postForm("/progress", url.Values{
		"date":     {date},
		"steps":    {steps},
		"calories": {"300"},
		"distance": {"2.5"},
	}, cookie)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/progress", w.Header().Get("Location"))
}

func TestProgressListNewestFirst(t *testing.T) {
	e := newTestEnv(t)
	_, cookie := e.newUser(t, "Walker", "walker@example.com")

	addProgress(t, e, cookie, "2026-01-05", "4000")
	addProgress(t, e, cookie, "2026-01-10", "9000")
	addProgress(t, e, cookie, "2026-01-01", "1000")

	w := e.get("/progress", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	first := strings.Index(body, "2026-01-10")
	second := strings.Index(body, "2026-01-05")
	third := strings.Index(body, "2026-01-01")
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	require.NotEqual(t, -1, third)
	assert.Less(t, first, second)
	assert.Less(t, second, third)
}

func TestProgressAllowsDuplicateDatesAndOddValues(t *testing.T) {
	e := newTestEnv(t)
	user, cookie := e.newUser(t, "Honest", "honest@example.com")

	// Self-reports are stored verbatim, including negatives and repeats.
	addProgress(t, e, cookie, "2026-02-01", "-500")
	addProgress(t, e, cookie, "2026-02-01", "123456789")

	var records []models.ProgressRecord
	require.NoError(t, e.db.Where("user_id = ?", user.ID).Find(&records).Error)
	require.Len(t, records, 2)
}

func TestProgressIsPerUserAndAppendOnly(t *testing.T) {
	e := newTestEnv(t)
	alice, aliceCookie := e.newUser(t, "AliceP", "alicep@example.com")
	_, bobCookie := e.newUser(t, "BobP", "bobp@example.com")

	addProgress(t, e, aliceCookie, "2026-03-01", "5000")
	addProgress(t, e, bobCookie, "2026-03-02", "7000")

	w := e.get("/progress", aliceCookie)
	body := w.Body.String()
	assert.Contains(t, body, "2026-03-01")
	assert.NotContains(t, body, "2026-03-02")

	// No other operation touches existing rows: run the other mutating
	// endpoints and verify the record is byte-identical afterwards.
	joinChallenge(t, e, aliceCookie, "1")
	claimReward(t, e, aliceCookie, "1")
	e.postForm("/chat", url.Values{"message": {"hi"}}, aliceCookie)
	e.postForm("/chat/clear", nil, aliceCookie)

	var records []models.ProgressRecord
	require.NoError(t, e.db.Where("user_id = ?", alice.ID).Find(&records).Error)
	require.Len(t, records, 1)
	assert.Equal(t, "2026-03-01", records[0].Date)
	assert.Equal(t, 5000, records[0].Steps)
}
