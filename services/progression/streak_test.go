package progression

import (
	"skillforge/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreakConsecutiveDays(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "streak@test.com")

	day := time.Date(2026, 3, 1, 15, 30, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		updated, err := touchStreakAt(user.ID, day.AddDate(0, 0, i))
		require.NoError(t, err)
		assert.Equal(t, i+1, updated.CurrentStreak)
		assert.Equal(t, i+1, updated.LongestStreak)
	}
}

func TestStreakSameDayIdempotent(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "sameday@test.com")

	morning := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 1, 22, 0, 0, 0, time.UTC)

	updated, err := touchStreakAt(user.ID, morning)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.CurrentStreak)

	updated, err = touchStreakAt(user.ID, evening)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.CurrentStreak)
	assert.Equal(t, 1, updated.LongestStreak)
}

func TestStreakGapResets(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "gap@test.com")

	day := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 4; i++ {
		_, err := touchStreakAt(user.ID, day.AddDate(0, 0, i))
		require.NoError(t, err)
	}

	// Two silent days break the streak; longest survives
	updated, err := touchStreakAt(user.ID, day.AddDate(0, 0, 6))
	require.NoError(t, err)
	assert.Equal(t, 1, updated.CurrentStreak)
	assert.Equal(t, 4, updated.LongestStreak)
}

func TestStreakCrossesUTCMidnight(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "midnight@test.com")

	lateNight := time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC)
	justAfter := time.Date(2026, 3, 2, 0, 1, 0, 0, time.UTC)

	_, err := touchStreakAt(user.ID, lateNight)
	require.NoError(t, err)

	updated, err := touchStreakAt(user.ID, justAfter)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.CurrentStreak)
}

func TestStreakStatusDerivation(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "status@test.com")

	now := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)

	status, _, err := streakStatusAt(user.ID, now)
	require.NoError(t, err)
	assert.Equal(t, StreakNone, status)

	_, err = touchStreakAt(user.ID, now)
	require.NoError(t, err)

	status, _, err = streakStatusAt(user.ID, now)
	require.NoError(t, err)
	assert.Equal(t, StreakActiveToday, status)

	status, _, err = streakStatusAt(user.ID, now.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, StreakAtRisk, status)

	status, _, err = streakStatusAt(user.ID, now.AddDate(0, 0, 2))
	require.NoError(t, err)
	assert.Equal(t, StreakBroken, status)
}

func TestStreakFeedsAchievements(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "streakach@test.com")
	createTestAchievement(t, "week-warrior", models.CategoryStreak, 3, 100)

	day := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := touchStreakAt(user.ID, day.AddDate(0, 0, i))
		require.NoError(t, err)
	}

	assert.Equal(t, 100, userTotalXP(t, user.ID))
}

func TestStreakLeaderboardOrdering(t *testing.T) {
	setupTestDB(t)
	short := createTestUser(t, "short@test.com")
	long := createTestUser(t, "long@test.com")

	day := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	_, err := touchStreakAt(short.ID, day)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err := touchStreakAt(long.ID, day.AddDate(0, 0, i))
		require.NoError(t, err)
	}

	entries, err := StreakLeaderboard(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, long.ID, entries[0].UserID)
	assert.Equal(t, 5, entries[0].Score)
	assert.Equal(t, short.ID, entries[1].UserID)
	assert.Equal(t, 1, entries[1].Score)
}
