package progression

import (
	"skillforge/database"
	"skillforge/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvanceAchievementMonotonicAndClamped(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "monotonic@test.com")
	def := createTestAchievement(t, "binge-watcher", models.CategoryVideo, 10, 100)

	completed, err := AdvanceAchievement(user.ID, def.Slug, 4)
	require.NoError(t, err)
	assert.False(t, completed)

	// A smaller count never rolls progress back
	completed, err = AdvanceAchievement(user.ID, def.Slug, 2)
	require.NoError(t, err)
	assert.False(t, completed)

	var ua models.UserAchievement
	require.NoError(t, database.Database.Db.
		Where("user_id = ? AND achievement_id = ?", user.ID, def.ID).First(&ua).Error)
	assert.Equal(t, 4, ua.Current)

	// Counts past the target clamp to it
	completed, err = AdvanceAchievement(user.ID, def.Slug, 25)
	require.NoError(t, err)
	assert.True(t, completed)

	require.NoError(t, database.Database.Db.
		Where("user_id = ? AND achievement_id = ?", user.ID, def.ID).First(&ua).Error)
	assert.Equal(t, 10, ua.Current)
	assert.True(t, ua.IsCompleted)
	require.NotNil(t, ua.CompletedAt)
}

func TestAdvanceAchievementCompletesOnce(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "once@test.com")
	def := createTestAchievement(t, "first-steps", models.CategoryModule, 1, 100)

	completed, err := AdvanceAchievement(user.ID, def.Slug, 1)
	require.NoError(t, err)
	assert.True(t, completed)
	assert.Equal(t, 100, userTotalXP(t, user.ID))

	completed, err = AdvanceAchievement(user.ID, def.Slug, 1)
	require.NoError(t, err)
	assert.False(t, completed)
	assert.Equal(t, 100, userTotalXP(t, user.ID))
}

func TestAdvanceAchievementUnknownSlug(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "unknown@test.com")

	_, err := AdvanceAchievement(user.ID, "no-such-achievement", 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFirstStepsUnlockedByModuleCompletion(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "firststeps@test.com")
	createTestAchievement(t, "first-steps", models.CategoryModule, 1, 100)

	module := createTestModule(t, models.DifficultyBeginner)
	content := createTestContent(t, module.ID, models.ContentVideo, 0)

	_, err := EnrollModule(user.ID, module.ID)
	require.NoError(t, err)

	_, err = CompleteContent(user.ID, content.ID, nil, nil)
	require.NoError(t, err)

	var ua models.UserAchievement
	require.NoError(t, database.Database.Db.
		Where("user_id = ?", user.ID).First(&ua).Error)
	assert.True(t, ua.IsCompleted)

	// 10 enroll + 20 video + 100 module bonus + 100 achievement
	assert.Equal(t, 230, userTotalXP(t, user.ID))
}

func TestListUserAchievementsSynthesizesZeroRows(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "list@test.com")
	createTestAchievement(t, "binge-watcher", models.CategoryVideo, 10, 100)
	def := createTestAchievement(t, "lab-rat", models.CategoryLab, 4, 200)

	_, err := AdvanceAchievement(user.ID, def.Slug, 2)
	require.NoError(t, err)

	views, err := ListUserAchievements(user.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)

	byName := make(map[string]AchievementView, len(views))
	for _, v := range views {
		byName[v.Slug] = v
	}

	assert.Equal(t, 0, byName["binge-watcher"].Current)
	assert.Equal(t, 0, byName["binge-watcher"].Percentage)
	assert.False(t, byName["binge-watcher"].IsCompleted)

	assert.Equal(t, 2, byName["lab-rat"].Current)
	assert.Equal(t, 50, byName["lab-rat"].Percentage)
	assert.False(t, byName["lab-rat"].IsCompleted)
}

func TestAchievementLeaderboard(t *testing.T) {
	setupTestDB(t)
	first := createTestUser(t, "leader1@test.com")
	second := createTestUser(t, "leader2@test.com")
	small := createTestAchievement(t, "small", models.CategoryContent, 1, 50)
	big := createTestAchievement(t, "big", models.CategoryModule, 1, 300)

	_, err := AdvanceAchievement(first.ID, small.Slug, 1)
	require.NoError(t, err)

	_, err = AdvanceAchievement(second.ID, small.Slug, 1)
	require.NoError(t, err)
	_, err = AdvanceAchievement(second.ID, big.Slug, 1)
	require.NoError(t, err)

	entries, err := AchievementLeaderboard(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, second.ID, entries[0].UserID)
	assert.Equal(t, 350, entries[0].Score)
	assert.Equal(t, first.ID, entries[1].UserID)
	assert.Equal(t, 50, entries[1].Score)
}
