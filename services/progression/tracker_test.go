package progression

import (
	"skillforge/database"
	"skillforge/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartContentIdempotent(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "start@test.com")
	module := createTestModule(t, models.DifficultyBeginner)
	content := createTestContent(t, module.ID, models.ContentVideo, 10)

	rec, alreadyStarted, err := StartContent(user.ID, content.ID)
	require.NoError(t, err)
	assert.False(t, alreadyStarted)
	assert.Equal(t, models.ProgressInProgress, rec.Status)
	assert.Equal(t, 1, rec.ProgressPercentage)
	require.NotNil(t, rec.StartedAt)

	firstStarted := *rec.StartedAt

	rec, alreadyStarted, err = StartContent(user.ID, content.ID)
	require.NoError(t, err)
	assert.True(t, alreadyStarted)
	assert.Equal(t, models.ProgressInProgress, rec.Status)
	assert.WithinDuration(t, firstStarted, *rec.StartedAt, time.Second)
}

func TestStartContentUnpublished(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "unpublished@test.com")
	module := createTestModule(t, models.DifficultyBeginner)
	content := createTestContent(t, module.ID, models.ContentVideo, 10)

	require.NoError(t, database.Database.Db.Model(content).Update("is_published", false).Error)

	_, _, err := StartContent(user.ID, content.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProgressValidation(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "validation@test.com")
	module := createTestModule(t, models.DifficultyBeginner)
	content := createTestContent(t, module.ID, models.ContentVideo, 10)

	_, err := UpdateContentProgress(user.ID, content.ID, -1, 0)
	assert.ErrorIs(t, err, ErrPercentageRange)

	_, err = UpdateContentProgress(user.ID, content.ID, 101, 0)
	assert.ErrorIs(t, err, ErrPercentageRange)
}

func TestVideoThresholdCompletes(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "video@test.com")
	module := createTestModule(t, models.DifficultyBeginner)
	content := createTestContent(t, module.ID, models.ContentVideo, 10)

	rec, err := UpdateContentProgress(user.ID, content.ID, 89, 5)
	require.NoError(t, err)
	assert.Equal(t, models.ProgressInProgress, rec.Status)
	assert.Equal(t, 89, rec.ProgressPercentage)

	rec, err = UpdateContentProgress(user.ID, content.ID, 90, 3)
	require.NoError(t, err)
	assert.Equal(t, models.ProgressCompleted, rec.Status)
	assert.Equal(t, 100, rec.ProgressPercentage)
	require.NotNil(t, rec.CompletedAt)

	assert.Equal(t, 20, userTotalXP(t, user.ID))
}

func TestNonVideoNotCompletedByThreshold(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "doc@test.com")
	module := createTestModule(t, models.DifficultyBeginner)
	content := createTestContent(t, module.ID, models.ContentDocument, 0)

	rec, err := UpdateContentProgress(user.ID, content.ID, 95, 0)
	require.NoError(t, err)
	assert.Equal(t, models.ProgressInProgress, rec.Status)
	assert.Equal(t, 95, rec.ProgressPercentage)
	assert.Equal(t, 0, userTotalXP(t, user.ID))
}

func TestCompleteContentTwiceAwardsOnce(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "twice@test.com")
	module := createTestModule(t, models.DifficultyBeginner)
	content := createTestContent(t, module.ID, models.ContentLab, 0)

	rec, err := CompleteContent(user.ID, content.ID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, models.ProgressCompleted, rec.Status)
	require.NotNil(t, rec.CompletedAt)
	firstCompleted := *rec.CompletedAt

	assert.Equal(t, 50, userTotalXP(t, user.ID))

	rec, err = CompleteContent(user.ID, content.ID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, models.ProgressCompleted, rec.Status)
	assert.WithinDuration(t, firstCompleted, *rec.CompletedAt, time.Second)

	// No double credit
	assert.Equal(t, 50, userTotalXP(t, user.ID))

	var txns int64
	database.Database.Db.Model(&models.XPTransaction{}).
		Where("user_id = ? AND ref_type = ?", user.ID, models.XPRefContent).
		Count(&txns)
	assert.EqualValues(t, 1, txns)
}

func TestCompleteContentRetryCanAddScore(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "retry@test.com")
	module := createTestModule(t, models.DifficultyBeginner)
	content := createTestContent(t, module.ID, models.ContentGame, 0)

	_, err := CompleteContent(user.ID, content.ID, nil, nil)
	require.NoError(t, err)

	score, maxScore := 8, 10
	rec, err := CompleteContent(user.ID, content.ID, &score, &maxScore)
	require.NoError(t, err)
	require.NotNil(t, rec.Score)
	require.NotNil(t, rec.MaxScore)
	assert.Equal(t, 8, *rec.Score)
	assert.Equal(t, 10, *rec.MaxScore)

	assert.Equal(t, 40, userTotalXP(t, user.ID))
}

func TestCompleteContentScoreRange(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "score@test.com")
	module := createTestModule(t, models.DifficultyBeginner)
	content := createTestContent(t, module.ID, models.ContentGame, 0)

	score, maxScore := 11, 10
	_, err := CompleteContent(user.ID, content.ID, &score, &maxScore)
	assert.ErrorIs(t, err, ErrScoreRange)
}

func TestUpdateAfterCompleteOnlyAccumulatesTime(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "rewatch@test.com")
	module := createTestModule(t, models.DifficultyBeginner)
	content := createTestContent(t, module.ID, models.ContentVideo, 10)

	_, err := UpdateContentProgress(user.ID, content.ID, 100, 10)
	require.NoError(t, err)
	assert.Equal(t, 20, userTotalXP(t, user.ID))

	// Rewatch: lower percentage must not regress the completed record
	rec, err := UpdateContentProgress(user.ID, content.ID, 40, 5)
	require.NoError(t, err)
	assert.Equal(t, models.ProgressCompleted, rec.Status)
	assert.Equal(t, 100, rec.ProgressPercentage)
	assert.Equal(t, 15, rec.TimeSpent)
	assert.Equal(t, 20, userTotalXP(t, user.ID))
}

func TestGetContentProgressNotStarted(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "notstarted@test.com")
	module := createTestModule(t, models.DifficultyBeginner)
	content := createTestContent(t, module.ID, models.ContentVideo, 10)

	rec, err := GetContentProgress(user.ID, content.ID)
	require.NoError(t, err)
	assert.Zero(t, rec.ID)
	assert.Equal(t, models.ProgressNotStarted, rec.Status)
	assert.Equal(t, content.ID, rec.ContentID)
}
