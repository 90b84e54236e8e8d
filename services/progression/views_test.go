package progression

import (
	"skillforge/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserOverallProgress(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "overall@test.com")
	module := createTestModule(t, models.DifficultyBeginner)
	content := createTestContent(t, module.ID, models.ContentVideo, 0)
	other := createTestModule(t, models.DifficultyAdvanced)

	_, err := EnrollModule(user.ID, module.ID)
	require.NoError(t, err)
	_, err = EnrollModule(user.ID, other.ID)
	require.NoError(t, err)

	_, err = CompleteContent(user.ID, content.ID, nil, nil)
	require.NoError(t, err)

	overview, err := UserOverallProgress(user.ID)
	require.NoError(t, err)

	// 2*10 enroll + 20 video + 100 module bonus
	assert.Equal(t, 140, overview.TotalXP)
	assert.Equal(t, 1, overview.Level)
	assert.Equal(t, 2, overview.TotalEnrollments)
	assert.Equal(t, 1, overview.CompletedModules)
	assert.Equal(t, 1, overview.CompletedContents)
	assert.Equal(t, 1, overview.CurrentStreak)
	assert.Len(t, overview.Enrollments, 2)
}

func TestUserOverallProgressUnknownUser(t *testing.T) {
	setupTestDB(t)

	_, err := UserOverallProgress(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserModuleProgressSynthesizesRows(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "breakdown@test.com")
	module := createTestModule(t, models.DifficultyBeginner)
	first := createTestContent(t, module.ID, models.ContentVideo, 0)
	createTestContent(t, module.ID, models.ContentLab, 0)

	_, err := EnrollModule(user.ID, module.ID)
	require.NoError(t, err)

	_, err = CompleteContent(user.ID, first.ID, nil, nil)
	require.NoError(t, err)

	breakdown, err := UserModuleProgress(user.ID, module.ID)
	require.NoError(t, err)
	require.Len(t, breakdown.Items, 2)
	require.NotNil(t, breakdown.Enrollment)

	byID := make(map[uint]ContentItemProgress, len(breakdown.Items))
	for _, item := range breakdown.Items {
		byID[item.ID] = item
	}

	assert.Equal(t, models.ProgressCompleted, byID[first.ID].Status)
	assert.Equal(t, 100, byID[first.ID].ProgressPercentage)

	for id, item := range byID {
		if id != first.ID {
			assert.Equal(t, models.ProgressNotStarted, item.Status)
			assert.Equal(t, 0, item.ProgressPercentage)
		}
	}
}

func TestUserModuleProgressUnknownModule(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "nomodule@test.com")

	_, err := UserModuleProgress(user.ID, 12345)
	assert.ErrorIs(t, err, ErrNotFound)
}
