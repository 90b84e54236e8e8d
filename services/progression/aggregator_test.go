package progression

import (
	"skillforge/database"
	"skillforge/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollModule(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "enroll@test.com")
	module := createTestModule(t, models.DifficultyBeginner)
	createTestContent(t, module.ID, models.ContentVideo, 10)
	createTestContent(t, module.ID, models.ContentLab, 0)

	enrollment, err := EnrollModule(user.ID, module.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentActive, enrollment.Status)
	assert.Equal(t, 2, enrollment.TotalSections)
	assert.Equal(t, 10, userTotalXP(t, user.ID))

	_, err = EnrollModule(user.ID, module.ID)
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)

	// No double enrollment XP
	assert.Equal(t, 10, userTotalXP(t, user.ID))
}

func TestEnrollUnpublishedModule(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "enrollunpub@test.com")
	module := createTestModule(t, models.DifficultyBeginner)
	require.NoError(t, database.Database.Db.Model(module).Update("is_published", false).Error)

	_, err := EnrollModule(user.ID, module.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestModuleCompletionFlow(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "flow@test.com")
	module := createTestModule(t, models.DifficultyBeginner)

	items := []*models.ContentItem{
		createTestContent(t, module.ID, models.ContentVideo, 0),
		createTestContent(t, module.ID, models.ContentVideo, 0),
		createTestContent(t, module.ID, models.ContentLab, 0),
		createTestContent(t, module.ID, models.ContentDocument, 0),
	}

	_, err := EnrollModule(user.ID, module.ID)
	require.NoError(t, err)

	wantPercentages := []int{25, 50, 75, 100}
	for i, item := range items {
		_, err := CompleteContent(user.ID, item.ID, nil, nil)
		require.NoError(t, err)

		var enrollment models.Enrollment
		require.NoError(t, database.Database.Db.
			Where("user_id = ? AND module_id = ?", user.ID, module.ID).First(&enrollment).Error)
		assert.Equal(t, i+1, enrollment.CompletedSections)
		assert.Equal(t, wantPercentages[i], enrollment.ProgressPercentage)
	}

	var enrollment models.Enrollment
	require.NoError(t, database.Database.Db.
		Where("user_id = ? AND module_id = ?", user.ID, module.ID).First(&enrollment).Error)
	assert.Equal(t, models.EnrollmentCompleted, enrollment.Status)
	require.NotNil(t, enrollment.CompletedAt)

	// 10 enroll + 2*20 videos + 50 lab + 10 document + 100 module bonus
	assert.Equal(t, 210, userTotalXP(t, user.ID))

	// Completing the last item again must not re-award the module bonus
	_, err = CompleteContent(user.ID, items[3].ID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 210, userTotalXP(t, user.ID))

	var bonusTxns int64
	database.Database.Db.Model(&models.XPTransaction{}).
		Where("user_id = ? AND ref_type = ?", user.ID, models.XPRefModule).
		Count(&bonusTxns)
	assert.EqualValues(t, 1, bonusTxns)
}

func TestRecomputeWithNoItems(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "empty@test.com")
	module := createTestModule(t, models.DifficultyBeginner)
	content := createTestContent(t, module.ID, models.ContentVideo, 0)

	_, err := EnrollModule(user.ID, module.ID)
	require.NoError(t, err)

	// Unpublishing the only item leaves the module with nothing countable
	require.NoError(t, database.Database.Db.Model(content).Update("is_published", false).Error)

	enrollment, err := RecomputeEnrollment(user.ID, module.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, enrollment.TotalSections)
	assert.Equal(t, 0, enrollment.ProgressPercentage)
	assert.Equal(t, models.EnrollmentActive, enrollment.Status)
}

func TestRecomputeTracksCatalogDrift(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "drift@test.com")
	module := createTestModule(t, models.DifficultyBeginner)
	first := createTestContent(t, module.ID, models.ContentVideo, 0)

	_, err := EnrollModule(user.ID, module.ID)
	require.NoError(t, err)

	_, err = CompleteContent(user.ID, first.ID, nil, nil)
	require.NoError(t, err)

	var enrollment models.Enrollment
	require.NoError(t, database.Database.Db.
		Where("user_id = ? AND module_id = ?", user.ID, module.ID).First(&enrollment).Error)
	assert.Equal(t, models.EnrollmentCompleted, enrollment.Status)

	// An item published after completion lowers the percentage on recompute,
	// but a completed enrollment never reverts.
	createTestContent(t, module.ID, models.ContentLab, 0)

	recomputed, err := RecomputeEnrollment(user.ID, module.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, recomputed.TotalSections)
	assert.Equal(t, 1, recomputed.CompletedSections)
	assert.Equal(t, 50, recomputed.ProgressPercentage)
	assert.Equal(t, models.EnrollmentCompleted, recomputed.Status)
}

func TestEnrollmentLifecycleTransitions(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "lifecycle@test.com")
	module := createTestModule(t, models.DifficultyBeginner)

	enrollment, err := EnrollModule(user.ID, module.ID)
	require.NoError(t, err)

	// Resume requires PAUSED
	_, err = ResumeEnrollment(user.ID, enrollment.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	paused, err := PauseEnrollment(user.ID, enrollment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentPaused, paused.Status)

	// Pause requires ACTIVE
	_, err = PauseEnrollment(user.ID, enrollment.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	resumed, err := ResumeEnrollment(user.ID, enrollment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentActive, resumed.Status)

	dropped, err := DropEnrollment(user.ID, enrollment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentDropped, dropped.Status)

	_, err = DropEnrollment(user.ID, enrollment.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestLifecycleScopedToOwner(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner@test.com")
	other := createTestUser(t, "other@test.com")
	module := createTestModule(t, models.DifficultyBeginner)

	enrollment, err := EnrollModule(owner.ID, module.ID)
	require.NoError(t, err)

	_, err = PauseEnrollment(other.ID, enrollment.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdminCompleteEnrollmentOnce(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "admin@test.com")
	module := createTestModule(t, models.DifficultyIntermediate)
	createTestContent(t, module.ID, models.ContentVideo, 0)

	enrollment, err := EnrollModule(user.ID, module.ID)
	require.NoError(t, err)
	xpAfterEnroll := userTotalXP(t, user.ID)

	completed, flipped, err := CompleteEnrollmentAdmin(enrollment.ID)
	require.NoError(t, err)
	assert.True(t, flipped)
	assert.Equal(t, models.EnrollmentCompleted, completed.Status)
	assert.Equal(t, xpAfterEnroll+150, userTotalXP(t, user.ID))

	_, flipped, err = CompleteEnrollmentAdmin(enrollment.ID)
	require.NoError(t, err)
	assert.False(t, flipped)
	assert.Equal(t, xpAfterEnroll+150, userTotalXP(t, user.ID))
}

func TestUnenroll(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "unenroll@test.com")
	module := createTestModule(t, models.DifficultyBeginner)

	enrollment, err := EnrollModule(user.ID, module.ID)
	require.NoError(t, err)

	require.NoError(t, Unenroll(user.ID, enrollment.ID))

	var reloaded models.Enrollment
	require.NoError(t, database.Database.Db.First(&reloaded, enrollment.ID).Error)
	assert.True(t, reloaded.IsDeleted)

	assert.ErrorIs(t, Unenroll(user.ID, enrollment.ID), ErrNotFound)
}
