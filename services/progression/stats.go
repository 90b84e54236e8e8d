package progression

import (
	"log"
	"skillforge/database"
	"skillforge/models"

	"gorm.io/gorm"
)

// AwardXP credits XP to the user's total and records an audit transaction.
// The increment runs in SQL so concurrent awards cannot lose updates.
func AwardXP(userID uint, amount int, reason, refType string, refID uint) error {
	if amount <= 0 {
		return nil
	}

	db := database.Database.Db

	res := db.Model(&models.User{}).
		Where("id = ? AND is_deleted = ?", userID, false).
		Update("total_xp", gorm.Expr("total_xp + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	txn := models.XPTransaction{
		UserID:  userID,
		Amount:  amount,
		Reason:  reason,
		RefType: refType,
		RefID:   refID,
	}
	if err := db.Create(&txn).Error; err != nil {
		// The credit itself went through; losing the audit row is logged, not fatal.
		log.Printf("Failed to record XP transaction for user %d: %v", userID, err)
	}

	return nil
}
