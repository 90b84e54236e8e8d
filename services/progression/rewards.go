package progression

import (
	"skillforge/config"
	"skillforge/models"
)

// Reward policy. Pure functions over configuration; every completion path
// (video, lab, game, document, module, enrollment) funnels through these.

func difficultyMultiplier(difficulty string) float64 {
	cfg := config.AppConfig
	switch difficulty {
	case models.DifficultyIntermediate:
		return cfg.MultiplierIntermediate
	case models.DifficultyAdvanced:
		return cfg.MultiplierAdvanced
	default:
		return cfg.MultiplierBeginner
	}
}

// XPForContent returns the XP awarded for completing a single content item
func XPForContent(contentType, difficulty string, durationMinutes int) int {
	cfg := config.AppConfig

	var base int
	switch contentType {
	case models.ContentVideo:
		base = cfg.XPVideoBase
	case models.ContentLab:
		base = cfg.XPLabBase
	case models.ContentGame:
		base = cfg.XPGameBase
	case models.ContentDocument:
		base = cfg.XPDocumentBase
	}

	if cfg.DurationBonusStepMinutes > 0 && durationMinutes > 0 {
		base += durationMinutes / cfg.DurationBonusStepMinutes * cfg.DurationBonusXP
	}

	return int(float64(base) * difficultyMultiplier(difficulty))
}

// XPForModuleCompletion returns the one-time bonus for finishing every item of a module
func XPForModuleCompletion(difficulty string) int {
	return int(float64(config.AppConfig.ModuleBonusBaseXP) * difficultyMultiplier(difficulty))
}

// XPForEnrollment returns the fixed XP awarded on enrolling into a module
func XPForEnrollment() int {
	return config.AppConfig.EnrollmentXP
}

// LevelForXP derives the level shown to users; it is never stored
func LevelForXP(totalXP int) int {
	unit := config.AppConfig.LevelXPUnit
	if unit <= 0 {
		return 1
	}
	return totalXP/unit + 1
}
