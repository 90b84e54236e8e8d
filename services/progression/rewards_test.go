package progression

import (
	"skillforge/config"
	"skillforge/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestXPForContent(t *testing.T) {
	config.LoadConfig()

	tests := []struct {
		name        string
		contentType string
		difficulty  string
		duration    int
		want        int
	}{
		{"short beginner video", models.ContentVideo, models.DifficultyBeginner, 10, 20},
		{"long beginner video", models.ContentVideo, models.DifficultyBeginner, 60, 30},
		{"beginner lab", models.ContentLab, models.DifficultyBeginner, 0, 50},
		{"advanced lab with duration", models.ContentLab, models.DifficultyAdvanced, 60, 120},
		{"intermediate game", models.ContentGame, models.DifficultyIntermediate, 0, 60},
		{"beginner document", models.ContentDocument, models.DifficultyBeginner, 0, 10},
		{"intermediate document", models.ContentDocument, models.DifficultyIntermediate, 30, 22},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, XPForContent(tt.contentType, tt.difficulty, tt.duration))
		})
	}
}

func TestXPForModuleCompletion(t *testing.T) {
	config.LoadConfig()

	assert.Equal(t, 100, XPForModuleCompletion(models.DifficultyBeginner))
	assert.Equal(t, 150, XPForModuleCompletion(models.DifficultyIntermediate))
	assert.Equal(t, 200, XPForModuleCompletion(models.DifficultyAdvanced))
}

func TestLevelForXP(t *testing.T) {
	config.LoadConfig()

	assert.Equal(t, 1, LevelForXP(0))
	assert.Equal(t, 1, LevelForXP(499))
	assert.Equal(t, 2, LevelForXP(500))
	assert.Equal(t, 3, LevelForXP(1250))
}
