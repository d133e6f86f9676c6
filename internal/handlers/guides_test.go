package handlers

import (
	"testing"

	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/types"
	"github.com/stretchr/testify/assert"
)

func TestApplyGuideUpdate(t *testing.T) {
	t.Run("omitted status and level are preserved", func(t *testing.T) {
		guide := types.Guide{
			Title:       "old title",
			Description: "old description",
			Status:      types.GuideStatusPublished,
			Level:       types.LevelAdvanced,
		}

		applyGuideUpdate(&guide, GuideRequest{
			Title:       "new title",
			Description: "new description",
		})

		assert.Equal(t, "new title", guide.Title)
		assert.Equal(t, "new description", guide.Description)
		assert.Equal(t, types.GuideStatusPublished, guide.Status)
		assert.Equal(t, types.LevelAdvanced, guide.Level)
	})

	t.Run("explicit status and level win", func(t *testing.T) {
		guide := types.Guide{
			Status: types.GuideStatusPublished,
			Level:  types.LevelAdvanced,
		}

		applyGuideUpdate(&guide, GuideRequest{
			Title:       "t",
			Description: "d",
			Status:      types.GuideStatusDraft,
			Level:       types.LevelBeginner,
		})

		assert.Equal(t, types.GuideStatusDraft, guide.Status)
		assert.Equal(t, types.LevelBeginner, guide.Level)
	})
}
