package services

import (
	"testing"

	"rewear/internal/db"
	"rewear/internal/models"
	"rewear/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminAdjustPoints(t *testing.T) {
	setupTestDB(t)
	user := createUser(t, 450)

	require.NoError(t, AdminAdjustPoints(user.ID, 100, "活动补偿"))

	var got models.User
	reload(t, &got, user.ID)
	assert.Equal(t, 550, got.Points)
	assert.Equal(t, utils.LevelEcoChampion, got.Level)

	var activities []models.Activity
	require.NoError(t, db.DB.Where("type = ?", models.ActivityAdminAdjustment).Find(&activities).Error)
	require.Len(t, activities, 1)
	assert.Equal(t, 100, activities[0].Delta)
}

// 管理员扣分不做零下限钳制，余额允许为负
func TestAdminAdjustPointsAllowsNegativeBalance(t *testing.T) {
	setupTestDB(t)
	user := createUser(t, 30)

	require.NoError(t, AdminAdjustPoints(user.ID, -100, "违规处罚"))

	var got models.User
	reload(t, &got, user.ID)
	assert.Equal(t, -70, got.Points)
	assert.Equal(t, utils.LevelNewcomer, got.Level)
}

func TestAdminAdjustPointsErrors(t *testing.T) {
	setupTestDB(t)
	user := createUser(t, 0)

	assert.ErrorIs(t, AdminAdjustPoints(user.ID, 0, "no-op"), ErrInvalidOperation)
	assert.ErrorIs(t, AdminAdjustPoints(9999, 10, "ghost"), ErrNotFound)
}

// 等级只由当前余额派生，升降都要重算
func TestLevelRecomputeOnBalanceChange(t *testing.T) {
	setupTestDB(t)
	user := createUser(t, 0)

	steps := []struct {
		delta int
		level string
	}{
		{99, utils.LevelNewcomer},
		{1, utils.LevelFashionEnthusiast},  // 100
		{400, utils.LevelEcoChampion},      // 500
		{500, utils.LevelSwapMaster},       // 1000
		{-901, utils.LevelNewcomer},        // 99
	}
	for _, step := range steps {
		require.NoError(t, AdminAdjustPoints(user.ID, step.delta, "test"))
		var got models.User
		reload(t, &got, user.ID)
		assert.Equal(t, step.level, got.Level)
	}
}
