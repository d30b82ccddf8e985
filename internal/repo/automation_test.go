package repo

import (
	"testing"
	"time"

	"tallybook/internal/models"

	"github.com/stretchr/testify/require"
)

func TestAutomationRepository_CRUD(t *testing.T) {
	db := setupTestDB(t)
	repository, err := New(db)
	require.NoError(t, err)

	a := &models.Automation{
		Scope:           "u",
		Name:            "房租",
		Type:            models.AutomationRecurring,
		Amount:          15000,
		Currency:        "TWD",
		DayOfMonth:      5,
		TransactionKind: models.KindExpense,
		TargetAssetID:   "bank",
		Active:          true,
	}

	require.NoError(t, repository.CreateAutomation(a))
	require.NotEmpty(t, a.ID)

	got, err := repository.GetAutomationByID("u", a.ID)
	require.NoError(t, err)
	require.Equal(t, models.AutomationRecurring, got.Type)
	require.True(t, got.Active)

	got.Active = false
	require.NoError(t, repository.UpdateAutomation(got))

	all, err := repository.GetAllAutomations("u")
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.False(t, all[0].Active)

	require.NoError(t, repository.DeleteAutomation("u", a.ID))
	_, err = repository.GetAutomationByID("u", a.ID)
	require.Error(t, err)
}

func TestAutomationRepository_MarkRun(t *testing.T) {
	db := setupTestDB(t)
	repository, err := New(db)
	require.NoError(t, err)

	active := &models.Automation{Scope: "u", Name: "active", Type: models.AutomationRecurring, Active: true}
	paused := &models.Automation{Scope: "u", Name: "paused", Type: models.AutomationRecurring, Active: false}
	require.NoError(t, repository.CreateAutomation(active))
	require.NoError(t, repository.CreateAutomation(paused))

	at := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repository.MarkAutomationsRun("u", at))

	got, err := repository.GetAutomationByID("u", active.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastRun)
	require.True(t, got.LastRun.Equal(at))

	got, err = repository.GetAutomationByID("u", paused.ID)
	require.NoError(t, err)
	require.Nil(t, got.LastRun)
}
