package repo

import (
	"testing"
	"time"

	"tallybook/internal/models"

	"github.com/stretchr/testify/require"
)

func TestSystemLogRepository_AppendListClear(t *testing.T) {
	db := setupTestDB(t)
	repository, err := New(db)
	require.NoError(t, err)

	now := time.Now()
	logs := []models.SystemLog{
		{Scope: "u", Date: now.Add(-time.Minute), Title: "執行：房租", Status: models.StatusSuccess, Amount: "$15000"},
		{Scope: "u", Date: now, Title: "跳過：定期定額", Status: models.StatusSkipped},
		{Scope: "other", Date: now, Title: "執行：薪資", Status: models.StatusSuccess},
	}
	require.NoError(t, repository.CreateSystemLogs(logs))

	got, err := repository.ListSystemLogs("u", 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Newest first.
	require.Equal(t, "跳過：定期定額", got[0].Title)

	require.NoError(t, repository.ClearSystemLogs("u"))

	got, err = repository.ListSystemLogs("u", 0)
	require.NoError(t, err)
	require.Empty(t, got)

	// Other scopes untouched by the clear.
	got, err = repository.ListSystemLogs("other", 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestSystemLogRepository_Limit(t *testing.T) {
	db := setupTestDB(t)
	repository, err := New(db)
	require.NoError(t, err)

	var logs []models.SystemLog
	for i := 0; i < 5; i++ {
		logs = append(logs, models.SystemLog{
			Scope: "u", Date: time.Now().Add(time.Duration(i) * time.Second),
			Title: "entry", Status: models.StatusSuccess,
		})
	}
	require.NoError(t, repository.CreateSystemLogs(logs))

	got, err := repository.ListSystemLogs("u", 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
}
