package sync

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncLog_FinalizeStatus(t *testing.T) {
	cases := []struct {
		name   string
		total  int
		synced int
		failed int
		want   LogStatus
	}{
		{"all synced", 10, 10, 0, LogStatusSuccess},
		{"empty catalog", 0, 0, 0, LogStatusSuccess},
		{"all failed", 10, 0, 10, LogStatusFailed},
		{"mixed outcome", 10, 8, 2, LogStatusPartial},
		{"single failure", 1, 0, 1, LogStatusFailed},
		{"single success", 1, 1, 0, LogStatusSuccess},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			log := NewSyncLog(uuid.New(), SyncTypeManual)
			assert.Equal(t, LogStatusRunning, log.Status)
			assert.Nil(t, log.CompletedAt)

			log.Finalize(tc.total, tc.synced, tc.failed, "")

			assert.Equal(t, tc.want, log.Status)
			assert.Equal(t, tc.total, log.ItemsTotal)
			require.NotNil(t, log.CompletedAt)
		})
	}
}

func TestSyncLog_FailBeforeProcessing(t *testing.T) {
	log := NewSyncLog(uuid.New(), SyncTypeScheduled)
	log.Fail("fetch catalog: connection refused")

	assert.Equal(t, LogStatusFailed, log.Status)
	assert.Equal(t, 0, log.ItemsTotal)
	assert.Contains(t, log.ErrorLog, "connection refused")
	require.NotNil(t, log.CompletedAt)
}

func TestSyncLog_Duration(t *testing.T) {
	log := NewSyncLog(uuid.New(), SyncTypeManual)
	assert.Equal(t, time.Duration(0), log.Duration())

	log.StartedAt = time.Now().Add(-3 * time.Second)
	log.Finalize(1, 1, 0, "")
	assert.GreaterOrEqual(t, log.Duration(), 3*time.Second)
}

func TestSyncSchedule_RecordRun(t *testing.T) {
	schedule := NewDefaultSchedule(uuid.New())
	assert.Equal(t, DefaultCronExpr, schedule.CronExpr)
	assert.False(t, schedule.Enabled)
	assert.True(t, schedule.NotifyOnError)

	next := time.Now().Add(time.Hour)
	schedule.RecordRun(LogStatusSuccess, &next)
	schedule.RecordRun(LogStatusPartial, &next)
	schedule.RecordRun(LogStatusFailed, nil)

	assert.Equal(t, int64(3), schedule.TotalRuns)
	assert.Equal(t, int64(1), schedule.SuccessRuns)
	assert.Equal(t, int64(2), schedule.FailedRuns)
	require.NotNil(t, schedule.LastRunAt)
	assert.Nil(t, schedule.NextRunAt)
}

func TestSyncSchedule_UpdateSpec(t *testing.T) {
	schedule := NewDefaultSchedule(uuid.New())
	schedule.UpdateSpec("30 2 * * *", "Asia/Seoul", true)

	assert.Equal(t, "30 2 * * *", schedule.CronExpr)
	assert.Equal(t, "Asia/Seoul", schedule.Timezone)
	assert.True(t, schedule.Enabled)
}
