package game

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Fyyrerde4xhsj/TapNow/models"
)

func testConfig() Config {
	return Config{
		MaxEnergy:        1000,
		EnergyRefillRate: 2,
		PointsPerTap:     1,
		EnergyPerTap:     1,
		TaskReward:       1000,
		MinWithdrawal:    10000,
		TaskIDs:          []int{0, 1, 2, 3, 4},
	}
}

func newTestLedger(t *testing.T, cfg Config) *Ledger {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Withdrawal{}))
	return NewLedger(db, cfg)
}

func fixedClock(sec int64) func() time.Time {
	return func() time.Time { return time.Unix(sec, 0) }
}

func mustCreateUser(t *testing.T, l *Ledger) *models.User {
	t.Helper()
	user, err := l.CreateUser(context.Background(), "player1", "hash")
	require.NoError(t, err)
	return user
}

func TestCreateUserStartsFresh(t *testing.T) {
	l := newTestLedger(t, testConfig())
	l.now = fixedClock(1000)

	user := mustCreateUser(t, l)
	assert.Equal(t, int64(0), user.Points)
	assert.Equal(t, float64(1000), user.Energy)
	assert.Equal(t, int64(1000), user.LastEnergyUpdate)

	states, err := user.TaskStates()
	require.NoError(t, err)
	require.Len(t, states, 5)
	for i, st := range states {
		assert.Equal(t, i, st.ID)
		assert.False(t, st.Completed)
	}
}

func TestTapSpendsEnergyAndCreditsPoints(t *testing.T) {
	l := newTestLedger(t, testConfig())
	l.now = fixedClock(1000)
	user := mustCreateUser(t, l)

	got, err := l.Tap(context.Background(), user.ID, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Points)
	assert.Equal(t, float64(999), got.Energy)

	// State survived the round trip.
	persisted, err := l.Load(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), persisted.Points)
	assert.Equal(t, float64(999), persisted.Energy)
}

func TestTapRejectsMismatchedConstants(t *testing.T) {
	l := newTestLedger(t, testConfig())
	l.now = fixedClock(1000)
	user := mustCreateUser(t, l)

	cases := []struct {
		name   string
		points int64
		cost   float64
	}{
		{"inflated points", 100, 1},
		{"zero energy cost", 1, 0},
		{"both wrong", 50, 0.1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := l.Tap(context.Background(), user.ID, tc.points, tc.cost)
			assert.ErrorIs(t, err, ErrTapParams)
			require.NotNil(t, got)
			assert.Equal(t, int64(0), got.Points)
			assert.Equal(t, float64(1000), got.Energy)
		})
	}
}

func TestTapRejectsWhenEnergyExhausted(t *testing.T) {
	cfg := testConfig()
	cfg.EnergyRefillRate = 0
	l := newTestLedger(t, cfg)
	l.now = fixedClock(1000)
	user := mustCreateUser(t, l)

	require.NoError(t, l.db.Model(&models.User{}).Where("id = ?", user.ID).Update("energy", 1).Error)

	// First tap drains the last unit, second must be rejected.
	got, err := l.Tap(context.Background(), user.ID, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, float64(0), got.Energy)

	got, err = l.Tap(context.Background(), user.ID, 1, 1)
	assert.ErrorIs(t, err, ErrNoEnergy)
	require.NotNil(t, got)
	assert.Equal(t, int64(1), got.Points)
}

func TestConcurrentTapsSpendLastUnitOnce(t *testing.T) {
	cfg := testConfig()
	cfg.EnergyRefillRate = 0
	l := newTestLedger(t, cfg)
	l.now = fixedClock(1000)
	user := mustCreateUser(t, l)

	require.NoError(t, l.db.Model(&models.User{}).Where("id = ?", user.ID).Update("energy", 1).Error)

	// Two simultaneous taps race for the last energy unit. The version CAS
	// must let exactly one through; the loser reloads and sees an empty bar.
	errs := make(chan error, 2)
	start := make(chan struct{})
	for i := 0; i < 2; i++ {
		go func() {
			<-start
			_, err := l.Tap(context.Background(), user.ID, 1, 1)
			errs <- err
		}()
	}
	close(start)

	var succeeded, rejected int
	for i := 0; i < 2; i++ {
		err := <-errs
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrNoEnergy):
			rejected++
		default:
			t.Fatalf("unexpected tap error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, rejected)

	persisted, err := l.Load(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), persisted.Points)
	assert.Equal(t, float64(0), persisted.Energy)
}

func TestReadWithRefillConsumesIntervalOnce(t *testing.T) {
	l := newTestLedger(t, testConfig())
	l.now = fixedClock(1000)
	user := mustCreateUser(t, l)

	require.NoError(t, l.db.Model(&models.User{}).Where("id = ?", user.ID).Update("energy", 0).Error)

	l.now = fixedClock(1010)
	got, err := l.ReadWithRefill(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(20), got.Energy)
	assert.Equal(t, int64(1010), got.LastEnergyUpdate)

	// Same instant again: the interval was already consumed.
	got, err = l.ReadWithRefill(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(20), got.Energy)
}

func TestRefillNeverDrainsOnClockSkew(t *testing.T) {
	l := newTestLedger(t, testConfig())
	l.now = fixedClock(1000)
	user := mustCreateUser(t, l)

	require.NoError(t, l.db.Model(&models.User{}).Where("id = ?", user.ID).Update("energy", 400).Error)

	l.now = fixedClock(500)
	got, err := l.ReadWithRefill(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(400), got.Energy)
}

func TestCompleteTaskCreditsOnce(t *testing.T) {
	l := newTestLedger(t, testConfig())
	l.now = fixedClock(1000)
	user := mustCreateUser(t, l)

	got, err := l.CompleteTask(context.Background(), user.ID, 2, 1000)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), got.Points)

	states, err := got.TaskStates()
	require.NoError(t, err)
	assert.True(t, states[2].Completed)
	assert.False(t, states[0].Completed)

	// Replaying the same claim never pays twice.
	got, err = l.CompleteTask(context.Background(), user.ID, 2, 1000)
	assert.ErrorIs(t, err, ErrTaskDone)
	require.NotNil(t, got)
	assert.Equal(t, int64(1000), got.Points)
}

func TestCompleteTaskRejections(t *testing.T) {
	l := newTestLedger(t, testConfig())
	l.now = fixedClock(1000)
	user := mustCreateUser(t, l)

	_, err := l.CompleteTask(context.Background(), user.ID, 2, 999)
	assert.ErrorIs(t, err, ErrRewardMismatch)

	_, err = l.CompleteTask(context.Background(), user.ID, 42, 1000)
	assert.ErrorIs(t, err, ErrUnknownTask)

	_, err = l.CompleteTask(context.Background(), user.ID, -1, 1000)
	assert.ErrorIs(t, err, ErrUnknownTask)

	// None of the rejections credited anything.
	persisted, err := l.Load(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), persisted.Points)
}

func TestRequestWithdrawalValidation(t *testing.T) {
	l := newTestLedger(t, testConfig())
	l.now = fixedClock(1000)
	user := mustCreateUser(t, l)

	require.NoError(t, l.db.Model(&models.User{}).Where("id = ?", user.ID).Update("points", 25000).Error)
	details := WithdrawalDetails{Email: "user@example.com"}

	_, _, err := l.RequestWithdrawal(context.Background(), user.ID, 500, MethodPaypal, details)
	assert.ErrorIs(t, err, ErrMinWithdrawal)

	_, _, err = l.RequestWithdrawal(context.Background(), user.ID, 30000, MethodPaypal, details)
	assert.ErrorIs(t, err, ErrInsufficientPoints)

	_, _, err = l.RequestWithdrawal(context.Background(), user.ID, 10000, MethodPaypal, WithdrawalDetails{Email: "bad"})
	assert.ErrorIs(t, err, ErrPaypalEmail)

	// Rejections must not touch the balance or create records.
	persisted, err := l.Load(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(25000), persisted.Points)

	list, err := l.Withdrawals(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRequestWithdrawalDebitsAndQueues(t *testing.T) {
	l := newTestLedger(t, testConfig())
	l.now = fixedClock(1000)
	user := mustCreateUser(t, l)

	require.NoError(t, l.db.Model(&models.User{}).Where("id = ?", user.ID).Update("points", 25000).Error)

	got, wd, err := l.RequestWithdrawal(context.Background(), user.ID, 10000, MethodPaypal, WithdrawalDetails{Email: "user@example.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(15000), got.Points)
	require.NotNil(t, wd)
	assert.Equal(t, models.WithdrawalPending, wd.Status)
	assert.Equal(t, int64(10000), wd.Amount)
	assert.Equal(t, MethodPaypal, wd.Method)
	assert.Contains(t, wd.Details, "user@example.com")

	persisted, err := l.Load(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(15000), persisted.Points)

	list, err := l.Withdrawals(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, wd.ID, list[0].ID)
}

func TestRequestWithdrawalCannotOverdraw(t *testing.T) {
	l := newTestLedger(t, testConfig())
	l.now = fixedClock(1000)
	user := mustCreateUser(t, l)

	require.NoError(t, l.db.Model(&models.User{}).Where("id = ?", user.ID).Update("points", 15000).Error)
	details := WithdrawalDetails{Email: "user@example.com"}

	_, _, err := l.RequestWithdrawal(context.Background(), user.ID, 10000, MethodPaypal, details)
	require.NoError(t, err)

	// The second identical request exceeds the remaining 5000.
	_, _, err = l.RequestWithdrawal(context.Background(), user.ID, 10000, MethodPaypal, details)
	assert.ErrorIs(t, err, ErrInsufficientPoints)

	list, err := l.Withdrawals(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestStaleVersionWriteMatchesNothing(t *testing.T) {
	l := newTestLedger(t, testConfig())
	l.now = fixedClock(1000)
	user := mustCreateUser(t, l)

	// Another writer bumps the version in between.
	require.NoError(t, l.db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("version", gorm.Expr("version + 1")).Error)

	res := l.db.Model(&models.User{}).
		Where("id = ? AND version = ?", user.ID, user.Version).
		Update("points", 999)
	require.NoError(t, res.Error)
	assert.Equal(t, int64(0), res.RowsAffected)
}

func TestMutateRetriesPastConcurrentWriter(t *testing.T) {
	l := newTestLedger(t, testConfig())
	l.now = fixedClock(1000)
	user := mustCreateUser(t, l)

	// A version bump before the tap forces the first conditional update the
	// tap issues against a freshly loaded row to still succeed.
	require.NoError(t, l.db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("version", gorm.Expr("version + 1")).Error)

	got, err := l.Tap(context.Background(), user.ID, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Points)
}

func TestLoadUnknownUser(t *testing.T) {
	l := newTestLedger(t, testConfig())

	_, err := l.Load(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = l.Tap(context.Background(), 9999, 1, 1)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
