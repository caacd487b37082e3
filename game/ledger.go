package game

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Fyyrerde4xhsj/TapNow/models"
)

// casRetries bounds how often a mutation is replayed after losing the
// version race before giving up with ErrConflict.
const casRetries = 5

// errStaleRow signals that a conditional update matched zero rows.
var errStaleRow = errors.New("stale row version")

// Ledger is the only component that reads or writes user rows. Every mutation
// goes through a compare-and-swap on the row's version column, so two
// concurrent requests against the same user cannot interleave a
// read-validate-write cycle: the loser reloads and revalidates against the
// winner's state.
type Ledger struct {
	db  *gorm.DB
	cfg Config
	now func() time.Time
}

func NewLedger(db *gorm.DB, cfg Config) *Ledger {
	return &Ledger{db: db, cfg: cfg, now: time.Now}
}

// Config exposes the injected game constants to callers that need to echo
// them (e.g. registration responses).
func (l *Ledger) Config() Config {
	return l.cfg
}

// DB exposes the underlying handle for callers that manage adjacent tables.
func (l *Ledger) DB() *gorm.DB {
	return l.db
}

// CreateUser inserts a fresh ledger row: zero points, a full energy bar, and
// the task set materialized from the catalog with every entry incomplete.
func (l *Ledger) CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error) {
	states := make([]models.TaskState, len(l.cfg.TaskIDs))
	for i, id := range l.cfg.TaskIDs {
		states[i] = models.TaskState{ID: id}
	}

	user := &models.User{
		Username:         username,
		PasswordHash:     passwordHash,
		Energy:           l.cfg.MaxEnergy,
		MaxEnergy:        l.cfg.MaxEnergy,
		LastEnergyUpdate: l.now().Unix(),
	}
	if err := user.SetTaskStates(states); err != nil {
		return nil, err
	}
	if err := l.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Load fetches the raw row without touching energy.
func (l *Ledger) Load(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := l.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ReadWithRefill loads the row, reconciles energy to now, and persists the
// refreshed energy together with the advanced timestamp. It runs at the start
// of every authenticated action so validation always sees current energy, and
// so the elapsed interval is consumed exactly once.
func (l *Ledger) ReadWithRefill(ctx context.Context, userID uint) (*models.User, error) {
	return l.mutate(ctx, userID, func(*models.User) error { return nil })
}

// Tap validates and applies one energy-spend/point-gain event. The claimed
// constants must match the server's exactly; a deviation is reported as
// ErrTapParams so monitoring can tell manipulation apart from an empty
// energy bar.
func (l *Ledger) Tap(ctx context.Context, userID uint, claimedPoints int64, claimedEnergyCost float64) (*models.User, error) {
	return l.mutate(ctx, userID, func(u *models.User) error {
		if claimedPoints != l.cfg.PointsPerTap || claimedEnergyCost != l.cfg.EnergyPerTap {
			return ErrTapParams
		}
		if u.Energy < claimedEnergyCost {
			return ErrNoEnergy
		}
		u.Points += claimedPoints
		u.Energy -= claimedEnergyCost
		return nil
	})
}

// CompleteTask awards a catalog task's reward at most once per user. The
// completed flag is checked and flipped inside the same conditional update as
// the points credit, which is what makes the claim idempotent under races.
func (l *Ledger) CompleteTask(ctx context.Context, userID uint, taskID int, claimedReward int64) (*models.User, error) {
	return l.mutate(ctx, userID, func(u *models.User) error {
		if claimedReward != l.cfg.TaskReward {
			return ErrRewardMismatch
		}
		reward, known := l.cfg.RewardFor(taskID)
		if taskID < 0 || !known {
			return ErrUnknownTask
		}

		states, err := u.TaskStates()
		if err != nil {
			return err
		}
		idx := -1
		for i, st := range states {
			if st.ID == taskID {
				idx = i
				break
			}
		}
		if idx == -1 {
			return ErrUnknownTask
		}
		if states[idx].Completed {
			return ErrTaskDone
		}

		states[idx].Completed = true
		u.Points += reward
		return u.SetTaskStates(states)
	})
}

// RequestWithdrawal validates a payout request and, on success, debits the
// points and inserts a Pending withdrawal record in one transaction. Both
// writes commit together or neither does.
func (l *Ledger) RequestWithdrawal(ctx context.Context, userID uint, amount int64, method string, details WithdrawalDetails) (*models.User, *models.Withdrawal, error) {
	user, err := l.ReadWithRefill(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	if amount < l.cfg.MinWithdrawal {
		return user, nil, ErrMinWithdrawal
	}
	if amount <= 0 || amount > user.Points {
		return user, nil, ErrInsufficientPoints
	}
	if err := ValidateWithdrawalDetails(method, details); err != nil {
		return user, nil, err
	}

	raw, err := json.Marshal(details)
	if err != nil {
		return user, nil, err
	}

	for attempt := 0; attempt < casRetries; attempt++ {
		var created *models.Withdrawal
		txErr := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			res := tx.Model(&models.User{}).
				Where("id = ? AND version = ? AND points >= ?", user.ID, user.Version, amount).
				Updates(map[string]interface{}{
					"points":  gorm.Expr("points - ?", amount),
					"version": gorm.Expr("version + 1"),
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errStaleRow
			}

			wd := &models.Withdrawal{
				UserID:  user.ID,
				Amount:  amount,
				Method:  method,
				Details: string(raw),
				Status:  models.WithdrawalPending,
			}
			if err := tx.Create(wd).Error; err != nil {
				return err
			}
			created = wd
			return nil
		})
		if txErr == nil {
			user.Points -= amount
			user.Version++
			return user, created, nil
		}
		if !errors.Is(txErr, errStaleRow) {
			return nil, nil, txErr
		}

		// Lost the race to another mutation: reload and revalidate funds.
		user, err = l.ReadWithRefill(ctx, userID)
		if err != nil {
			return nil, nil, err
		}
		if amount > user.Points {
			return user, nil, ErrInsufficientPoints
		}
	}
	return user, nil, ErrConflict
}

// Withdrawals lists the user's payout requests, oldest first.
func (l *Ledger) Withdrawals(ctx context.Context, userID uint) ([]models.Withdrawal, error) {
	var out []models.Withdrawal
	err := l.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}

// mutate is the atomic read-modify-write primitive the transactions above
// build on. It loads the row, reconciles energy (refill plus timestamp
// advance, always persisted as one write), applies fn, and commits with a
// conditional update on the version column. A lost race reloads and replays;
// fn must therefore be side-effect free apart from mutating the row.
//
// When fn rejects, the refill alone is still committed and the refreshed row
// is returned alongside the error so callers can echo a current snapshot.
func (l *Ledger) mutate(ctx context.Context, userID uint, fn func(u *models.User) error) (*models.User, error) {
	for attempt := 0; attempt < casRetries; attempt++ {
		var user models.User
		if err := l.db.WithContext(ctx).First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}

		now := l.now().Unix()
		user.Energy = Refill(user.LastEnergyUpdate, user.Energy, user.MaxEnergy, l.cfg.EnergyRefillRate, now)
		user.LastEnergyUpdate = now

		// fn leaves the row untouched when it rejects, so on the error path
		// the write below persists the refill alone.
		verr := fn(&user)

		res := l.db.WithContext(ctx).Model(&models.User{}).
			Where("id = ? AND version = ?", user.ID, user.Version).
			Updates(map[string]interface{}{
				"points":             user.Points,
				"energy":             user.Energy,
				"last_energy_update": user.LastEnergyUpdate,
				"tasks":              user.Tasks,
				"version":            user.Version + 1,
			})
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			continue
		}
		user.Version++
		return &user, verr
	}
	return nil, ErrConflict
}
