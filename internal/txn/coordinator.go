// Package txn runs ordered lists of dependent statements as one
// all-or-nothing transaction.
package txn

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"orderdesk/internal/infrastructure/database"
)

// TransactionManager starts transactions. *database.Provider satisfies it.
type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// Step is one parameterized statement. Check, when set, inspects the result
// and aborts the transaction by returning an error.
type Step struct {
	Name  string
	Query string
	Args  []any
	Check func(res sql.Result) error
}

// ErrNoRowsAffected is returned by RequireRows checks.
var ErrNoRowsAffected = errors.New("statement affected no rows")

// RequireRows is a Step.Check that rejects a statement that changed nothing.
func RequireRows(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if n == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

// Coordinator runs named transactions with a per-transaction deadline and
// retries the whole transaction when the store reports a lock conflict.
type Coordinator struct {
	db          TransactionManager
	logger      *zap.Logger
	timeout     time.Duration
	maxAttempts int
	backoffs    []time.Duration
}

func NewCoordinator(db TransactionManager, logger *zap.Logger, timeout time.Duration, maxAttempts int) *Coordinator {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Coordinator{
		db:          db,
		logger:      logger,
		timeout:     timeout,
		maxAttempts: maxAttempts,
		backoffs:    []time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond},
	}
}

// Run executes steps strictly in order inside one transaction and returns the
// rows affected by each step. Any failing step rolls back everything the
// transaction did and its error is returned.
func (c *Coordinator) Run(ctx context.Context, name string, steps ...Step) ([]int64, error) {
	var affected []int64
	err := c.RunFunc(ctx, name, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		affected, err = ExecSteps(ctx, tx, name, steps)
		return err
	})
	if err != nil {
		return nil, err
	}
	return affected, nil
}

// RunFunc runs fn inside one transaction, committing only if fn returns nil.
// fn may be invoked again after a transient lock conflict, so it must derive
// everything it writes from its arguments and the transaction.
func (c *Coordinator) RunFunc(ctx context.Context, name string, fn func(ctx context.Context, tx *sql.Tx) error) error {
	logger := c.logger.With(zap.String("tx", name))

	for attempt := 1; ; attempt++ {
		err := c.runOnce(ctx, logger, name, fn)
		if err == nil {
			return nil
		}

		if !database.IsTransient(err) {
			return err
		}
		if attempt >= c.maxAttempts {
			logger.Error("transaction retries exhausted", zap.Int("attempts", attempt), zap.Error(err))
			return err
		}

		wait := c.backoff(attempt)
		logger.Warn("lock conflict, retrying transaction",
			zap.Int("attempt", attempt),
			zap.Int("maxAttempts", c.maxAttempts),
			zap.Duration("backoff", wait),
		)

		select {
		case <-ctx.Done():
			return database.Classify(name, ctx.Err())
		case <-time.After(wait):
		}
	}
}

func (c *Coordinator) runOnce(ctx context.Context, logger *zap.Logger, name string, fn func(ctx context.Context, tx *sql.Tx) error) error {
	txCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		txCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	tx, err := c.db.BeginTx(txCtx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", zap.Error(err))
		return database.Classify(name+": begin", err)
	}
	// Ensure rollback on any exit path. Rollback after Commit is a no-op.
	defer tx.Rollback()

	if err := fn(txCtx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			logger.Error("rollback failed", zap.Error(rbErr))
		}
		logger.Warn("transaction rolled back", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", zap.Error(err))
		return database.Classify(name+": commit", err)
	}

	logger.Debug("transaction committed")
	return nil
}

// ExecSteps executes steps in order on an open transaction. A failing step
// is reported with its position and name; later steps are not attempted.
func ExecSteps(ctx context.Context, tx *sql.Tx, name string, steps []Step) ([]int64, error) {
	affected := make([]int64, 0, len(steps))

	for i, step := range steps {
		op := fmt.Sprintf("%s: step %d (%s)", name, i+1, step.Name)

		res, err := tx.ExecContext(ctx, step.Query, step.Args...)
		if err != nil {
			return nil, database.Classify(op, err)
		}

		if step.Check != nil {
			if err := step.Check(res); err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
		}

		n, err := res.RowsAffected()
		if err != nil {
			return nil, database.Classify(op, err)
		}
		affected = append(affected, n)
	}

	return affected, nil
}

func (c *Coordinator) backoff(attempt int) time.Duration {
	base := c.backoffs[len(c.backoffs)-1]
	if attempt < len(c.backoffs) {
		base = c.backoffs[attempt]
	}
	// ±20% jitter
	jitter := time.Duration(float64(base) * (rand.Float64()*0.4 - 0.2))
	return base + jitter
}
