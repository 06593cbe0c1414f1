package repository

import (
	"context"
	"sync"
	"testing"

	"photoai/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreditRepo_GrantCreatesThenIncrements(t *testing.T) {
	repo := NewCreditRepo(testutil.NewDB(t))
	ctx := context.Background()

	bal, err := repo.GetBalance(ctx, "user_1")
	require.NoError(t, err)
	assert.Equal(t, 0, bal)

	bal, err = repo.Grant(ctx, "user_1", 500)
	require.NoError(t, err)
	assert.Equal(t, 500, bal)

	bal, err = repo.Grant(ctx, "user_1", 1000)
	require.NoError(t, err)
	assert.Equal(t, 1500, bal)
}

func TestCreditRepo_Reserve(t *testing.T) {
	repo := NewCreditRepo(testutil.NewDB(t))
	ctx := context.Background()

	_, err := repo.Grant(ctx, "user_1", 3)
	require.NoError(t, err)

	require.NoError(t, repo.Reserve(ctx, "user_1", 2))
	bal, err := repo.GetBalance(ctx, "user_1")
	require.NoError(t, err)
	assert.Equal(t, 1, bal)

	assert.ErrorIs(t, repo.Reserve(ctx, "user_1", 2), ErrInsufficientCredits)
	bal, err = repo.GetBalance(ctx, "user_1")
	require.NoError(t, err)
	assert.Equal(t, 1, bal, "failed reserve must not decrement")
}

func TestCreditRepo_ReserveWithoutRow(t *testing.T) {
	repo := NewCreditRepo(testutil.NewDB(t))
	assert.ErrorIs(t, repo.Reserve(context.Background(), "nobody", 1), ErrInsufficientCredits)
}

func TestCreditRepo_ReserveRejectsNonPositive(t *testing.T) {
	repo := NewCreditRepo(testutil.NewDB(t))
	assert.Error(t, repo.Reserve(context.Background(), "user_1", 0))
}

func TestCreditRepo_ConcurrentReserveNeverOverspends(t *testing.T) {
	repo := NewCreditRepo(testutil.NewDB(t))
	ctx := context.Background()
	_, err := repo.Grant(ctx, "user_1", 5)
	require.NoError(t, err)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := repo.Reserve(ctx, "user_1", 1); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	bal, err := repo.GetBalance(ctx, "user_1")
	require.NoError(t, err)
	assert.Equal(t, 0, bal)
	assert.Equal(t, 5, successes)
}
