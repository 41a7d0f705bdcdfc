package gear

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"baitpond.ru/fishing-bot/internal/common"
)

// fakeStore — хранилище снаряжения в памяти для тестов сервиса.
type fakeStore struct {
	Store

	rod        *Rod
	owned      bool
	grantErr   error
	grantCalls int
	activeErr  error
}

func (f *fakeStore) GetRod(ctx context.Context, id int64) (*Rod, error) {
	if f.rod == nil {
		return nil, common.ErrRodNotFound
	}
	return f.rod, nil
}

func (f *fakeStore) Owns(ctx context.Context, anglerID, rodID int64) (bool, error) {
	return f.owned, nil
}

func (f *fakeStore) GrantRod(ctx context.Context, anglerID, rodID int64, makeActive bool) error {
	f.grantCalls++
	return f.grantErr
}

func (f *fakeStore) SetActiveRod(ctx context.Context, anglerID, rodID int64) error {
	return f.activeErr
}

// fakeLedger считает списанную и возвращённую наживку.
type fakeLedger struct {
	spent    int
	granted  int
	spendErr error
}

func (f *fakeLedger) SpendBait(ctx context.Context, telegramID int64, amount int) error {
	if f.spendErr != nil {
		return f.spendErr
	}
	f.spent += amount
	return nil
}

func (f *fakeLedger) GrantBait(ctx context.Context, telegramID int64, amount int) error {
	f.granted += amount
	return nil
}

func TestBuyRod_Success(t *testing.T) {
	store := &fakeStore{rod: &Rod{ID: 3, Name: "Огненная удочка", Price: 200}}
	ledger := &fakeLedger{}
	s := NewService(store, ledger)

	rod, err := s.BuyRod(context.Background(), 42, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), rod.ID)
	assert.Equal(t, 200, ledger.spent)
	assert.Zero(t, ledger.granted)
}

func TestBuyRod_RefundsBaitWhenGrantFails(t *testing.T) {
	store := &fakeStore{
		rod:      &Rod{ID: 5, Name: "Алмазная удочка", Price: 500},
		grantErr: errors.New("обрыв соединения"),
	}
	ledger := &fakeLedger{}
	s := NewService(store, ledger)

	_, err := s.BuyRod(context.Background(), 42, 5)
	require.Error(t, err)

	// Списанная наживка вернулась в полном объёме.
	assert.Equal(t, 500, ledger.spent)
	assert.Equal(t, 500, ledger.granted)
}

func TestBuyRod_NoRefundForFreeRod(t *testing.T) {
	store := &fakeStore{
		rod:      &Rod{ID: 1, Name: "Стартовая удочка", Price: 0},
		grantErr: errors.New("обрыв соединения"),
	}
	ledger := &fakeLedger{}
	s := NewService(store, ledger)

	_, err := s.BuyRod(context.Background(), 42, 1)
	require.Error(t, err)
	assert.Zero(t, ledger.spent)
	assert.Zero(t, ledger.granted)
}

func TestBuyRod_AlreadyOwned(t *testing.T) {
	store := &fakeStore{rod: &Rod{ID: 2, Price: 50}, owned: true}
	ledger := &fakeLedger{}
	s := NewService(store, ledger)

	_, err := s.BuyRod(context.Background(), 42, 2)
	assert.ErrorIs(t, err, common.ErrRodAlreadyOwned)
	assert.Zero(t, ledger.spent)
}

func TestBuyRod_InsufficientBait(t *testing.T) {
	store := &fakeStore{rod: &Rod{ID: 4, Price: 1000}}
	ledger := &fakeLedger{spendErr: common.ErrInsufficientBait}
	s := NewService(store, ledger)

	_, err := s.BuyRod(context.Background(), 42, 4)
	assert.ErrorIs(t, err, common.ErrInsufficientBait)
	assert.Zero(t, store.grantCalls)
}

func TestBuyRod_PurchaseSurvivesActivationError(t *testing.T) {
	store := &fakeStore{
		rod:       &Rod{ID: 6, Price: 100},
		activeErr: errors.New("обрыв соединения"),
	}
	ledger := &fakeLedger{}
	s := NewService(store, ledger)

	// Удочка куплена и выдана — ошибка активации не откатывает покупку.
	rod, err := s.BuyRod(context.Background(), 42, 6)
	require.NoError(t, err)
	assert.Equal(t, int64(6), rod.ID)
	assert.Equal(t, 100, ledger.spent)
	assert.Zero(t, ledger.granted)
}
