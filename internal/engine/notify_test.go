package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/sideputt/backend/internal/audit"
	"github.com/sideputt/backend/internal/config"
	"github.com/sideputt/backend/internal/gateway"
	"github.com/sideputt/backend/internal/models"
	"github.com/sideputt/backend/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Publish(ctx context.Context, table, sessionID string) error {
	args := m.Called(ctx, table, sessionID)
	return args.Error(0)
}

func (m *mockNotifier) Subscribe(ctx context.Context, sessionID string, tables []string, fn func(notify.Event)) (notify.Subscription, error) {
	args := m.Called(ctx, sessionID, tables, fn)
	sub, _ := args.Get(0).(notify.Subscription)
	return sub, args.Error(1)
}

func TestSubmitPutts_PublishesChanges(t *testing.T) {
	gw := gateway.NewMemory()
	n := new(mockNotifier)
	e := New(gw, n, audit.NewLoggerWithOutput(func(string) {}), config.LoadGameConfig())
	ctx := context.Background()

	// session setup publishes too; those calls are not under test
	n.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	session, hostPlayer, err := e.CreateSession(ctx, models.Identity{UserID: "u1"}, SessionParams{})
	require.NoError(t, err)
	n.ExpectedCalls = nil
	n.Calls = nil

	n.On("Publish", mock.Anything, gateway.TablePutts, session.ID).Return(nil).Once()
	n.On("Publish", mock.Anything, gateway.TableCards, session.ID).Return(errors.New("redis down")).Once()

	result, err := e.SubmitPutts(ctx, session.ID, 1, []PuttEntry{{PlayerID: hostPlayer.ID, NumPutts: models.IntPtr(0)}})
	require.NoError(t, err, "a failed publish must not fail the write")
	assert.True(t, result.Deal.Changed())
	assert.Equal(t, ChipNone, result.Chip.Outcome)
	n.AssertExpectations(t)
	n.AssertNotCalled(t, "Publish", mock.Anything, gateway.TableChipEvents, session.ID)
}

func TestSubmitPutts_NothingToPublish(t *testing.T) {
	gw := gateway.NewMemory()
	n := new(mockNotifier)
	e := New(gw, n, audit.NewLoggerWithOutput(func(string) {}), config.LoadGameConfig())
	ctx := context.Background()

	n.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	session, hostPlayer, err := e.CreateSession(ctx, models.Identity{UserID: "u1"}, SessionParams{})
	require.NoError(t, err)
	n.Calls = nil

	_, err = e.SubmitPutts(ctx, session.ID, 2, []PuttEntry{{PlayerID: hostPlayer.ID}})
	require.NoError(t, err)
	n.AssertNotCalled(t, "Publish", mock.Anything, gateway.TablePutts, session.ID)
	n.AssertNotCalled(t, "Publish", mock.Anything, gateway.TableCards, session.ID)
}
