package miner

import (
	"context"
	"testing"

	"github.com/mrlucciola/pow-blockchain/settings"
	"github.com/mrlucciola/pow-blockchain/ulogger"
	"github.com/stretchr/testify/require"
)

func Test_NewFiniteStateMachine(t *testing.T) {
	ctx := context.Background()

	m, err := New(ulogger.TestLogger{}, settings.NewSettings())
	require.NoError(t, err)

	fsm := m.NewFiniteStateMachine()
	require.NotNil(t, fsm)
	require.Equal(t, StateStopped, fsm.Current())
	require.True(t, fsm.Can(EventRun))
	require.False(t, fsm.Can(EventMine))
	require.False(t, fsm.Can(EventStop))

	t.Run("Stopped to Running", func(t *testing.T) {
		require.NoError(t, fsm.Event(ctx, EventRun))
		require.Equal(t, StateRunning, fsm.Current())
		require.True(t, fsm.Can(EventMine))
		require.True(t, fsm.Can(EventStop))
		require.False(t, fsm.Can(EventMined))
	})

	t.Run("Running to Mining", func(t *testing.T) {
		require.NoError(t, fsm.Event(ctx, EventMine))
		require.Equal(t, StateMining, fsm.Current())
		require.False(t, fsm.Can(EventMine))
		require.True(t, fsm.Can(EventMined))
		require.True(t, fsm.Can(EventStop))
	})

	t.Run("Mining to Running", func(t *testing.T) {
		require.NoError(t, fsm.Event(ctx, EventMined))
		require.Equal(t, StateRunning, fsm.Current())
	})

	t.Run("Mining to Stopped", func(t *testing.T) {
		require.NoError(t, fsm.Event(ctx, EventMine))
		require.NoError(t, fsm.Event(ctx, EventStop))
		require.Equal(t, StateStopped, fsm.Current())
	})

	t.Run("Stopped cannot mine", func(t *testing.T) {
		require.Error(t, fsm.Event(ctx, EventMine))
		require.Equal(t, StateStopped, fsm.Current())
	})
}
