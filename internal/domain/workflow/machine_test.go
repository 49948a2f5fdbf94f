package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backoffice/backend/internal/domain/shared"
)

func testMachine() *Machine {
	return NewMachine("test_entity", "PENDING", map[State]StateSpec{
		"PENDING":   {Label: "Menunggu", Color: "warning", Next: []State{"CONFIRMED", "REJECTED"}},
		"CONFIRMED": {Label: "Dikonfirmasi", Color: "info", Next: []State{"FINISHED"}},
		"FINISHED":  {Label: "Selesai", Color: "success"},
		"REJECTED":  {Label: "Ditolak", Color: "danger"},
	})
}

func TestMachine_Step(t *testing.T) {
	m := testMachine()
	ctx := context.Background()

	t.Run("allows declared edges", func(t *testing.T) {
		require.NoError(t, m.Step(ctx, "PENDING", "CONFIRMED"))
		require.NoError(t, m.Step(ctx, "CONFIRMED", "FINISHED"))
		require.NoError(t, m.Step(ctx, "PENDING", "REJECTED"))
	})

	t.Run("rejects skipping states", func(t *testing.T) {
		err := m.Step(ctx, "PENDING", "FINISHED")
		var invalid *shared.InvalidTransitionError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "test_entity", invalid.Entity)
		assert.Equal(t, "PENDING", invalid.From)
		assert.Equal(t, "FINISHED", invalid.To)
	})

	t.Run("rejects transitions out of terminal states", func(t *testing.T) {
		err := m.Step(ctx, "FINISHED", "PENDING")
		var invalid *shared.InvalidTransitionError
		require.ErrorAs(t, err, &invalid)

		err = m.Step(ctx, "REJECTED", "CONFIRMED")
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("same-state step is flagged for no-op handling", func(t *testing.T) {
		err := m.Step(ctx, "CONFIRMED", "CONFIRMED")
		assert.True(t, errors.Is(err, ErrAlreadyInState))
	})

	t.Run("rejects undeclared states", func(t *testing.T) {
		err := m.Step(ctx, "PENDING", "BOGUS")
		var invalid *shared.InvalidTransitionError
		require.ErrorAs(t, err, &invalid)
	})
}

func TestMachine_GraphClosure(t *testing.T) {
	// Every (from, to) pair either is a declared edge and succeeds, or fails
	// with InvalidTransitionError. No other outcome exists.
	m := testMachine()
	ctx := context.Background()

	for _, from := range m.States() {
		for _, to := range m.States() {
			err := m.Step(ctx, from, to)
			switch {
			case from == to:
				assert.ErrorIs(t, err, ErrAlreadyInState)
			case m.CanTransition(from, to):
				assert.NoError(t, err, "edge %s -> %s", from, to)
			default:
				var invalid *shared.InvalidTransitionError
				assert.ErrorAs(t, err, &invalid, "non-edge %s -> %s", from, to)
			}
		}
	}
}

func TestMachine_Metadata(t *testing.T) {
	m := testMachine()

	assert.Equal(t, State("PENDING"), m.Initial())
	assert.Equal(t, "Menunggu", m.Label("PENDING"))
	assert.Equal(t, "warning", m.Color("PENDING"))
	assert.Equal(t, "UNKNOWN", m.Label("UNKNOWN"))
	assert.True(t, m.IsTerminal("FINISHED"))
	assert.False(t, m.IsTerminal("PENDING"))
	assert.False(t, m.IsValid("UNKNOWN"))
	assert.Equal(t, []State{"CONFIRMED", "FINISHED", "PENDING", "REJECTED"}, m.States())
}

func TestNewMachine_PanicsOnBadTable(t *testing.T) {
	assert.Panics(t, func() {
		NewMachine("bad", "MISSING", map[State]StateSpec{
			"PENDING": {Next: []State{"PENDING"}},
		})
	})
	assert.Panics(t, func() {
		NewMachine("bad", "PENDING", map[State]StateSpec{
			"PENDING": {Next: []State{"NOWHERE"}},
		})
	})
}
