package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/slot_scheduler/internal/controller/callbacks/callbacktypes"
)

func TestManagerStateAndData(t *testing.T) {
	sm, err := NewManager(8)
	require.NoError(t, err)

	assert.Equal(t, StateNone, sm.GetState(1))

	sm.SetState(1, StateEnteringExtraTime)
	sm.SetData(1, DataDate, "2025-06-10")

	assert.Equal(t, StateEnteringExtraTime, sm.GetState(1))
	date, ok := sm.GetData(1, DataDate)
	require.True(t, ok)
	assert.Equal(t, "2025-06-10", date)

	sm.SetState(1, StateNone)
	assert.Equal(t, StateNone, sm.GetState(1))
	_, ok = sm.GetData(1, DataDate)
	assert.False(t, ok)
}

func TestManagerEvictsOldestDialog(t *testing.T) {
	sm, err := NewManager(2)
	require.NoError(t, err)

	sm.SetState(1, StateEnteringExtraTime)
	sm.SetState(2, StateEnteringExtraTime)
	sm.SetState(3, StateEnteringExtraTime)

	assert.Equal(t, 2, sm.Len())
	assert.Equal(t, StateNone, sm.GetState(1))
	assert.Equal(t, StateEnteringExtraTime, sm.GetState(3))
}

func TestManagerRejectsInvalidSize(t *testing.T) {
	_, err := NewManager(0)
	assert.Error(t, err)
}

func TestAdapterClearState(t *testing.T) {
	sm, err := NewManager(4)
	require.NoError(t, err)
	a := NewAdapter(sm)

	a.SetState(7, callbacktypes.UserState(StateEnteringExtraTime))
	a.SetData(7, DataDate, "2025-06-10")
	assert.Equal(t, callbacktypes.UserState(StateEnteringExtraTime), a.GetState(7))

	a.ClearState(7)
	assert.Equal(t, callbacktypes.UserState(StateNone), a.GetState(7))
}
