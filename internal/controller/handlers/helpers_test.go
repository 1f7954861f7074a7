package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/slot_scheduler/internal/clock"
	"github.com/Freeeeeet/slot_scheduler/internal/model"
)

func TestCommandArgs(t *testing.T) {
	assert.Nil(t, CommandArgs("/slots"))
	assert.Equal(t, []string{"2025-06-10"}, CommandArgs("/slots 2025-06-10"))
	assert.Equal(t, []string{"2025-06-10", "09:00"}, CommandArgs("/add   2025-06-10  09:00 "))
}

func TestResolveDateArg(t *testing.T) {
	shift := clock.New(nil, nil).AddDays
	const today = "2025-06-10"

	tests := []struct {
		arg  string
		want string
	}{
		{"", today},
		{"сегодня", today},
		{"Завтра", "2025-06-11"},
		{"tomorrow", "2025-06-11"},
		{"2025-07-01", "2025-07-01"},
	}

	for _, tt := range tests {
		got, err := ResolveDateArg(tt.arg, today, shift)
		require.NoError(t, err, tt.arg)
		assert.Equal(t, tt.want, got, tt.arg)
	}
}

func TestResolveDateArgRejectsGarbage(t *testing.T) {
	shift := clock.New(nil, nil).AddDays

	for _, arg := range []string{"10.06.2025", "2025-02-30", "someday"} {
		_, err := ResolveDateArg(arg, "2025-06-10", shift)
		assert.ErrorIs(t, err, model.ErrInvalidDate, arg)
	}
}
