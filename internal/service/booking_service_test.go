package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/slot_scheduler/internal/model"
)

func TestAvailableTimesTemplateOnly(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, []string{"07:00", "08:30", "14:00"}, f.times(t, "2025-06-20"))
}

func TestAvailableTimesPastDateIsEmpty(t *testing.T) {
	f := newFixture(t, model.SlotException{ID: "x", Date: "2025-06-09", Time: "09:00"})

	times, err := f.booking.AvailableTimes("2025-06-09")
	require.NoError(t, err)
	assert.Empty(t, times)
	assert.NotNil(t, times)
}

func TestAvailableTimesInvalidDate(t *testing.T) {
	f := newFixture(t)

	_, err := f.booking.AvailableTimes("2025-6-1")
	assert.ErrorIs(t, err, model.ErrInvalidDate)
}

func TestSlotsMarksOrigin(t *testing.T) {
	f := newFixture(t,
		model.SlotException{ID: "e1", Date: testDate, Time: "09:00"},
		model.SlotException{ID: "m1", Date: testDate, Time: "14:00", Removed: true},
	)

	slots, err := f.booking.Slots(testDate)
	require.NoError(t, err)

	assert.Equal(t, []model.ResolvedSlot{
		{Time: "07:00", Origin: model.OriginFixed},
		{Time: "08:30", Origin: model.OriginFixed},
		{Time: "09:00", Origin: model.OriginExtra, SourceID: "e1"},
	}, slots)
}

func TestSlotsForPastDateStillResolve(t *testing.T) {
	f := newFixture(t)

	slots, err := f.booking.Slots("2025-06-01")
	require.NoError(t, err)
	assert.Len(t, slots, 3)
}

func TestSuppressedTimes(t *testing.T) {
	f := newFixture(t)

	_, err := f.slots.SuppressFixed(context.Background(), testDate, "08:30")
	require.NoError(t, err)

	suppressed, err := f.booking.SuppressedTimes(testDate)
	require.NoError(t, err)
	assert.Equal(t, []string{"08:30"}, suppressed)

	other, err := f.booking.SuppressedTimes("2025-06-11")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestBookingToday(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, testDate, f.booking.Today())
}
