package common

import (
	"context"
	"testing"
	"time"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Freeeeeet/slot_scheduler/internal/availability"
	"github.com/Freeeeeet/slot_scheduler/internal/clock"
	"github.com/Freeeeeet/slot_scheduler/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/slot_scheduler/internal/model"
	"github.com/Freeeeeet/slot_scheduler/internal/repository/memory"
	"github.com/Freeeeeet/slot_scheduler/internal/service"
)

func newBooking(t *testing.T, seed ...model.SlotException) *service.BookingService {
	t.Helper()

	view, err := service.NewSnapshotView(context.Background(), memory.NewStore(seed...), zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(view.Close)

	now := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)
	clk := clock.New(time.UTC, func() time.Time { return now })
	return service.NewBookingService(view, availability.MustTemplate("07:00", "08:30", "14:00"), clk)
}

func callbacks(kb *models.InlineKeyboardMarkup) []string {
	var data []string
	for _, row := range kb.InlineKeyboard {
		for _, button := range row {
			data = append(data, button.CallbackData)
		}
	}
	return data
}

func TestBuildScheduleScreenButtons(t *testing.T) {
	booking := newBooking(t,
		model.SlotException{ID: "extra-1", Date: "2025-06-10", Time: "09:00"},
		model.SlotException{ID: "marker-1", Date: "2025-06-10", Time: "14:00", Removed: true},
	)

	text, kb, err := BuildScheduleScreen(booking, "2025-06-10")
	require.NoError(t, err)

	assert.Contains(t, text, "вторник, 10 июня")
	data := callbacks(kb)
	assert.Contains(t, data, "suppress:2025-06-10:07:00")
	assert.Contains(t, data, "suppress:2025-06-10:08:30")
	assert.Contains(t, data, "remove:extra-1:2025-06-10")
	assert.Contains(t, data, "restore:2025-06-10:14:00")
	assert.Contains(t, data, "add_extra:2025-06-10")
	assert.Contains(t, data, "schedule_day:2025-06-11")
	assert.Contains(t, data, keyboard.Noop, "cannot navigate before today")
}

func TestBuildScheduleScreenPastDateIsReadOnly(t *testing.T) {
	booking := newBooking(t)

	_, kb, err := BuildScheduleScreen(booking, "2025-06-01")
	require.NoError(t, err)

	for _, data := range callbacks(kb) {
		assert.NotContains(t, data, SuppressFixed)
		assert.NotContains(t, data, AddExtra)
	}
}

func TestBuildSlotsScreen(t *testing.T) {
	booking := newBooking(t)

	text, kb, err := BuildSlotsScreen(booking, "2025-06-12")
	require.NoError(t, err)

	assert.Contains(t, text, "07:00  •  08:30  •  14:00")
	assert.Equal(t, []string{"slots_day:2025-06-11", "slots_day:2025-06-10", "slots_day:2025-06-13"}, callbacks(kb))
}

func TestBuildSlotsScreenInvalidDate(t *testing.T) {
	_, _, err := BuildSlotsScreen(newBooking(t), "12.06.2025")
	assert.ErrorIs(t, err, model.ErrInvalidDate)
}

func TestParseCallbackArgs(t *testing.T) {
	args, err := ParseCallbackArgs("suppress:2025-06-10:08:30", SuppressFixed, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-06-10", "08:30"}, args)

	args, err = ParseCallbackArgs("remove:1b4e28ba-2fa1-11d2-883f-0016d3cca427:2025-06-10", RemoveExtra, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"1b4e28ba-2fa1-11d2-883f-0016d3cca427", "2025-06-10"}, args)

	_, err = ParseCallbackArgs("suppress:2025-06-10", SuppressFixed, 2)
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ParseCallbackArgs("other:2025-06-10:08:30", SuppressFixed, 2)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestErrorMessageFallsBackToModel(t *testing.T) {
	assert.Equal(t, model.UserMessage(model.ErrPastDate), ErrorMessage(model.ErrPastDate))
	assert.NotEqual(t, ErrorMessage(ErrNotAdmin), ErrorMessage(ErrInvalidFormat))
}

func TestRemoveExtraCallbackFitsTelegramLimit(t *testing.T) {
	data := RemoveExtraCallback("1b4e28ba-2fa1-11d2-883f-0016d3cca427", "2025-06-10")
	assert.LessOrEqual(t, len(data), 64)
}
