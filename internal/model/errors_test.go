package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteErrorMatchesSentinel(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("create slot: %w", NewWriteError("insert", cause))

	assert.ErrorIs(t, err, ErrWrite)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Nil(t, NewWriteError("noop", nil))
}

func TestUserMessageIsDistinctPerError(t *testing.T) {
	errs := []error{
		ErrInvalidTime,
		ErrInvalidDate,
		ErrPastDate,
		ErrAlreadyOffered,
		ErrNotFixedTime,
		ErrNotExtra,
		ErrNotFound,
		NewWriteError("update", errors.New("boom")),
	}

	seen := make(map[string]error, len(errs))
	for _, err := range errs {
		msg := UserMessage(err)
		assert.NotEmpty(t, msg)
		if prev, ok := seen[msg]; ok {
			t.Fatalf("message %q shared by %v and %v", msg, prev, err)
		}
		seen[msg] = err
	}

	assert.Equal(t, "❌ Произошла ошибка", UserMessage(errors.New("other")))
	assert.Empty(t, UserMessage(nil))
}

func TestResolvedSlotOrigin(t *testing.T) {
	fixed := ResolvedSlot{Time: "07:00", Origin: OriginFixed}
	extra := ResolvedSlot{Time: "09:00", Origin: OriginExtra, SourceID: "abc"}

	assert.True(t, fixed.IsFixed())
	assert.False(t, fixed.IsExtra())
	assert.True(t, extra.IsExtra())
	assert.False(t, extra.IsFixed())
}
