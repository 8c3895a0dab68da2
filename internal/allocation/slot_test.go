package allocation

import (
	"testing"
	"time"

	"github.com/Freeeeeet/proctor_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectSlot_OnlyFromChosenDay(t *testing.T) {
	slots := []model.ExamSlot{
		slotOn("mon-1", date(2025, time.January, 6), "Calculus"),
		slotOn("tue-1", date(2025, time.January, 7), "Physics"),
		slotOn("mon-2", date(2025, time.January, 13), "Chemistry"),
	}

	for i := 0; i < 50; i++ {
		slot, err := SelectSlot(slots, "Monday", RandomPick)
		require.NoError(t, err)
		assert.Equal(t, "Monday", slot.Weekday)
	}
}

func TestSelectSlot_UsesPicker(t *testing.T) {
	slots := []model.ExamSlot{
		slotOn("mon-1", date(2025, time.January, 6), "Calculus"),
		slotOn("tue-1", date(2025, time.January, 7), "Physics"),
		slotOn("mon-2", date(2025, time.January, 13), "Chemistry"),
	}

	var gotN int
	slot, err := SelectSlot(slots, "Monday", func(n int) int {
		gotN = n
		return 1
	})
	require.NoError(t, err)
	assert.Equal(t, 2, gotN)
	assert.Equal(t, "mon-2", slot.ID)
}

func TestSelectSlot_NoSlots(t *testing.T) {
	slots := []model.ExamSlot{slotOn("tue-1", date(2025, time.January, 7), "Physics")}

	_, err := SelectSlot(slots, "Monday", firstPick)
	assert.ErrorIs(t, err, ErrNoSlotsAvailable)

	_, err = SelectSlot(nil, "Monday", firstPick)
	assert.ErrorIs(t, err, ErrNoSlotsAvailable)
}

func TestSelectSlot_OutOfRangePickFallsBackToFirst(t *testing.T) {
	slots := []model.ExamSlot{slotOn("mon-1", date(2025, time.January, 6), "Calculus")}

	slot, err := SelectSlot(slots, "Monday", func(n int) int { return 7 })
	require.NoError(t, err)
	assert.Equal(t, "mon-1", slot.ID)
}
