package allocation

import (
	"math/rand/v2"

	"github.com/Freeeeeet/proctor_bot/internal/model"
)

// PickFunc выбирает индекс из [0, n)
type PickFunc func(n int) int

// RandomPick равномерный случайный выбор
func RandomPick(n int) int {
	return rand.IntN(n)
}

// SlotsOnDay возвращает слоты, назначенные на указанный день недели
func SlotsOnDay(slots []model.ExamSlot, weekday string) []model.ExamSlot {
	var daySlots []model.ExamSlot
	for _, slot := range slots {
		if model.SameWeekday(slot.Weekday, weekday) {
			daySlots = append(daySlots, slot)
		}
	}
	return daySlots
}

// SelectSlot выбирает один слот из слотов дня. Слоты других дней не рассматриваются.
func SelectSlot(slots []model.ExamSlot, weekday string, pick PickFunc) (model.ExamSlot, error) {
	daySlots := SlotsOnDay(slots, weekday)
	if len(daySlots) == 0 {
		return model.ExamSlot{}, ErrNoSlotsAvailable
	}
	if pick == nil {
		pick = RandomPick
	}

	i := pick(len(daySlots))
	if i < 0 || i >= len(daySlots) {
		i = 0
	}
	return daySlots[i], nil
}
