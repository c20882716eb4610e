package get_available_slots

import (
	"fmt"
	"time"

	"github.com/meetlane/booking-service/internal/domain"
	"github.com/meetlane/booking-service/pkg/interval"
	"github.com/meetlane/booking-service/pkg/types"
)

// compileWindows переводит окна дня в конкретные интервалы на дату.
// Окна прошли валидацию при записи, но битое окно всё равно пропускается.
func compileWindows(windows []domain.Window, day time.Time, loc *time.Location) ([]interval.Interval, error) {
	compiled := make([]interval.Interval, 0, len(windows))
	for _, w := range windows {
		start, err := w.Start.At(day, loc)
		if err != nil {
			return nil, fmt.Errorf("bad window start %q: %w", w.Start, err)
		}
		end, err := w.End.At(day, loc)
		if err != nil {
			return nil, fmt.Errorf("bad window end %q: %w", w.End, err)
		}
		compiled = append(compiled, interval.Interval{Start: start, End: end})
	}
	return compiled, nil
}

// walkWindows обходит окна с фиксированным шагом SlotStrideMinutes.
// Кандидат принимается, если он целиком помещается в окно, начинается не
// раньше earliest и не пересекает занятые интервалы. Шаг не зависит от
// принятия кандидата; контроль укладки в окно делает проверка конца,
// поэтому длительности, не кратные шагу, работают корректно.
func walkWindows(
	windows []interval.Interval,
	durationMinutes int,
	earliest time.Time,
	busy []interval.Interval,
) []types.TimeString {
	duration := time.Duration(durationMinutes) * time.Minute
	stride := time.Duration(domain.SlotStrideMinutes) * time.Minute

	slots := make([]types.TimeString, 0)

	for _, window := range windows {
		for candidate := window.Start; !candidate.Add(duration).After(window.End); candidate = candidate.Add(stride) {
			if candidate.Before(earliest) {
				continue
			}
			if interval.OverlapsAny(candidate, candidate.Add(duration), busy) {
				continue
			}
			slots = append(slots, types.NewTimeString(candidate))
		}
	}

	return slots
}
