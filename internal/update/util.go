package update

import "taskboard/internal/model"

// Filter and sort cycles used by the single-key bindings. The palette can
// jump straight to a value; the keys walk the ring.
func nextStatusFilter(current string) string {
	ring := []string{model.FilterAll, string(model.StatusPending), string(model.StatusInProgress), string(model.StatusCompleted)}
	return nextInRing(ring, current)
}

func nextPriorityFilter(current string) string {
	ring := []string{model.FilterAll, string(model.PriorityHigh), string(model.PriorityMedium), string(model.PriorityLow)}
	return nextInRing(ring, current)
}

func nextSortKey(current model.SortKey) model.SortKey {
	ring := []model.SortKey{model.SortNone, model.SortByDueDate, model.SortByPriority, model.SortByTitle}
	for i, key := range ring {
		if key == current {
			return ring[(i+1)%len(ring)]
		}
	}
	return model.SortNone
}

func sortLabel(key model.SortKey) string {
	if key == model.SortNone {
		return "none"
	}
	return string(key)
}

func nextInRing(ring []string, current string) string {
	for i, v := range ring {
		if v == current {
			return ring[(i+1)%len(ring)]
		}
	}
	return ring[0]
}
