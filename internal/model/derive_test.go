package model

import (
	"testing"
	"time"
)

func sampleTasks() []Task {
	due := func(day int) *time.Time {
		d := time.Date(2026, 9, day, 0, 0, 0, 0, time.UTC)
		return &d
	}
	return []Task{
		{ID: "t1", Title: "deploy", Status: StatusPending, Priority: PriorityLow, Project: "p1", DueDate: due(12)},
		{ID: "t2", Title: "Audit logs", Status: StatusCompleted, Priority: PriorityHigh, Project: "p1"},
		{ID: "t3", Title: "backfill", Status: StatusInProgress, Priority: PriorityMedium, Project: "p1", DueDate: due(3)},
		{ID: "t4", Title: "Cleanup", Status: StatusPending, Priority: PriorityHigh, Project: "p1", DueDate: due(7)},
	}
}

func TestFilterByStatus(t *testing.T) {
	tasks := sampleTasks()
	pending := FilterByStatus(tasks, "pending")
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending tasks, got %d", len(pending))
	}
	for _, task := range pending {
		if task.Status != StatusPending {
			t.Fatalf("task %s leaked through pending filter with status %q", task.ID, task.Status)
		}
	}
}

// The union of per-status subsets plus "all" must reconstruct the input set.
func TestFilterUnionReconstructsSet(t *testing.T) {
	tasks := sampleTasks()
	union := map[string]bool{}
	for _, s := range TaskStatuses() {
		for _, task := range FilterByStatus(tasks, string(s)) {
			union[task.ID] = true
		}
	}
	all := FilterByStatus(tasks, FilterAll)
	if len(all) != len(tasks) {
		t.Fatalf("all filter dropped tasks: got %d want %d", len(all), len(tasks))
	}
	if len(union) != len(tasks) {
		t.Fatalf("per-status union has %d tasks, want %d", len(union), len(tasks))
	}
	for _, task := range tasks {
		if !union[task.ID] {
			t.Fatalf("task %s missing from union", task.ID)
		}
	}
}

func TestFilterByPriority(t *testing.T) {
	high := FilterByPriority(sampleTasks(), "high")
	if len(high) != 2 {
		t.Fatalf("expected 2 high tasks, got %d", len(high))
	}
}

func TestSortByPriorityIsNonDecreasingInRank(t *testing.T) {
	sorted := SortTasks(sampleTasks(), SortByPriority)
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Priority.Rank() > sorted[i].Priority.Rank() {
			t.Fatalf("priority sort violated at %d: %q before %q", i, sorted[i-1].Priority, sorted[i].Priority)
		}
	}
	if sorted[0].Priority != PriorityHigh {
		t.Fatalf("expected high priority first, got %q", sorted[0].Priority)
	}
}

func TestSortByDueDatePutsUndatedLast(t *testing.T) {
	sorted := SortTasks(sampleTasks(), SortByDueDate)
	if sorted[0].ID != "t3" {
		t.Fatalf("expected earliest due task first, got %s", sorted[0].ID)
	}
	if sorted[len(sorted)-1].DueDate != nil {
		t.Fatal("expected task without due date last")
	}
}

func TestSortByTitleCaseInsensitive(t *testing.T) {
	sorted := SortTasks(sampleTasks(), SortByTitle)
	want := []string{"t2", "t3", "t4", "t1"}
	for i, id := range want {
		if sorted[i].ID != id {
			t.Fatalf("title sort position %d: got %s want %s", i, sorted[i].ID, id)
		}
	}
}

func TestDerivedViewsDoNotMutateInput(t *testing.T) {
	tasks := sampleTasks()
	SortTasks(tasks, SortByTitle)
	if tasks[0].ID != "t1" {
		t.Fatal("SortTasks mutated its input")
	}
	out := FilterByStatus(tasks, FilterAll)
	out[0].Title = "changed"
	if tasks[0].Title == "changed" {
		t.Fatal("FilterByStatus returned a view over the input slice header")
	}
}
