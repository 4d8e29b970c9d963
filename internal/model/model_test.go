package model

import (
	"errors"
	"testing"
	"time"
)

func TestTaskValidateSuccess(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	task := Task{
		ID:        "t1",
		Title:     "Write handler tests",
		Status:    StatusPending,
		Priority:  PriorityHigh,
		Project:   "p1",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateInvalidEnums(t *testing.T) {
	task := Task{ID: "t1", Title: "Bad", Project: "p1", Status: TaskStatus("blocked"), Priority: PriorityLow}
	err := task.Validate()
	if err == nil || !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got: %v", err)
	}

	task.Status = StatusPending
	task.Priority = Priority("urgent")
	err = task.Validate()
	if err == nil || !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got: %v", err)
	}
}

func TestTaskValidateRequiredFields(t *testing.T) {
	task := Task{Status: StatusPending, Priority: PriorityLow, Project: "p1"}
	if err := task.Validate(); err == nil {
		t.Fatal("expected error for missing title")
	}
	task.Title = "Has title"
	task.Project = "  "
	if err := task.Validate(); err == nil {
		t.Fatal("expected error for missing project")
	}
}

func TestProjectValidate(t *testing.T) {
	p := Project{Name: "Website", Status: ProjectActive}
	if err := p.Validate(); err != nil {
		t.Fatalf("expected valid project, got: %v", err)
	}
	p.Status = ProjectStatus("paused")
	if err := p.Validate(); err == nil || !errors.Is(err, ErrInvalidProjectStatus) {
		t.Fatalf("expected ErrInvalidProjectStatus, got: %v", err)
	}
	p.Status = ProjectActive
	p.Name = ""
	if err := p.Validate(); err == nil {
		t.Fatal("expected error for missing name")
	}
}

func TestPriorityRankOrdering(t *testing.T) {
	if !(PriorityHigh.Rank() < PriorityMedium.Rank() && PriorityMedium.Rank() < PriorityLow.Rank()) {
		t.Fatalf("priority ranks out of order: high=%d medium=%d low=%d",
			PriorityHigh.Rank(), PriorityMedium.Rank(), PriorityLow.Rank())
	}
}

func TestStatusCycle(t *testing.T) {
	s := StatusPending
	seen := map[TaskStatus]bool{}
	for i := 0; i < 3; i++ {
		seen[s] = true
		s = s.Next()
	}
	if s != StatusPending {
		t.Fatalf("expected status cycle to wrap to pending, got %q", s)
	}
	if len(seen) != 3 {
		t.Fatalf("expected 3 distinct statuses in cycle, got %d", len(seen))
	}
}

func TestAssigneeName(t *testing.T) {
	task := Task{}
	if task.AssigneeName() != "Unassigned" {
		t.Fatalf("expected Unassigned, got %q", task.AssigneeName())
	}
	task.AssignedTo = &User{ID: "u1", Name: "Ada"}
	if task.AssigneeName() != "Ada" {
		t.Fatalf("expected Ada, got %q", task.AssigneeName())
	}
}
