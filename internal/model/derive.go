package model

import (
	"sort"
	"strings"
)

// Derived task views. All functions here are pure: they copy the input
// slice and never mutate cached store state.

// FilterAll is the filter value matching every task.
const FilterAll = "all"

type SortKey string

const (
	SortByDueDate  SortKey = "due"
	SortByPriority SortKey = "priority"
	SortByTitle    SortKey = "title"
	SortNone       SortKey = ""
)

func (k SortKey) IsValid() bool {
	switch k {
	case SortByDueDate, SortByPriority, SortByTitle, SortNone:
		return true
	default:
		return false
	}
}

// FilterByStatus returns tasks whose status equals the filter.
// FilterAll returns a copy of the input unchanged.
func FilterByStatus(tasks []Task, status string) []Task {
	if status == FilterAll || status == "" {
		return append([]Task(nil), tasks...)
	}
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if string(t.Status) == status {
			out = append(out, t)
		}
	}
	return out
}

// FilterByPriority returns tasks whose priority equals the filter.
func FilterByPriority(tasks []Task, priority string) []Task {
	if priority == FilterAll || priority == "" {
		return append([]Task(nil), tasks...)
	}
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if string(t.Priority) == priority {
			out = append(out, t)
		}
	}
	return out
}

// SortTasks returns a sorted copy. Sorting is stable so ties keep the
// server's order. Tasks without a due date sort after tasks with one.
func SortTasks(tasks []Task, key SortKey) []Task {
	out := append([]Task(nil), tasks...)
	switch key {
	case SortByDueDate:
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i].DueDate, out[j].DueDate
			if a == nil {
				return false
			}
			if b == nil {
				return true
			}
			return a.Before(*b)
		})
	case SortByPriority:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Priority.Rank() < out[j].Priority.Rank()
		})
	case SortByTitle:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Title) < strings.ToLower(out[j].Title)
		})
	}
	return out
}
