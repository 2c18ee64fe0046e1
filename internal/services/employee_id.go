package services

import (
	"context"
	"strconv"
	"strings"

	repository "task-tracker.com/task-tracker/internal/repositories"
	"task-tracker.com/task-tracker/internal/sequence"
)

// NextEmployeeID returns the value following the highest numeric id in
// existing, or base when none is at least base. Non-numeric ids are ignored.
func NextEmployeeID(existing []string, base int64) int64 {
	next := base
	for _, raw := range existing {
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil || n < base {
			continue
		}
		if n+1 > next {
			next = n + 1
		}
	}
	return next
}

// EmployeeIDSeed seeds a fresh sequence from the ids already stored,
// including those of soft-deleted users.
func EmployeeIDSeed(users *repository.UserRepository, base int64) sequence.SeedFunc {
	return func(ctx context.Context) (int64, error) {
		existing, err := users.EmployeeIDs(ctx)
		if err != nil {
			return 0, err
		}
		return NextEmployeeID(existing, base), nil
	}
}
