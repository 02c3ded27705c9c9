package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from ExpenseStatus
		to   ExpenseStatus
		want bool
	}{
		{name: "pending to approved", from: StatusPending, to: StatusApproved, want: true},
		{name: "pending to rejected", from: StatusPending, to: StatusRejected, want: true},
		{name: "pending to pending", from: StatusPending, to: StatusPending, want: false},
		{name: "approved to rejected", from: StatusApproved, to: StatusRejected, want: false},
		{name: "approved to pending", from: StatusApproved, to: StatusPending, want: false},
		{name: "rejected to approved", from: StatusRejected, to: StatusApproved, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestExpenseTransition(t *testing.T) {
	e := &Expense{Status: StatusPending}

	require.NoError(t, e.Transition(StatusApproved))
	assert.Equal(t, StatusApproved, e.Status)
	assert.False(t, e.UpdatedAt.IsZero())

	err := e.Transition(StatusRejected)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StatusApproved, e.Status, "terminal status must not change")
}
