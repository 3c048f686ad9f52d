package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Kind identifies what happened to an expense.
type Kind string

const (
	KindExpenseCreated Kind = "expense.created"
	KindExpenseUpdated Kind = "expense.updated"
	KindExpenseDeleted Kind = "expense.deleted"
)

// ExpenseEvent is the message published for every ledger mutation. It
// carries only the expense id; consumers that need the full record fetch it
// from the store.
type ExpenseEvent struct {
	EventID   string    `json:"event_id"`
	Kind      Kind      `json:"kind"`
	ExpenseID int64     `json:"expense_id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewExpenseEvent builds an event with a fresh UUID.
func NewExpenseEvent(kind Kind, expenseID int64) *ExpenseEvent {
	return &ExpenseEvent{
		EventID:   uuid.NewString(),
		Kind:      kind,
		ExpenseID: expenseID,
		Timestamp: time.Now(),
	}
}

func (e *ExpenseEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func ExpenseEventFromJSON(data []byte) (*ExpenseEvent, error) {
	var e ExpenseEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
