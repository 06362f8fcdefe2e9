package events

import (
	"encoding/json"
	"time"

	"paydash/internal/core"
)

// ExpenseCreatedMessage is the event published for every recorded expense.
// It carries the full normalized row so consumers never need store access.
type ExpenseCreatedMessage struct {
	ID           string    `json:"id"`
	Amount       float64   `json:"amount"`
	Currency     string    `json:"currency"`
	Description  string    `json:"description"`
	CategoryID   string    `json:"category_id"`
	CategoryName string    `json:"category_name"`
	ExpenseDate  string    `json:"expense_date"`
	CreatedAt    string    `json:"created_at"`
	Timestamp    time.Time `json:"timestamp"`
}

func NewExpenseCreatedMessage(e core.Expense) *ExpenseCreatedMessage {
	return &ExpenseCreatedMessage{
		ID:           e.ID,
		Amount:       e.Amount,
		Currency:     e.Currency,
		Description:  e.Description,
		CategoryID:   e.CategoryID,
		CategoryName: e.CategoryName,
		ExpenseDate:  e.ExpenseDate,
		CreatedAt:    e.CreatedAt,
		Timestamp:    time.Now(),
	}
}

// Expense reconstructs the normalized row carried by the message.
func (m *ExpenseCreatedMessage) Expense() core.Expense {
	return core.Expense{
		ID:           m.ID,
		Amount:       m.Amount,
		Currency:     m.Currency,
		Description:  m.Description,
		CategoryID:   m.CategoryID,
		CategoryName: m.CategoryName,
		ExpenseDate:  m.ExpenseDate,
		CreatedAt:    m.CreatedAt,
	}
}

func (m *ExpenseCreatedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ExpenseCreatedMessageFromJSON(data []byte) (*ExpenseCreatedMessage, error) {
	var msg ExpenseCreatedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
