package models

import "time"

// Expense is a single spend recorded against a trip.
type Expense struct {
	ID          string    `json:"id"`
	TripID      string    `json:"trip_id"`
	UserID      string    `json:"user_id"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	IsSynced    bool      `json:"-"`
}

func (e *Expense) Table() string { return TableExpenses }
func (e *Expense) RowID() string { return e.ID }

func (e *Expense) SetRowID(id string)     { e.ID = id }
func (e *Expense) SetOwner(userID string) { e.UserID = userID }
func (e *Expense) MarkSynced(ok bool)     { e.IsSynced = ok }

func (e *Expense) Touch(now time.Time) {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now
}
