package models

import "time"

// Trip is a planned journey mirrored from the remote trips table.
type Trip struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Destination string    `json:"destination"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Budget      float64   `json:"budget"`
	// CoverImage is either a local file path (not yet uploaded) or the
	// public URL returned by object storage.
	CoverImage string    `json:"cover_image"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	IsSynced   bool      `json:"-"`
}

func (t *Trip) Table() string { return TableTrips }
func (t *Trip) RowID() string { return t.ID }

func (t *Trip) SetRowID(id string)       { t.ID = id }
func (t *Trip) SetOwner(userID string)   { t.UserID = userID }
func (t *Trip) MarkSynced(ok bool)       { t.IsSynced = ok }
func (t *Trip) ImageRef() string         { return t.CoverImage }
func (t *Trip) SetImageRef(ref string)   { t.CoverImage = ref }

func (t *Trip) Touch(now time.Time) {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
}
