package models

import "time"

// Memory is a photo moment captured during a trip.
type Memory struct {
	ID     string `json:"id"`
	TripID string `json:"trip_id"`
	UserID string `json:"user_id"`
	// ImageURL is either a local file path (not yet uploaded) or the
	// public URL returned by object storage.
	ImageURL  string    `json:"image_url"`
	Caption   string    `json:"caption"`
	TakenAt   time.Time `json:"taken_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	IsSynced  bool      `json:"-"`
}

func (m *Memory) Table() string { return TableMemories }
func (m *Memory) RowID() string { return m.ID }

func (m *Memory) SetRowID(id string)     { m.ID = id }
func (m *Memory) SetOwner(userID string) { m.UserID = userID }
func (m *Memory) MarkSynced(ok bool)     { m.IsSynced = ok }
func (m *Memory) ImageRef() string       { return m.ImageURL }
func (m *Memory) SetImageRef(ref string) { m.ImageURL = ref }

func (m *Memory) Touch(now time.Time) {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
}
