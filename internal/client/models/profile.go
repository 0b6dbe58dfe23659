package models

import "time"

// Profile is the user's display profile.
type Profile struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	// AvatarURL is either a local file path (not yet uploaded) or the
	// public URL returned by object storage.
	AvatarURL string    `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	IsSynced  bool      `json:"-"`
}

func (p *Profile) Table() string { return TableProfiles }
func (p *Profile) RowID() string { return p.ID }

func (p *Profile) SetRowID(id string)     { p.ID = id }
func (p *Profile) SetOwner(userID string) { p.UserID = userID }
func (p *Profile) MarkSynced(ok bool)     { p.IsSynced = ok }
func (p *Profile) ImageRef() string       { return p.AvatarURL }
func (p *Profile) SetImageRef(ref string) { p.AvatarURL = ref }

func (p *Profile) Touch(now time.Time) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}
