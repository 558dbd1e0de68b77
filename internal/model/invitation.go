package model

import "time"

const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRefused  = "refused"
)

func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusAccepted || s == StatusRefused
}

// Invitation is unique per (campaign, requestee). The requestee reference is
// rewritten, never duplicated, when accounts are merged.
type Invitation struct {
	ID          string    `gorm:"primaryKey;size:36"`
	CampaignID  string    `gorm:"size:36;uniqueIndex:idx_invitations_campaign_requestee"`
	Campaign    *Campaign `gorm:"foreignKey:CampaignID"`
	RequesterID string    `gorm:"index;size:36"`
	Requester   *User     `gorm:"foreignKey:RequesterID"`
	RequesteeID string    `gorm:"size:36;uniqueIndex:idx_invitations_campaign_requestee"`
	Requestee   *User     `gorm:"foreignKey:RequesteeID"`
	Status      string    `gorm:"not null;default:'pending'"`
	AccessToken string    `gorm:"not null"`
	Created     time.Time
	Modified    time.Time
}

type InvitationDTO struct {
	ID          string       `json:"id"`
	Campaign    *CampaignDTO `json:"campaign"`
	Requester   *UserDTO     `json:"requester"`
	Requestee   *UserDTO     `json:"requestee"`
	Status      string       `json:"status"`
	AccessToken string       `json:"accessToken"`
	Created     time.Time    `json:"created"`
	Modified    time.Time    `json:"modified"`
}

func (i *Invitation) DTO() *InvitationDTO {
	if i == nil {
		return nil
	}

	return &InvitationDTO{
		ID:          i.ID,
		Campaign:    i.Campaign.DTO(),
		Requester:   i.Requester.DTO(),
		Requestee:   i.Requestee.DTO(),
		Status:      i.Status,
		AccessToken: i.AccessToken,
		Created:     i.Created,
		Modified:    i.Modified,
	}
}
