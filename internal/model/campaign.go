package model

import "time"

type Campaign struct {
	ID          string `gorm:"primaryKey;size:36"`
	UserID      string `gorm:"index;size:36"`
	Title       string `gorm:"not null"`
	PryvAppID   string `gorm:"not null"`
	Description string `gorm:"not null;default:''"`
	Permissions []*Permission `gorm:"serializer:json"`
	Created     time.Time
}

// Permission is one access grant requested from the invitee's Pryv account.
type Permission struct {
	StreamID    string `json:"streamId" mapstructure:"streamId"`
	Level       string `json:"level" mapstructure:"level"`
	DefaultName string `json:"defaultName" mapstructure:"defaultName"`
}

type CampaignDTO struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	PryvAppID   string        `json:"pryvAppId"`
	Description string        `json:"description"`
	Permissions []*Permission `json:"permissions"`
	Created     time.Time     `json:"created"`
}

func (c *Campaign) DTO() *CampaignDTO {
	if c == nil {
		return nil
	}

	return &CampaignDTO{
		ID:          c.ID,
		Title:       c.Title,
		PryvAppID:   c.PryvAppID,
		Description: c.Description,
		Permissions: c.Permissions,
		Created:     c.Created,
	}
}
