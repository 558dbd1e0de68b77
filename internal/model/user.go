package model

import (
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 14

// User holds a local account, a linked Pryv account or both. Username and
// PryvUsername are empty strings when the corresponding side is absent.
type User struct {
	ID           string `gorm:"primaryKey;size:36"`
	Username     string `gorm:"not null;default:''"`
	Password     string `gorm:"not null;default:''"`
	PryvID       string `gorm:"not null;default:''"`
	PryvUsername string `gorm:"not null;default:''"`
	PryvToken    string `gorm:"not null;default:''"`
}

type UserDTO struct {
	ID           string `json:"id"`
	Username     string `json:"username,omitempty"`
	PryvUsername string `json:"pryvUsername,omitempty"`
	PryvToken    string `json:"pryvToken,omitempty"`
	Token        string `json:"token,omitempty"`
}

func (u *User) IsLocal() bool {
	return u != nil && u.Username != ""
}

func (u *User) IsLinked() bool {
	return u != nil && u.Username != "" && u.PryvUsername != ""
}

func (u *User) CheckPassword(password string) bool {
	if u == nil {
		return false
	}

	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	if err != nil {
		slog.Debug("password check failed", slog.Any("error", err))
		return false
	}

	return true
}

func (u *User) SetPassword(password string) error {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}

	u.Password = string(b)
	return nil
}

func (u *User) DTO() *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:           u.ID,
		Username:     u.Username,
		PryvUsername: u.PryvUsername,
		PryvToken:    u.PryvToken,
	}
}
