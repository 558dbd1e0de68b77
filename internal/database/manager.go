package database

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pryv/campaign-manager/internal/model"
)

type DatabaseManager struct {
	db     *gorm.DB
	logger *slog.Logger
}

func New(db *gorm.DB) *DatabaseManager {
	return &DatabaseManager{
		db:     db,
		logger: slog.With("logger", "dbm"),
	}
}

func (mm *DatabaseManager) Migrate() error {
	if mm == nil || mm.db == nil {
		return fmt.Errorf("no database")
	}

	if err := mm.db.AutoMigrate(
		&model.User{},
		&model.Campaign{},
		&model.Invitation{},
	); err != nil {
		return err
	}

	// usernames are optional, so plain unique indexes would collide on ''
	for _, s := range []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username ON users (username) WHERE username <> ''`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_pryv_username ON users (pryv_username) WHERE pryv_username <> ''`,
	} {
		if err := mm.db.Exec(s).Error; err != nil {
			return err
		}
	}

	return nil
}

func (mm *DatabaseManager) Save(s any) error {
	if mm == nil || mm.db == nil {
		return nil
	}

	err := mm.db.Save(s).Error

	if err != nil {
		mm.logger.Error("error saving object", slog.Any("error", err))
	}

	return err
}

func (mm *DatabaseManager) UserQuery() *UserQuery {
	return NewUserQuery(mm.db)
}

func (mm *DatabaseManager) CampaignQuery() *CampaignQuery {
	return NewCampaignQuery(mm.db)
}

func (mm *DatabaseManager) InvitationQuery() *InvitationQuery {
	return NewInvitationQuery(mm.db)
}

// CreateUser persists a new user, allocating ids. A pryv-only user gets a
// PryvID, a local-only user does not.
func (mm *DatabaseManager) CreateUser(u *model.User) (*model.User, error) {
	err := mm.db.Transaction(func(tx *gorm.DB) error {
		if u.Username != "" {
			if n := txCount(tx, "username = ?", u.Username); n > 0 {
				return fmt.Errorf("%w: username %s", ErrDuplicate, u.Username)
			}
		}

		if u.PryvUsername != "" {
			if n := txCount(tx, "pryv_username = ?", u.PryvUsername); n > 0 {
				return fmt.Errorf("%w: pryvUsername %s", ErrDuplicate, u.PryvUsername)
			}

			u.PryvID = uuid.NewString()
		}

		u.ID = uuid.NewString()

		return tx.Create(u).Error
	})

	if err != nil {
		return nil, err
	}

	return u, nil
}

func txCount(tx *gorm.DB, query string, args ...any) int64 {
	var n int64
	tx.Model(&model.User{}).Where(query, args...).Count(&n)

	return n
}

func (mm *DatabaseManager) CreateCampaign(owner *model.User, c *model.Campaign) (*model.Campaign, error) {
	c.ID = uuid.NewString()
	c.UserID = owner.ID
	c.Created = time.Now()

	if err := mm.db.Create(c).Error; err != nil {
		return nil, err
	}

	return c, nil
}

// CreateInvitation checks referential integrity and the one-invitation-per
// (campaign, requestee) rule inside a single transaction.
func (mm *DatabaseManager) CreateInvitation(campaignID, requesterID, requesteeID string) (*model.Invitation, error) {
	inv := &model.Invitation{}

	err := mm.db.Transaction(func(tx *gorm.DB) error {
		var campaign model.Campaign
		if err := tx.Take(&campaign, "id = ?", campaignID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: campaign %s", ErrNotFound, campaignID)
			}

			return err
		}

		var requester, requestee model.User
		if err := tx.Take(&requester, "id = ?", requesterID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: requester %s", ErrNotFound, requesterID)
			}

			return err
		}

		if err := tx.Take(&requestee, "id = ?", requesteeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: requestee %s", ErrNotFound, requesteeID)
			}

			return err
		}

		var n int64
		if err := tx.Model(&model.Invitation{}).
			Where("campaign_id = ? AND requestee_id = ?", campaignID, requesteeID).
			Count(&n).Error; err != nil {
			return err
		}

		if n > 0 {
			return fmt.Errorf("%w: invitation for this campaign and requestee", ErrConflict)
		}

		now := time.Now()

		inv.ID = uuid.NewString()
		inv.CampaignID = campaignID
		inv.RequesterID = requesterID
		inv.RequesteeID = requesteeID
		inv.Status = model.StatusPending
		inv.AccessToken = uuid.NewString()
		inv.Created = now
		inv.Modified = now

		if err := tx.Create(inv).Error; err != nil {
			return err
		}

		inv.Campaign = &campaign
		inv.Requester = &requester
		inv.Requestee = &requestee

		return nil
	})

	if err != nil {
		return nil, err
	}

	return inv, nil
}

func (mm *DatabaseManager) UpdateInvitationStatus(id, status string) (*model.Invitation, error) {
	if !model.ValidStatus(status) {
		return nil, fmt.Errorf("%w: invalid status %s", ErrConflict, status)
	}

	if err := mm.InvitationQuery().Id(id).Update(map[string]any{
		"status":   status,
		"modified": time.Now(),
	}); err != nil {
		return nil, err
	}

	return mm.InvitationQuery().Id(id).Full().One(), nil
}

// UpdateUserLink attaches a Pryv account to the local user. When another user
// record already holds that pryvUsername, its invitations are repointed to the
// local user and the orphan record is removed, all in one transaction.
func (mm *DatabaseManager) UpdateUserLink(username, pryvUsername, pryvToken string) (*model.User, error) {
	var local model.User

	err := mm.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Take(&local, "username = ?", username).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: user %s", ErrNotFound, username)
			}

			return err
		}

		var pryv model.User
		err := tx.Take(&pryv, "pryv_username = ?", pryvUsername).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			// fresh link, no merge needed
			local.PryvUsername = pryvUsername
			local.PryvToken = pryvToken

			if local.PryvID == "" {
				local.PryvID = uuid.NewString()
			}

			return tx.Save(&local).Error

		case err != nil:
			return err

		case pryv.ID == local.ID:
			// already linked, just refresh the token
			local.PryvToken = pryvToken

			return tx.Model(&local).Update("pryv_token", pryvToken).Error

		default:
			// true merge: repoint invitations, absorb the pryv-only record
			if err := tx.Model(&model.Invitation{}).
				Where("requestee_id = ?", pryv.ID).
				Update("requestee_id", local.ID).Error; err != nil {
				return err
			}

			if err := tx.Model(&model.Invitation{}).
				Where("requester_id = ?", pryv.ID).
				Update("requester_id", local.ID).Error; err != nil {
				return err
			}

			// remove the orphan before taking over its pryv_username,
			// the unique index would reject the copy otherwise
			if err := tx.Delete(&model.User{}, "id = ?", pryv.ID).Error; err != nil {
				return err
			}

			local.PryvID = pryv.PryvID
			local.PryvUsername = pryv.PryvUsername
			local.PryvToken = pryvToken

			return tx.Save(&local).Error
		}
	})

	if err != nil {
		return nil, err
	}

	return &local, nil
}
