package database

import (
	"gorm.io/gorm"

	"github.com/pryv/campaign-manager/internal/model"
)

type InvitationQuery struct {
	Query[model.Invitation]
	id          string
	campaignID  string
	requesteeID string
	userID      string
	full        bool
}

func NewInvitationQuery(db *gorm.DB) *InvitationQuery {
	return &InvitationQuery{
		Query: Query[model.Invitation]{
			db:     db,
			limit:  100,
			offset: 0,
			order:  "created",
		},
	}
}

func (q *InvitationQuery) Order(s string) *InvitationQuery {
	q.order = s
	return q
}

func (q *InvitationQuery) Limit(n int) *InvitationQuery {
	q.limit = n
	return q
}

func (q *InvitationQuery) Offset(n int) *InvitationQuery {
	q.offset = n
	return q
}

func (q *InvitationQuery) Id(id string) *InvitationQuery {
	q.id = id
	return q
}

func (q *InvitationQuery) Campaign(id string) *InvitationQuery {
	q.campaignID = id
	return q
}

func (q *InvitationQuery) Requestee(id string) *InvitationQuery {
	q.requesteeID = id
	return q
}

// User matches invitations where the user is requester or requestee.
func (q *InvitationQuery) User(id string) *InvitationQuery {
	q.userID = id
	return q
}

func (q *InvitationQuery) Full() *InvitationQuery {
	q.full = true
	return q
}

func (q *InvitationQuery) where() *gorm.DB {
	tx := q.db

	if q.id != "" {
		tx = tx.Where("id = ?", q.id)
	}

	if q.campaignID != "" {
		tx = tx.Where("campaign_id = ?", q.campaignID)
	}

	if q.requesteeID != "" {
		tx = tx.Where("requestee_id = ?", q.requesteeID)
	}

	if q.userID != "" {
		tx = tx.Where("requester_id = ? OR requestee_id = ?", q.userID, q.userID)
	}

	if q.full {
		tx = tx.Preload("Campaign").Preload("Requester").Preload("Requestee")
	}

	return tx
}

func (q *InvitationQuery) Get() []*model.Invitation {
	return q.get(q.where().Model(&model.Invitation{}))
}

func (q *InvitationQuery) One() *model.Invitation {
	return q.one(q.where().Model(&model.Invitation{}))
}

func (q *InvitationQuery) Count() int64 {
	return q.count(q.where().Model(&model.Invitation{}))
}

func (q *InvitationQuery) Update(updates map[string]any) error {
	return q.updateOrError(q.where().Model(&model.Invitation{}), updates)
}

func (q *InvitationQuery) Delete() error {
	return q.where().Delete(&model.Invitation{}).Error
}
