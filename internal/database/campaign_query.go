package database

import (
	"gorm.io/gorm"

	"github.com/pryv/campaign-manager/internal/model"
)

type CampaignQuery struct {
	Query[model.Campaign]
	id     string
	userID string
}

func NewCampaignQuery(db *gorm.DB) *CampaignQuery {
	return &CampaignQuery{
		Query: Query[model.Campaign]{
			db:     db,
			limit:  100,
			offset: 0,
			order:  "created",
		},
	}
}

func (q *CampaignQuery) Order(s string) *CampaignQuery {
	q.order = s
	return q
}

func (q *CampaignQuery) Limit(n int) *CampaignQuery {
	q.limit = n
	return q
}

func (q *CampaignQuery) Offset(n int) *CampaignQuery {
	q.offset = n
	return q
}

func (q *CampaignQuery) Id(id string) *CampaignQuery {
	q.id = id
	return q
}

func (q *CampaignQuery) User(userID string) *CampaignQuery {
	q.userID = userID
	return q
}

func (q *CampaignQuery) where() *gorm.DB {
	tx := q.db

	if q.id != "" {
		tx = tx.Where("id = ?", q.id)
	}

	if q.userID != "" {
		tx = tx.Where("user_id = ?", q.userID)
	}

	return tx
}

func (q *CampaignQuery) Get() []*model.Campaign {
	return q.get(q.where().Model(&model.Campaign{}))
}

func (q *CampaignQuery) One() *model.Campaign {
	return q.one(q.where().Model(&model.Campaign{}))
}

func (q *CampaignQuery) Count() int64 {
	return q.count(q.where().Model(&model.Campaign{}))
}
