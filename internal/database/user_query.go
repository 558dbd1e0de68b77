package database

import (
	"gorm.io/gorm"

	"github.com/pryv/campaign-manager/internal/model"
)

type UserQuery struct {
	Query[model.User]
	id           string
	username     string
	pryvUsername string
}

func NewUserQuery(db *gorm.DB) *UserQuery {
	return &UserQuery{
		Query: Query[model.User]{
			db:     db,
			limit:  100,
			offset: 0,
			order:  "username",
		},
	}
}

func (q *UserQuery) Order(s string) *UserQuery {
	q.order = s
	return q
}

func (q *UserQuery) Limit(n int) *UserQuery {
	q.limit = n
	return q
}

func (q *UserQuery) Offset(n int) *UserQuery {
	q.offset = n
	return q
}

func (q *UserQuery) Id(id string) *UserQuery {
	q.id = id
	return q
}

func (q *UserQuery) Username(username string) *UserQuery {
	q.username = username
	return q
}

func (q *UserQuery) PryvUsername(pryvUsername string) *UserQuery {
	q.pryvUsername = pryvUsername
	return q
}

func (q *UserQuery) where() *gorm.DB {
	tx := q.db

	if q.id != "" {
		tx = tx.Where("id = ?", q.id)
	}

	if q.username != "" {
		tx = tx.Where("username = ?", q.username)
	}

	if q.pryvUsername != "" {
		tx = tx.Where("pryv_username = ?", q.pryvUsername)
	}

	return tx
}

func (q *UserQuery) Get() []*model.User {
	return q.get(q.where().Model(&model.User{}))
}

func (q *UserQuery) One() *model.User {
	return q.one(q.where().Model(&model.User{}))
}

func (q *UserQuery) Count() int64 {
	return q.count(q.where().Model(&model.User{}))
}

func (q *UserQuery) Update(updates map[string]any) error {
	return q.updateOrError(q.where().Model(&model.User{}), updates)
}

func (q *UserQuery) Delete() error {
	return q.where().Delete(&model.User{}).Error
}
