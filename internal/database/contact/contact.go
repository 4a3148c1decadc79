package contact

import (
	"context"
	"fmt"
	"time"

	"github.com/tinlanh/church-admin/internal/database"
	"github.com/tinlanh/church-admin/internal/model"
)

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

type messageDTO struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Phone     *string   `db:"phone"`
	Message   string    `db:"message"`
	CreatedAt time.Time `db:"created_at"`
}

func (*Repository) CreateMessage(ctx context.Context, q database.Queryable, msg *model.ContactMessage) error {
	qb := database.PSQL.
		Insert(database.ContactMessagesTable).
		Columns("id", "name", "email", "phone", "message", "created_at").
		Values(msg.ID, msg.Name, msg.Email, database.NullString(msg.Phone), msg.Message, msg.CreatedAt)

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}

func (*Repository) GetMessages(ctx context.Context, q database.Queryable, limit uint64) ([]*model.ContactMessage, error) {
	qb := database.PSQL.
		Select("id", "name", "email", "phone", "message", "created_at").
		From(database.ContactMessagesTable).
		OrderBy("created_at desc").
		Limit(limit)

	var dtos []*messageDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.ContactMessage, len(dtos))
	for i, d := range dtos {
		res[i] = &model.ContactMessage{
			ID:        d.ID,
			CreatedAt: d.CreatedAt,
			ContactMessageCreate: model.ContactMessageCreate{
				Name:    d.Name,
				Email:   d.Email,
				Phone:   database.StringValue(d.Phone),
				Message: d.Message,
			},
		}
	}

	return res, nil
}
