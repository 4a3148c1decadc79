package admins

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/tinlanh/church-admin/internal/database"
	"github.com/tinlanh/church-admin/internal/model"
)

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

type adminDTO struct {
	Email   string `db:"email"`
	IsAdmin bool   `db:"is_admin"`
}

func (*Repository) GetAdmin(ctx context.Context, q database.Queryable, email string) (*model.Admin, error) {
	qb := database.PSQL.
		Select("email", "is_admin").
		From(database.AdminsTable).
		Where(sq.Eq{"lower(email)": email})

	var dtos []*adminDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	if len(dtos) == 0 {
		return nil, model.ErrNoRecord
	}

	return &model.Admin{Email: dtos[0].Email, IsAdmin: dtos[0].IsAdmin}, nil
}
