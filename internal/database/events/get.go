package events

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/tinlanh/church-admin/internal/database"
	"github.com/tinlanh/church-admin/internal/model"
)

func (*Repository) GetEventByID(ctx context.Context, q database.Queryable, id string) (*model.Event, error) {
	qb := baseQuery.
		Where(sq.Eq{"id": id})

	var dtos []*eventDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	if len(dtos) == 0 {
		return nil, model.ErrNoRecord
	}

	return mapToEvent(dtos[0]), nil
}

func (*Repository) GetEvents(ctx context.Context, q database.Queryable, filter model.EventsFilter) ([]*model.Event, error) {
	qb := baseQuery.
		OrderBy("sort_order asc", "created_at asc")

	switch filter.Status {
	case model.EventStatusActive:
		qb = qb.Where(sq.Eq{"is_active": true})
	case model.EventStatusInactive:
		qb = qb.Where(sq.Eq{"is_active": false})
	}

	if filter.Search != "" {
		qb = qb.Where(sq.ILike{"title": "%" + filter.Search + "%"})
	}

	var dtos []*eventDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.Event, len(dtos))
	for i, d := range dtos {
		res[i] = mapToEvent(d)
	}

	return res, nil
}

func (*Repository) GetMaxOrder(ctx context.Context, q database.Queryable) (int, error) {
	qb := database.PSQL.
		Select("coalesce(max(sort_order), 0)").
		From(database.EventsTable)

	var max int
	if err := q.Get(ctx, &max, qb); err != nil {
		return 0, fmt.Errorf("SQL request: %w", err)
	}

	return max, nil
}
