package discipleship

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/tinlanh/church-admin/internal/database"
	"github.com/tinlanh/church-admin/internal/model"
)

func (*Repository) CreateLocation(ctx context.Context, q database.Queryable, location *model.Location) error {
	qb := database.PSQL.
		Insert(database.LocationsTable).
		Columns("id", "course_id", "name", "thumbnail_image_url", "created_at", "updated_at").
		Values(
			location.ID,
			location.CourseID,
			location.Name,
			database.NullString(location.ThumbnailImageURL),
			location.CreatedAt,
			location.UpdatedAt,
		)

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}

func (*Repository) GetLocationsByCourse(ctx context.Context, q database.Queryable, courseID string) ([]*model.Location, error) {
	return getLocations(ctx, q, locationsQuery.
		Where(sq.Eq{"course_id": courseID}).
		OrderBy("created_at asc"))
}

func (*Repository) GetLocationByID(ctx context.Context, q database.Queryable, courseID, id string) (*model.Location, error) {
	locations, err := getLocations(ctx, q, locationsQuery.
		Where(sq.Eq{"course_id": courseID, "id": id}))
	if err != nil {
		return nil, err
	}

	if len(locations) == 0 {
		return nil, model.ErrNoRecord
	}

	return locations[0], nil
}

func getLocations(ctx context.Context, q database.Queryable, qb sq.SelectBuilder) ([]*model.Location, error) {
	var dtos []*locationDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.Location, len(dtos))
	for i, d := range dtos {
		res[i] = mapToLocation(d)
	}

	return res, nil
}

func (*Repository) UpdateLocation(ctx context.Context, q database.Queryable, location *model.Location) error {
	qb := database.PSQL.
		Update(database.LocationsTable).
		SetMap(map[string]interface{}{
			"name":                location.Name,
			"thumbnail_image_url": database.NullString(location.ThumbnailImageURL),
			"updated_at":          location.UpdatedAt,
		}).
		Where(sq.Eq{"course_id": location.CourseID, "id": location.ID})

	return execAffecting(ctx, q, qb)
}

func (*Repository) DeleteLocation(ctx context.Context, q database.Queryable, courseID, id string) error {
	qb := database.PSQL.
		Delete(database.LocationsTable).
		Where(sq.Eq{"course_id": courseID, "id": id})

	return execAffecting(ctx, q, qb)
}
