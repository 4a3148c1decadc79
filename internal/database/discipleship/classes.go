package discipleship

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/tinlanh/church-admin/internal/database"
	"github.com/tinlanh/church-admin/internal/model"
)

func (*Repository) CreateClass(ctx context.Context, q database.Queryable, class *model.Class) error {
	qb := database.PSQL.
		Insert(database.ClassesTable).
		Columns("id", "course_id", "location_id", "start_time", "end_time", "contact", "passage", "created_at", "updated_at").
		Values(
			class.ID,
			class.CourseID,
			class.LocationID,
			class.StartTime,
			class.EndTime,
			database.NullString(class.Contact),
			database.NullString(class.Passage),
			class.CreatedAt,
			class.UpdatedAt,
		)

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}

func (*Repository) GetClassesByLocation(ctx context.Context, q database.Queryable, courseID, locationID string) ([]*model.Class, error) {
	return getClasses(ctx, q, classesQuery.
		Where(sq.Eq{"course_id": courseID, "location_id": locationID}).
		OrderBy("start_time asc"))
}

func (*Repository) GetClassByID(ctx context.Context, q database.Queryable, courseID, locationID, id string) (*model.Class, error) {
	classes, err := getClasses(ctx, q, classesQuery.
		Where(sq.Eq{"course_id": courseID, "location_id": locationID, "id": id}))
	if err != nil {
		return nil, err
	}

	if len(classes) == 0 {
		return nil, model.ErrNoRecord
	}

	return classes[0], nil
}

func getClasses(ctx context.Context, q database.Queryable, qb sq.SelectBuilder) ([]*model.Class, error) {
	var dtos []*classDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.Class, len(dtos))
	for i, d := range dtos {
		res[i] = mapToClass(d)
	}

	return res, nil
}

func (*Repository) UpdateClass(ctx context.Context, q database.Queryable, class *model.Class) error {
	qb := database.PSQL.
		Update(database.ClassesTable).
		SetMap(map[string]interface{}{
			"start_time": class.StartTime,
			"end_time":   class.EndTime,
			"contact":    database.NullString(class.Contact),
			"passage":    database.NullString(class.Passage),
			"updated_at": class.UpdatedAt,
		}).
		Where(sq.Eq{"course_id": class.CourseID, "location_id": class.LocationID, "id": class.ID})

	return execAffecting(ctx, q, qb)
}

func (*Repository) DeleteClass(ctx context.Context, q database.Queryable, courseID, locationID, id string) error {
	qb := database.PSQL.
		Delete(database.ClassesTable).
		Where(sq.Eq{"course_id": courseID, "location_id": locationID, "id": id})

	return execAffecting(ctx, q, qb)
}

// DeleteClasses removes the given classes of one location with a single statement.
// An empty ids slice removes every class of the location.
func (*Repository) DeleteClasses(ctx context.Context, q database.Queryable, courseID, locationID string, ids []string) (int64, error) {
	qb := database.PSQL.
		Delete(database.ClassesTable).
		Where(sq.Eq{"course_id": courseID, "location_id": locationID})

	if len(ids) != 0 {
		qb = qb.Where(sq.Eq{"id": ids})
	}

	tag, err := q.Exec(ctx, qb)
	if err != nil {
		return 0, fmt.Errorf("SQL request: %w", err)
	}

	return tag.RowsAffected(), nil
}
