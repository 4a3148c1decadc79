package discipleship

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/tinlanh/church-admin/internal/database"
	"github.com/tinlanh/church-admin/internal/model"
)

func (*Repository) CreateCourse(ctx context.Context, q database.Queryable, course *model.Course) error {
	qb := database.PSQL.
		Insert(database.CoursesTable).
		Columns("id", "name", "description", "created_at", "updated_at").
		Values(
			course.ID,
			course.Name,
			database.NullString(course.Description),
			course.CreatedAt,
			course.UpdatedAt,
		)

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}

func (*Repository) GetCourses(ctx context.Context, q database.Queryable) ([]*model.Course, error) {
	return getCourses(ctx, q, coursesQuery.OrderBy("created_at desc"))
}

func (*Repository) GetCourseByID(ctx context.Context, q database.Queryable, id string) (*model.Course, error) {
	courses, err := getCourses(ctx, q, coursesQuery.Where(sq.Eq{"id": id}))
	if err != nil {
		return nil, err
	}

	if len(courses) == 0 {
		return nil, model.ErrNoRecord
	}

	return courses[0], nil
}

func getCourses(ctx context.Context, q database.Queryable, qb sq.SelectBuilder) ([]*model.Course, error) {
	var dtos []*courseDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.Course, len(dtos))
	for i, d := range dtos {
		res[i] = mapToCourse(d)
	}

	return res, nil
}

func (*Repository) UpdateCourse(ctx context.Context, q database.Queryable, course *model.Course) error {
	qb := database.PSQL.
		Update(database.CoursesTable).
		SetMap(map[string]interface{}{
			"name":        course.Name,
			"description": database.NullString(course.Description),
			"updated_at":  course.UpdatedAt,
		}).
		Where(sq.Eq{"id": course.ID})

	return execAffecting(ctx, q, qb)
}

func (*Repository) DeleteCourse(ctx context.Context, q database.Queryable, id string) error {
	qb := database.PSQL.
		Delete(database.CoursesTable).
		Where(sq.Eq{"id": id})

	return execAffecting(ctx, q, qb)
}

func execAffecting(ctx context.Context, q database.Queryable, qb database.Sqlizer) error {
	tag, err := q.Exec(ctx, qb)
	if err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrNoRecord
	}

	return nil
}
