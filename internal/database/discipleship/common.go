package discipleship

import "github.com/tinlanh/church-admin/internal/database"

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

var coursesQuery = database.PSQL.
	Select("id", "name", "description", "created_at", "updated_at").
	From(database.CoursesTable)

var locationsQuery = database.PSQL.
	Select("id", "course_id", "name", "thumbnail_image_url", "created_at", "updated_at").
	From(database.LocationsTable)

var classesQuery = database.PSQL.
	Select("id", "course_id", "location_id", "start_time", "end_time", "contact", "passage", "created_at", "updated_at").
	From(database.ClassesTable)
