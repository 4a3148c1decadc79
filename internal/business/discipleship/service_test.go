package discipleship

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinlanh/church-admin/internal/database"
	"github.com/tinlanh/church-admin/internal/database/dbtest"
	"github.com/tinlanh/church-admin/internal/model"
	"github.com/tinlanh/church-admin/internal/realtime"
	"go.uber.org/zap"
)

type memRepo struct {
	mu        sync.Mutex
	courses   map[string]*model.Course
	locations map[string]*model.Location
	classes   map[string]*model.Class

	deleteLocationErr error
}

func newMemRepo() *memRepo {
	return &memRepo{
		courses:   map[string]*model.Course{},
		locations: map[string]*model.Location{},
		classes:   map[string]*model.Class{},
	}
}

func (r *memRepo) CreateCourse(_ context.Context, _ database.Queryable, c *model.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.courses[c.ID] = &cp
	return nil
}

func (r *memRepo) GetCourses(_ context.Context, _ database.Queryable) ([]*model.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []*model.Course
	for _, c := range r.courses {
		cp := *c
		res = append(res, &cp)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	return res, nil
}

func (r *memRepo) GetCourseByID(_ context.Context, _ database.Queryable, id string) (*model.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.courses[id]
	if !ok {
		return nil, model.ErrNoRecord
	}
	cp := *c
	return &cp, nil
}

func (r *memRepo) UpdateCourse(_ context.Context, _ database.Queryable, c *model.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.courses[c.ID] = &cp
	return nil
}

func (r *memRepo) DeleteCourse(_ context.Context, _ database.Queryable, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.locations {
		if l.CourseID == id {
			return errors.New("foreign key violation: location references course")
		}
	}
	if _, ok := r.courses[id]; !ok {
		return model.ErrNoRecord
	}
	delete(r.courses, id)
	return nil
}

func (r *memRepo) CreateLocation(_ context.Context, _ database.Queryable, l *model.Location) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *l
	r.locations[l.ID] = &cp
	return nil
}

func (r *memRepo) GetLocationsByCourse(_ context.Context, _ database.Queryable, courseID string) ([]*model.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []*model.Location
	for _, l := range r.locations {
		if l.CourseID == courseID {
			cp := *l
			res = append(res, &cp)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.Before(res[j].CreatedAt) })
	return res, nil
}

func (r *memRepo) GetLocationByID(_ context.Context, _ database.Queryable, courseID, id string) (*model.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.locations[id]
	if !ok || l.CourseID != courseID {
		return nil, model.ErrNoRecord
	}
	cp := *l
	return &cp, nil
}

func (r *memRepo) UpdateLocation(_ context.Context, _ database.Queryable, l *model.Location) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *l
	r.locations[l.ID] = &cp
	return nil
}

func (r *memRepo) DeleteLocation(_ context.Context, _ database.Queryable, courseID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteLocationErr != nil {
		return r.deleteLocationErr
	}
	for _, c := range r.classes {
		if c.LocationID == id {
			return errors.New("foreign key violation: class references location")
		}
	}
	l, ok := r.locations[id]
	if !ok || l.CourseID != courseID {
		return model.ErrNoRecord
	}
	delete(r.locations, id)
	return nil
}

func (r *memRepo) CreateClass(_ context.Context, _ database.Queryable, c *model.Class) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.classes[c.ID] = &cp
	return nil
}

func (r *memRepo) GetClassesByLocation(_ context.Context, _ database.Queryable, courseID, locationID string) ([]*model.Class, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []*model.Class
	for _, c := range r.classes {
		if c.CourseID == courseID && c.LocationID == locationID {
			cp := *c
			res = append(res, &cp)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].StartTime.Before(res[j].StartTime) })
	return res, nil
}

func (r *memRepo) GetClassByID(_ context.Context, _ database.Queryable, courseID, locationID, id string) (*model.Class, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.classes[id]
	if !ok || c.CourseID != courseID || c.LocationID != locationID {
		return nil, model.ErrNoRecord
	}
	cp := *c
	return &cp, nil
}

func (r *memRepo) UpdateClass(_ context.Context, _ database.Queryable, c *model.Class) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.classes[c.ID] = &cp
	return nil
}

func (r *memRepo) DeleteClass(_ context.Context, _ database.Queryable, courseID, locationID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.classes[id]
	if !ok || c.CourseID != courseID || c.LocationID != locationID {
		return model.ErrNoRecord
	}
	delete(r.classes, id)
	return nil
}

func (r *memRepo) DeleteClasses(_ context.Context, _ database.Queryable, courseID, locationID string, ids []string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := map[string]bool{}
	for _, id := range ids {
		wanted[id] = true
	}
	var n int64
	for id, c := range r.classes {
		if c.CourseID != courseID || c.LocationID != locationID {
			continue
		}
		if len(ids) != 0 && !wanted[id] {
			continue
		}
		delete(r.classes, id)
		n++
	}
	return n, nil
}

func (r *memRepo) counts(courseID string) (locations, classes int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.locations {
		if l.CourseID == courseID {
			locations++
		}
	}
	for _, c := range r.classes {
		if c.CourseID == courseID {
			classes++
		}
	}
	return locations, classes
}

type fixture struct {
	svc    *Service
	repo   *memRepo
	db     *dbtest.PGX
	broker *realtime.MemoryBroker
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	now := time.Date(2025, time.January, 6, 9, 0, 0, 0, time.UTC)
	f := &fixture{repo: newMemRepo(), db: &dbtest.PGX{}, broker: realtime.NewMemoryBroker()}
	f.svc = NewService(f.db, f.repo, f.broker, zap.NewNop().Sugar(), func() time.Time {
		now = now.Add(time.Minute)
		return now
	})

	n := 0
	f.svc.newID = func() string {
		n++
		return fmt.Sprintf("id%d", n)
	}

	return f
}

func slot(day, hour int) model.ClassCreate {
	start := time.Date(2025, time.January, day, hour, 0, 0, 0, time.UTC)
	return model.ClassCreate{StartTime: start, EndTime: start.Add(90 * time.Minute)}
}

// seed creates a course with the given number of locations and classes per
// location.
func (f *fixture) seed(t *testing.T, locations, classes int) *model.Course {
	t.Helper()
	ctx := context.Background()

	course, err := f.svc.CreateCourse(ctx, &model.CourseCreate{Name: "Môn đồ hóa"})
	require.NoError(t, err)

	for i := 0; i < locations; i++ {
		l, err := f.svc.CreateLocation(ctx, course.ID, &model.LocationCreate{Name: fmt.Sprintf("Chi hội %d", i)})
		require.NoError(t, err)

		for j := 0; j < classes; j++ {
			info := slot(6+j, 19)
			_, err := f.svc.CreateClass(ctx, course.ID, l.ID, &info)
			require.NoError(t, err)
		}
	}

	return course
}

func TestDeleteCourse_Cascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	course := f.seed(t, 2, 3)
	other := f.seed(t, 1, 1)

	locations, classes := f.repo.counts(course.ID)
	require.Equal(t, 2, locations)
	require.Equal(t, 6, classes)

	require.NoError(t, f.svc.DeleteCourse(ctx, course.ID))

	locations, classes = f.repo.counts(course.ID)
	assert.Zero(t, locations)
	assert.Zero(t, classes)

	_, err := f.svc.GetCourse(ctx, course.ID)
	assert.ErrorIs(t, err, model.ErrNoRecord)

	locations, classes = f.repo.counts(other.ID)
	assert.Equal(t, 1, locations)
	assert.Equal(t, 1, classes)

	_, committed, rolledBack := f.db.Stats()
	assert.Equal(t, 1, committed)
	assert.Zero(t, rolledBack)
}

func TestDeleteCourse_FailureRollsBack(t *testing.T) {
	f := newFixture(t)
	course := f.seed(t, 2, 1)

	boom := errors.New("connection reset")
	f.repo.deleteLocationErr = boom

	err := f.svc.DeleteCourse(context.Background(), course.ID)
	require.ErrorIs(t, err, boom)

	_, committed, rolledBack := f.db.Stats()
	assert.Zero(t, committed)
	assert.Equal(t, 1, rolledBack)
}

func TestDeleteCourse_NotFound(t *testing.T) {
	f := newFixture(t)

	err := f.svc.DeleteCourse(context.Background(), "missing")
	assert.ErrorIs(t, err, model.ErrNoRecord)
}

func TestDeleteLocation_Cascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	course := f.seed(t, 2, 3)

	locations, err := f.svc.GetLocations(ctx, course.ID)
	require.NoError(t, err)
	require.Len(t, locations, 2)

	sub, err := f.broker.Subscribe(ctx, realtime.ClassesTopic(course.ID, locations[0].ID))
	require.NoError(t, err)
	defer sub.Close()

	require.NoError(t, f.svc.DeleteLocation(ctx, course.ID, locations[0].ID))

	left, classes := f.repo.counts(course.ID)
	assert.Equal(t, 1, left)
	assert.Equal(t, 3, classes)

	select {
	case <-sub.C():
	default:
		t.Fatal("class subscribers of the removed location must be notified")
	}

	err = f.svc.DeleteLocation(ctx, course.ID, locations[0].ID)
	assert.ErrorIs(t, err, model.ErrNoRecord)
}

func TestChildrenRequireParent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateLocation(ctx, "missing", &model.LocationCreate{Name: "x"})
	assert.ErrorIs(t, err, model.ErrNoRecord)

	_, err = f.svc.GetLocations(ctx, "missing")
	assert.ErrorIs(t, err, model.ErrNoRecord)

	course := f.seed(t, 0, 0)
	info := slot(6, 19)
	_, err = f.svc.CreateClass(ctx, course.ID, "missing", &info)
	assert.ErrorIs(t, err, model.ErrNoRecord)

	_, err = f.svc.GetClasses(ctx, course.ID, "missing")
	assert.ErrorIs(t, err, model.ErrNoRecord)
}

func TestCreateClass_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	course := f.seed(t, 1, 0)
	locations, err := f.svc.GetLocations(ctx, course.ID)
	require.NoError(t, err)

	start := time.Date(2025, time.January, 6, 19, 0, 0, 0, time.UTC)

	_, err = f.svc.CreateClass(ctx, course.ID, locations[0].ID, &model.ClassCreate{StartTime: start, EndTime: start})
	assert.ErrorIs(t, err, model.ErrEndBeforeStart)

	_, err = f.svc.CreateClass(ctx, course.ID, locations[0].ID, &model.ClassCreate{StartTime: start})
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestListOrdering(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.seed(t, 2, 0)
	second := f.seed(t, 0, 0)

	courses, err := f.svc.GetCourses(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, second.ID, courses[0].ID, "newest course first")

	locations, err := f.svc.GetLocations(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Chi hội 0", locations[0].Name, "oldest location first")

	late := slot(8, 19)
	early := slot(7, 19)
	_, err = f.svc.CreateClass(ctx, first.ID, locations[0].ID, &late)
	require.NoError(t, err)
	_, err = f.svc.CreateClass(ctx, first.ID, locations[0].ID, &early)
	require.NoError(t, err)

	classes, err := f.svc.GetClasses(ctx, first.ID, locations[0].ID)
	require.NoError(t, err)
	require.Len(t, classes, 2)
	assert.True(t, classes[0].StartTime.Before(classes[1].StartTime))
}

func TestDeleteClasses(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	course := f.seed(t, 1, 3)

	locations, err := f.svc.GetLocations(ctx, course.ID)
	require.NoError(t, err)
	classes, err := f.svc.GetClasses(ctx, course.ID, locations[0].ID)
	require.NoError(t, err)

	n, err := f.svc.DeleteClasses(ctx, course.ID, locations[0].ID, nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = f.svc.DeleteClasses(ctx, course.ID, locations[0].ID, []string{classes[0].ID, classes[2].ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	left, err := f.svc.GetClasses(ctx, course.ID, locations[0].ID)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, classes[1].ID, left[0].ID)
}

func TestUpdateCourse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	course := f.seed(t, 0, 0)

	updated, err := f.svc.UpdateCourse(ctx, course.ID, &model.CourseCreate{Name: "Nền tảng", Description: "8 tuần"})
	require.NoError(t, err)
	assert.Equal(t, "Nền tảng", updated.Name)
	assert.Equal(t, course.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(course.UpdatedAt))

	_, err = f.svc.UpdateCourse(ctx, "missing", &model.CourseCreate{Name: "x"})
	assert.ErrorIs(t, err, model.ErrNoRecord)
}
