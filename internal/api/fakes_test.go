package api

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/tinlanh/church-admin/internal/database"
	"github.com/tinlanh/church-admin/internal/dateformat"
	"github.com/tinlanh/church-admin/internal/model"
	"github.com/tinlanh/church-admin/internal/pkg/fcm"
	"github.com/tinlanh/church-admin/internal/pkg/oauth"
	"github.com/tinlanh/church-admin/internal/recurrence"
)

type fakeGoogle struct {
	info *oauth.GoogleInfo
	err  error
}

func (f *fakeGoogle) GetInfoGoogle(context.Context, string) (*oauth.GoogleInfo, error) {
	return f.info, f.err
}

type fakePasswords struct {
	passwords map[string]string
	err       error
}

func (f *fakePasswords) SignInWithPassword(_ context.Context, email, password string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.passwords[email] != password {
		return "", errors.New("unexpected credentials")
	}
	return email, nil
}

type fakeSessions struct {
	mu       sync.Mutex
	sessions map[string]string
}

func (f *fakeSessions) Add(_ context.Context, session, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.sessions[session]; ok {
		return model.ErrAlreadyExists
	}
	f.sessions[session] = email
	return nil
}

func (f *fakeSessions) Get(_ context.Context, session string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	email, ok := f.sessions[session]
	if !ok {
		return "", model.ErrNoRecord
	}
	return email, nil
}

func (f *fakeSessions) Refresh(_ context.Context, old, new string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	email, ok := f.sessions[old]
	if !ok {
		return model.ErrNoRecord
	}
	if _, taken := f.sessions[new]; taken {
		return model.ErrAlreadyExists
	}
	delete(f.sessions, old)
	f.sessions[new] = email
	return nil
}

func (f *fakeSessions) Delete(_ context.Context, session string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.sessions, session)
	return nil
}

type fakeAdminCache struct {
	mu      sync.Mutex
	entries map[string]bool
}

func (f *fakeAdminCache) Get(_ context.Context, email string) (bool, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	isAdmin, ok := f.entries[email]
	return isAdmin, ok, nil
}

func (f *fakeAdminCache) Set(_ context.Context, email string, isAdmin bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.entries[email] = isAdmin
	return nil
}

type fakeAdmins struct {
	admins map[string]bool
	calls  int
}

func (f *fakeAdmins) GetAdmin(_ context.Context, _ database.Queryable, email string) (*model.Admin, error) {
	f.calls++
	isAdmin, ok := f.admins[email]
	if !ok {
		return nil, model.ErrNoRecord
	}
	return &model.Admin{Email: email, IsAdmin: isAdmin}, nil
}

type fakeContact struct {
	messages []*model.ContactMessage
}

func (f *fakeContact) CreateMessage(_ context.Context, _ database.Queryable, msg *model.ContactMessage) error {
	f.messages = append(f.messages, msg)
	return nil
}

func (f *fakeContact) GetMessages(_ context.Context, _ database.Queryable, limit uint64) ([]*model.ContactMessage, error) {
	res := make([]*model.ContactMessage, 0, len(f.messages))
	for i := len(f.messages) - 1; i >= 0 && uint64(len(res)) < limit; i-- {
		res = append(res, f.messages[i])
	}
	return res, nil
}

// fakeEvents keeps events in order and projects through a real projector.
type fakeEvents struct {
	mu        sync.Mutex
	events    []*model.Event
	projector *recurrence.Projector
	nextID    int
}

func (f *fakeEvents) CreateEvent(_ context.Context, info *model.EventCreate) (*model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	e := &model.Event{
		ID:          "e" + string(rune('0'+f.nextID)),
		Order:       len(f.events) + 1,
		DateDisplay: dateformat.EventDateVN(info.StartDateTime, info.EndDateTime, f.projector.Location()),
		EventCreate: *info,
	}
	f.events = append(f.events, e)
	return e, nil
}

func (f *fakeEvents) UpdateEvent(_ context.Context, id string, info *model.EventCreate) (*model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, e := range f.events {
		if e.ID == id {
			e.EventCreate = *info
			return e, nil
		}
	}
	return nil, model.ErrNoRecord
}

func (f *fakeEvents) DeleteEvent(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, e := range f.events {
		if e.ID == id {
			f.events = append(f.events[:i], f.events[i+1:]...)
			return nil
		}
	}
	return model.ErrNoRecord
}

func (f *fakeEvents) ReorderEvents(_ context.Context, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	pos := make(map[string]int, len(ids))
	for i, id := range ids {
		pos[id] = i
	}
	for _, e := range f.events {
		if _, ok := pos[e.ID]; !ok {
			return model.ErrNoRecord
		}
		e.Order = pos[e.ID]
	}
	sort.Slice(f.events, func(i, j int) bool { return f.events[i].Order < f.events[j].Order })
	return nil
}

func (f *fakeEvents) GetEventByID(_ context.Context, id string) (*model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, e := range f.events {
		if e.ID == id {
			c := *e
			return &c, nil
		}
	}
	return nil, model.ErrNoRecord
}

func (f *fakeEvents) GetEvents(_ context.Context, filter model.EventsFilter) ([]*model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var res []*model.Event
	for _, e := range f.events {
		if filter.Status == model.EventStatusActive && !e.IsActive {
			continue
		}
		if filter.Status == model.EventStatusInactive && e.IsActive {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(e.Title), strings.ToLower(filter.Search)) {
			continue
		}
		c := *e
		res = append(res, &c)
	}
	return res, nil
}

func (f *fakeEvents) occurrence(e *model.Event, lang dateformat.Language) *model.Event {
	res := *e
	if e.StartDateTime != nil {
		start := f.projector.NextOccurrence(*e.StartDateTime, e.Recurring)
		res.StartDateTime = &start
		res.EndDateTime = f.projector.EndDateTime(e.StartDateTime, e.EndDateTime, e.Recurring)
	}
	res.DateDisplay = dateformat.New(lang, f.projector.Location()).EventDate(res.StartDateTime, res.EndDateTime)
	return &res
}

func (f *fakeEvents) GetOccurrence(ctx context.Context, id string, lang dateformat.Language) (*model.Event, error) {
	e, err := f.GetEventByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return f.occurrence(e, lang), nil
}

func (f *fakeEvents) GetOccurrences(ctx context.Context, filter model.EventsFilter, lang dateformat.Language) ([]*model.Event, error) {
	events, err := f.GetEvents(ctx, filter)
	if err != nil {
		return nil, err
	}
	res := make([]*model.Event, len(events))
	for i, e := range events {
		res[i] = f.occurrence(e, lang)
	}
	return res, nil
}

func (f *fakeEvents) Projector() *recurrence.Projector {
	return f.projector
}

// fakeCourses holds one level of each collection, enough for the handlers.
type fakeCourses struct {
	courses   map[string]*model.Course
	locations map[string]*model.Location
	classes   []*model.Class
}

func (f *fakeCourses) GetCourses(context.Context) ([]*model.Course, error) {
	res := make([]*model.Course, 0, len(f.courses))
	for _, c := range f.courses {
		res = append(res, c)
	}
	return res, nil
}

func (f *fakeCourses) GetCourse(_ context.Context, id string) (*model.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, model.ErrNoRecord
	}
	return c, nil
}

func (f *fakeCourses) CreateCourse(_ context.Context, info *model.CourseCreate) (*model.Course, error) {
	c := &model.Course{ID: "c" + string(rune('0'+len(f.courses)+1)), CourseCreate: *info}
	f.courses[c.ID] = c
	return c, nil
}

func (f *fakeCourses) UpdateCourse(ctx context.Context, id string, info *model.CourseCreate) (*model.Course, error) {
	c, err := f.GetCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	c.CourseCreate = *info
	return c, nil
}

func (f *fakeCourses) DeleteCourse(ctx context.Context, id string) error {
	if _, err := f.GetCourse(ctx, id); err != nil {
		return err
	}
	delete(f.courses, id)
	return nil
}

func (f *fakeCourses) GetLocations(ctx context.Context, courseID string) ([]*model.Location, error) {
	if _, err := f.GetCourse(ctx, courseID); err != nil {
		return nil, err
	}
	var res []*model.Location
	for _, l := range f.locations {
		if l.CourseID == courseID {
			res = append(res, l)
		}
	}
	return res, nil
}

func (f *fakeCourses) GetLocation(_ context.Context, courseID, id string) (*model.Location, error) {
	l, ok := f.locations[id]
	if !ok || l.CourseID != courseID {
		return nil, model.ErrNoRecord
	}
	return l, nil
}

func (f *fakeCourses) CreateLocation(ctx context.Context, courseID string, info *model.LocationCreate) (*model.Location, error) {
	if _, err := f.GetCourse(ctx, courseID); err != nil {
		return nil, err
	}
	l := &model.Location{ID: "l" + string(rune('0'+len(f.locations)+1)), CourseID: courseID, LocationCreate: *info}
	f.locations[l.ID] = l
	return l, nil
}

func (f *fakeCourses) UpdateLocation(ctx context.Context, courseID, id string, info *model.LocationCreate) (*model.Location, error) {
	l, err := f.GetLocation(ctx, courseID, id)
	if err != nil {
		return nil, err
	}
	l.LocationCreate = *info
	return l, nil
}

func (f *fakeCourses) DeleteLocation(ctx context.Context, courseID, id string) error {
	if _, err := f.GetLocation(ctx, courseID, id); err != nil {
		return err
	}
	delete(f.locations, id)
	return nil
}

func (f *fakeCourses) GetClasses(ctx context.Context, courseID, locationID string) ([]*model.Class, error) {
	if _, err := f.GetLocation(ctx, courseID, locationID); err != nil {
		return nil, err
	}
	var res []*model.Class
	for _, c := range f.classes {
		if c.LocationID == locationID {
			res = append(res, c)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].StartTime.Before(res[j].StartTime) })
	return res, nil
}

func (f *fakeCourses) GetClass(ctx context.Context, courseID, locationID, id string) (*model.Class, error) {
	classes, err := f.GetClasses(ctx, courseID, locationID)
	if err != nil {
		return nil, err
	}
	for _, c := range classes {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, model.ErrNoRecord
}

func (f *fakeCourses) CreateClass(ctx context.Context, courseID, locationID string, info *model.ClassCreate) (*model.Class, error) {
	if _, err := f.GetLocation(ctx, courseID, locationID); err != nil {
		return nil, err
	}
	c := &model.Class{
		ID:          "k" + string(rune('0'+len(f.classes)+1)),
		CourseID:    courseID,
		LocationID:  locationID,
		ClassCreate: *info,
	}
	f.classes = append(f.classes, c)
	return c, nil
}

func (f *fakeCourses) UpdateClass(ctx context.Context, courseID, locationID, id string, info *model.ClassCreate) (*model.Class, error) {
	c, err := f.GetClass(ctx, courseID, locationID, id)
	if err != nil {
		return nil, err
	}
	c.ClassCreate = *info
	return c, nil
}

func (f *fakeCourses) DeleteClass(ctx context.Context, courseID, locationID, id string) error {
	n, err := f.DeleteClasses(ctx, courseID, locationID, []string{id})
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrNoRecord
	}
	return nil
}

func (f *fakeCourses) DeleteClasses(ctx context.Context, courseID, locationID string, ids []string) (int64, error) {
	if _, err := f.GetLocation(ctx, courseID, locationID); err != nil {
		return 0, err
	}
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	var deleted int64
	kept := f.classes[:0]
	for _, c := range f.classes {
		if c.LocationID == locationID && drop[c.ID] {
			deleted++
			continue
		}
		kept = append(kept, c)
	}
	f.classes = kept
	return deleted, nil
}

type fakeFCM struct {
	sent []*fcm.Message
}

func (f *fakeFCM) SendMessage(_ context.Context, m *fcm.Message) error {
	f.sent = append(f.sent, m)
	return nil
}

var ict = time.FixedZone("ICT", 7*60*60)
