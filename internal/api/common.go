package api

import (
	"time"

	"github.com/tinlanh/church-admin/internal/dateformat"
	"github.com/tinlanh/church-admin/internal/model"
)

type eventResp struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Subtitle          string     `json:"subtitle,omitempty"`
	DateDisplay       string     `json:"dateDisplay,omitempty"`
	HeroImageURL      string     `json:"heroImageUrl,omitempty"`
	ThumbnailImageURL string     `json:"thumbnailImageUrl,omitempty"`
	Location          string     `json:"location,omitempty"`
	Notes             string     `json:"notes,omitempty"`
	StartDateTime     *time.Time `json:"startDateTime"`
	EndDateTime       *time.Time `json:"endDateTime"`
	IsActive          bool       `json:"isActive"`
	Recurring         bool       `json:"recurring"`
	Order             int        `json:"order"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

func mapToEventResp(e *model.Event) *eventResp {
	return &eventResp{
		ID:                e.ID,
		Title:             e.Title,
		Subtitle:          e.Subtitle,
		DateDisplay:       e.DateDisplay,
		HeroImageURL:      e.HeroImageURL,
		ThumbnailImageURL: e.ThumbnailImageURL,
		Location:          e.Location,
		Notes:             e.Notes,
		StartDateTime:     e.StartDateTime,
		EndDateTime:       e.EndDateTime,
		IsActive:          e.IsActive,
		Recurring:         e.Recurring,
		Order:             e.Order,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

type courseResp struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func mapToCourseResp(c *model.Course) *courseResp {
	return &courseResp{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

type locationResp struct {
	ID                string    `json:"id"`
	CourseID          string    `json:"courseId"`
	Name              string    `json:"name"`
	ThumbnailImageURL string    `json:"thumbnailImageUrl,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func mapToLocationResp(l *model.Location) *locationResp {
	return &locationResp{
		ID:                l.ID,
		CourseID:          l.CourseID,
		Name:              l.Name,
		ThumbnailImageURL: l.ThumbnailImageURL,
		CreatedAt:         l.CreatedAt,
		UpdatedAt:         l.UpdatedAt,
	}
}

type classResp struct {
	ID          string    `json:"id"`
	CourseID    string    `json:"courseId"`
	LocationID  string    `json:"locationId"`
	Title       string    `json:"title,omitempty"`
	TimeDisplay string    `json:"timeDisplay"`
	DayDisplay  string    `json:"dayDisplay"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	Contact     string    `json:"contact,omitempty"`
	Passage     string    `json:"passage,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func mapToClassResp(c *model.Class, loc *time.Location) *classResp {
	return &classResp{
		ID:          c.ID,
		CourseID:    c.CourseID,
		LocationID:  c.LocationID,
		TimeDisplay: dateformat.ClassTime(c.StartTime, c.EndTime, loc),
		DayDisplay:  dateformat.FullDateTime(c.StartTime, loc),
		StartTime:   c.StartTime,
		EndTime:     c.EndTime,
		Contact:     c.Contact,
		Passage:     c.Passage,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// mapToClassesResp titles classes by their position in the listing.
func mapToClassesResp(classes []*model.Class, loc *time.Location) []*classResp {
	res := make([]*classResp, len(classes))
	for i, c := range classes {
		res[i] = mapToClassResp(c, loc)
		res[i].Title = dateformat.ClassTitle(i)
	}

	return res
}

type imageResp struct {
	URL  string `json:"url"`
	Name string `json:"name"`
	Path string `json:"path"`
}

func mapToImageResp(i *model.ImageItem) *imageResp {
	return &imageResp{
		URL:  i.URL,
		Name: i.Name,
		Path: i.Path,
	}
}

type contactMessageResp struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

func mapToContactMessageResp(m *model.ContactMessage) *contactMessageResp {
	return &contactMessageResp{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		Message:   m.Message,
		CreatedAt: m.CreatedAt,
	}
}
