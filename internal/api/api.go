package api

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tinlanh/church-admin/internal/database"
	"github.com/tinlanh/church-admin/internal/dateformat"
	"github.com/tinlanh/church-admin/internal/model"
	"github.com/tinlanh/church-admin/internal/pkg/fcm"
	"github.com/tinlanh/church-admin/internal/pkg/oauth"
	"github.com/tinlanh/church-admin/internal/realtime"
	"github.com/tinlanh/church-admin/internal/recurrence"
	"go.uber.org/zap"
)

type Api struct {
	handler    http.Handler
	logger     *zap.SugaredLogger
	randSource io.Reader
	translator translator

	sessionTokenLength int
	filesDir           string

	jwts          jwtManager
	tokenParser   tokenParser
	passwords     passwordSignIn
	refreshTokens refreshTokenRepository
	adminCache    adminCache

	db      database.PGX
	admins  adminRepository
	contact contactRepository
	events  eventsService
	courses discipleshipService
	images  imagesService
	broker  subscriber
	fcm     fcmSender

	keepAlive time.Duration
}

type translator interface {
	T(locale, key string, data map[string]any) string
	DefaultLocale() string
}

type jwtManager interface {
	CreateToken(email string) (string, error)
	GetEmailFromToken(token string) (string, error)
}

type tokenParser interface {
	GetInfoGoogle(ctx context.Context, authCode string) (*oauth.GoogleInfo, error)
}

type passwordSignIn interface {
	SignInWithPassword(ctx context.Context, email, password string) (string, error)
}

type refreshTokenRepository interface {
	Add(ctx context.Context, session, email string) error
	Get(ctx context.Context, session string) (string, error)
	Refresh(ctx context.Context, old, new string) error
	Delete(ctx context.Context, session string) error
}

type adminCache interface {
	Get(ctx context.Context, email string) (isAdmin, found bool, err error)
	Set(ctx context.Context, email string, isAdmin bool) error
}

type adminRepository interface {
	GetAdmin(ctx context.Context, q database.Queryable, email string) (*model.Admin, error)
}

type contactRepository interface {
	CreateMessage(ctx context.Context, q database.Queryable, msg *model.ContactMessage) error
	GetMessages(ctx context.Context, q database.Queryable, limit uint64) ([]*model.ContactMessage, error)
}

type eventsService interface {
	CreateEvent(ctx context.Context, info *model.EventCreate) (*model.Event, error)
	UpdateEvent(ctx context.Context, id string, info *model.EventCreate) (*model.Event, error)
	DeleteEvent(ctx context.Context, id string) error
	ReorderEvents(ctx context.Context, ids []string) error
	GetEventByID(ctx context.Context, id string) (*model.Event, error)
	GetEvents(ctx context.Context, filter model.EventsFilter) ([]*model.Event, error)
	GetOccurrence(ctx context.Context, id string, lang dateformat.Language) (*model.Event, error)
	GetOccurrences(ctx context.Context, filter model.EventsFilter, lang dateformat.Language) ([]*model.Event, error)
	Projector() *recurrence.Projector
}

type discipleshipService interface {
	GetCourses(ctx context.Context) ([]*model.Course, error)
	GetCourse(ctx context.Context, id string) (*model.Course, error)
	CreateCourse(ctx context.Context, info *model.CourseCreate) (*model.Course, error)
	UpdateCourse(ctx context.Context, id string, info *model.CourseCreate) (*model.Course, error)
	DeleteCourse(ctx context.Context, id string) error

	GetLocations(ctx context.Context, courseID string) ([]*model.Location, error)
	GetLocation(ctx context.Context, courseID, id string) (*model.Location, error)
	CreateLocation(ctx context.Context, courseID string, info *model.LocationCreate) (*model.Location, error)
	UpdateLocation(ctx context.Context, courseID, id string, info *model.LocationCreate) (*model.Location, error)
	DeleteLocation(ctx context.Context, courseID, id string) error

	GetClasses(ctx context.Context, courseID, locationID string) ([]*model.Class, error)
	GetClass(ctx context.Context, courseID, locationID, id string) (*model.Class, error)
	CreateClass(ctx context.Context, courseID, locationID string, info *model.ClassCreate) (*model.Class, error)
	UpdateClass(ctx context.Context, courseID, locationID, id string, info *model.ClassCreate) (*model.Class, error)
	DeleteClass(ctx context.Context, courseID, locationID, id string) error
	DeleteClasses(ctx context.Context, courseID, locationID string, ids []string) (int64, error)
}

type imagesService interface {
	Upload(ctx context.Context, name, contentType string, r io.Reader) (*model.ImageItem, error)
	List(ctx context.Context) ([]*model.ImageItem, error)
	Delete(ctx context.Context, path string) error
	MaxSize() int64
}

type subscriber interface {
	Subscribe(ctx context.Context, topic string) (*realtime.Subscription, error)
}

type fcmSender interface {
	SendMessage(ctx context.Context, m *fcm.Message) error
}

// Params lists what the API is built from. FCM and FilesDir are optional:
// without them the test reminder and /files routes are not mounted.
type Params struct {
	Logger             *zap.SugaredLogger
	RandSource         io.Reader
	Translator         translator
	SessionTokenLength int
	FilesDir           string

	JWTs          jwtManager
	TokenParser   tokenParser
	Passwords     passwordSignIn
	RefreshTokens refreshTokenRepository
	AdminCache    adminCache

	DB      database.PGX
	Admins  adminRepository
	Contact contactRepository
	Events  eventsService
	Courses discipleshipService
	Images  imagesService
	Broker  subscriber
	FCM     fcmSender
}

func NewApi(p Params) (*Api, error) {
	a := &Api{
		logger:             p.Logger,
		randSource:         p.RandSource,
		translator:         p.Translator,
		sessionTokenLength: p.SessionTokenLength,
		filesDir:           p.FilesDir,
		jwts:               p.JWTs,
		tokenParser:        p.TokenParser,
		passwords:          p.Passwords,
		refreshTokens:      p.RefreshTokens,
		adminCache:         p.AdminCache,
		db:                 p.DB,
		admins:             p.Admins,
		contact:            p.Contact,
		events:             p.Events,
		courses:            p.Courses,
		images:             p.Images,
		broker:             p.Broker,
		fcm:                p.FCM,
		keepAlive:          defaultKeepAlive,
	}
	a.setupHandler()

	return a, nil
}

func (a *Api) setupHandler() {
	middleware.DefaultLogger = func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a.logger.Debugw(r.URL.RequestURI(),
				"addr", r.RemoteAddr,
				"protocol", r.Proto,
				"method", r.Method,
			)
			next.ServeHTTP(w, r)
		})
	}

	r := chi.NewMux()

	r.Use(middleware.Logger, middleware.Recoverer, middleware.StripSlashes, a.locale)
	r.NotFound(a.notFoundResponse)
	r.MethodNotAllowed(a.methodNotAllowedResponse)

	r.Get("/healthcheck", a.healthcheckHandler)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signin/email", a.signInEmailHandler)
		r.Post("/signin/google", a.signInGoogleHandler)
		r.Post("/refresh", a.refreshTokenHandler)
		r.Post("/logout", a.logoutUserHandler)
		r.With(a.auth).Get("/me", a.getMeHandler)
	})

	r.Route("/events", func(r chi.Router) {
		r.Get("/", a.getPublicEventsHandler)
		r.Get("/stream", a.streamPublicEventsHandler)
		r.Get("/calendar.ics", a.calendarHandler)
		r.Get("/{eventID}", a.getPublicEventHandler)
	})

	r.Route("/courses", func(r chi.Router) {
		r.Get("/", a.getCoursesHandler)
		r.Get("/stream", a.streamCoursesHandler)
		r.Route("/{courseID}", func(r chi.Router) {
			r.Get("/", a.getCourseHandler)
			r.Route("/locations", func(r chi.Router) {
				r.Get("/", a.getLocationsHandler)
				r.Get("/stream", a.streamLocationsHandler)
				r.Route("/{locationID}", func(r chi.Router) {
					r.Get("/", a.getLocationHandler)
					r.Get("/classes", a.getClassesHandler)
					r.Get("/classes/stream", a.streamClassesHandler)
				})
			})
		})
	})

	r.Post("/contact", a.createContactMessageHandler)

	r.With(a.auth, a.adminOnly).Route("/admin", func(r chi.Router) {
		r.Route("/events", func(r chi.Router) {
			r.Get("/", a.getEventsHandler)
			r.Post("/", a.createEventHandler)
			r.Get("/stream", a.streamEventsHandler)
			r.Put("/order", a.reorderEventsHandler)
			r.Get("/{eventID}", a.getEventHandler)
			r.Put("/{eventID}", a.updateEventHandler)
			r.Delete("/{eventID}", a.deleteEventHandler)
		})

		r.Route("/courses", func(r chi.Router) {
			r.Post("/", a.createCourseHandler)
			r.Route("/{courseID}", func(r chi.Router) {
				r.Put("/", a.updateCourseHandler)
				r.Delete("/", a.deleteCourseHandler)
				r.Route("/locations", func(r chi.Router) {
					r.Post("/", a.createLocationHandler)
					r.Route("/{locationID}", func(r chi.Router) {
						r.Put("/", a.updateLocationHandler)
						r.Delete("/", a.deleteLocationHandler)
						r.Route("/classes", func(r chi.Router) {
							r.Post("/", a.createClassHandler)
							r.Delete("/", a.deleteClassesHandler)
							r.Put("/{classID}", a.updateClassHandler)
							r.Delete("/{classID}", a.deleteClassHandler)
						})
					})
				})
			})
		})

		r.Route("/images", func(r chi.Router) {
			r.Get("/", a.getImagesHandler)
			r.Post("/", a.uploadImageHandler)
			r.Delete("/", a.deleteImageHandler)
		})

		r.Get("/contact-messages", a.getContactMessagesHandler)

		if a.fcm != nil {
			r.Post("/reminders/test", a.sendTestReminderHandler)
		}
	})

	if a.filesDir != "" {
		fileServer := http.FileServer(http.Dir(a.filesDir))
		r.Get("/files/*", http.StripPrefix("/files", fileServer).ServeHTTP)
	}

	a.handler = r
}

func (a *Api) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	if err := a.db.Ping(r.Context()); err != nil {
		a.logger.Errorw("database ping", "err", err)
		a.errorResponse(w, r, http.StatusServiceUnavailable, "database unavailable")
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (a *Api) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}
