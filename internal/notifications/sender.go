package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/tinlanh/church-admin/internal/dateformat"
	"github.com/tinlanh/church-admin/internal/i18n"
	"github.com/tinlanh/church-admin/internal/model"
	"github.com/tinlanh/church-admin/internal/pkg/fcm"
	"github.com/tinlanh/church-admin/internal/recurrence"
	"github.com/xlab/closer"
	"go.uber.org/zap"
)

// TopicPrefix is followed by the locale, clients subscribe to "events-vi" or
// "events-en".
const TopicPrefix = "events-"

var locales = []string{i18n.Vietnamese, i18n.English}

type Sender struct {
	logger        *zap.SugaredLogger
	eventsService eventsService
	projector     *recurrence.Projector
	translator    translator
	fcm           fcmService
	lead          time.Duration
}

type eventsService interface {
	GetEvents(ctx context.Context, filter model.EventsFilter) ([]*model.Event, error)
}

type fcmService interface {
	SendMessageBatch(ctx context.Context, ms []*fcm.Message) error
}

func NewSender(
	logger *zap.SugaredLogger,
	eventsService eventsService,
	projector *recurrence.Projector,
	translator translator,
	fcm fcmService,
	lead time.Duration,
) *Sender {
	return &Sender{
		logger:        logger,
		eventsService: eventsService,
		projector:     projector,
		translator:    translator,
		fcm:           fcm,
		lead:          lead,
	}
}

// Start runs the reminder check at the top of every minute until the
// process shuts down.
func (s *Sender) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(s.projector.Location()))

	if _, err := c.AddFunc("* * * * *", func() {
		from := s.projector.Now().Truncate(time.Minute)
		s.findAndSendNotifications(ctx, from, from.Add(time.Minute))
	}); err != nil {
		return fmt.Errorf("schedule reminders: %w", err)
	}

	c.Start()
	s.logger.Infow("Started reminder sender", "lead", s.lead)

	closer.Bind(func() {
		<-c.Stop().Done()
	})

	return nil
}

type reminder struct {
	event *model.Event
	start time.Time
}

func (s *Sender) findAndSendNotifications(ctx context.Context, from, to time.Time) {
	s.logger.Debugw("sending notifications", "from", from, "to", to)

	events, err := s.eventsService.GetEvents(ctx, model.EventsFilter{Status: model.EventStatusActive})
	if err != nil {
		s.logger.Errorw("failed to get events", "err", err)
		return
	}

	reminders := dueReminders(events, s.lead, from, to, s.projector.Location())
	if len(reminders) == 0 {
		return
	}

	if err := s.fcm.SendMessageBatch(ctx, s.messages(reminders)); err != nil {
		s.logger.Errorw("failed to send notifications", "err", err)
		return
	}

	s.logger.Infow("Sent reminders", "count", len(reminders))
}

// dueReminders picks the events whose reminder instant, start minus lead,
// falls in [from, to). Recurring events are projected from from+lead so the
// occurrence the reminder is for is the one found.
func dueReminders(events []*model.Event, lead time.Duration, from, to time.Time, loc *time.Location) []*reminder {
	var res []*reminder
	for _, e := range events {
		if !e.IsActive || e.StartDateTime == nil {
			continue
		}

		start := recurrence.NextOccurrence(*e.StartDateTime, e.Recurring, from.Add(lead), loc)
		notifyAt := start.Add(-lead)
		if !notifyAt.Before(from) && notifyAt.Before(to) {
			res = append(res, &reminder{event: e, start: start})
		}
	}

	return res
}

func (s *Sender) messages(reminders []*reminder) []*fcm.Message {
	loc := s.projector.Location()

	messages := make([]*fcm.Message, 0, len(reminders)*len(locales))
	for _, r := range reminders {
		end := recurrence.EndDateTime(r.event.StartDateTime, r.event.EndDateTime, r.event.Recurring, r.start, loc)

		for _, locale := range locales {
			when := dateformat.New(dateformat.Language(locale), loc).EventDate(&r.start, end)

			messages = append(messages, &fcm.Message{
				Topic: TopicPrefix + locale,
				Title: s.translator.T(locale, "reminder_title", map[string]any{
					"Title": r.event.Title,
					"Lead":  leadText(s.translator, locale, s.lead),
				}),
				Body: s.translator.T(locale, "reminder_body", map[string]any{
					"When":     when,
					"Location": r.event.Location,
				}),
				Data: map[string]string{
					"event_id": r.event.ID,
					"start":    r.start.UTC().Format(time.RFC3339),
				},
			})
		}
	}

	return messages
}
