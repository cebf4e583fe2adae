package services

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/sahilchouksey/studyflow/model"
	"github.com/sahilchouksey/studyflow/repository"
	"github.com/sahilchouksey/studyflow/services/mailer"
	"github.com/sahilchouksey/studyflow/utils"
)

const (
	// DefaultReminderWindow is the trailing band scanned for due items
	DefaultReminderWindow = 10 * time.Minute

	reminderSubject    = "⏰ Task Reminder - StudyFlow"
	reminderTimeLayout = "Jan 2, 2006 3:04 PM"
)

// ReminderResult summarises one dispatch run
type ReminderResult struct {
	Message    string `json:"message"`
	Count      int    `json:"count"`
	Recipients int    `json:"recipients"`
	Failed     int    `json:"failed"`
}

// ReminderService e-mails users about tasks and events that fell due within
// the trailing window and marks them so they are never sent twice.
type ReminderService struct {
	clock
	tasks  repository.TaskRepository
	events repository.EventRepository
	users  repository.UserRepository
	mailer mailer.Mailer
	window time.Duration
	logger *utils.Logger
}

// NewReminderService creates a new reminder service. A non-positive window uses DefaultReminderWindow.
func NewReminderService(repos repository.Repositories, m mailer.Mailer, window time.Duration, loc *time.Location) *ReminderService {
	if window <= 0 {
		window = DefaultReminderWindow
	}
	return &ReminderService{
		clock:  newClock(loc),
		tasks:  repos.Tasks,
		events: repos.Events,
		users:  repos.Users,
		mailer: m,
		window: window,
		logger: utils.NewLogger("[REMINDER] "),
	}
}

// DispatchForUser sends the caller's own due reminders
func (s *ReminderService) DispatchForUser(ctx context.Context, userID string) (*ReminderResult, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, notFound("user", err)
	}
	if strings.TrimSpace(user.Email) == "" {
		return nil, invalid("User email not found")
	}
	return s.dispatch(ctx, userID)
}

// DispatchAll sends due reminders for every user
func (s *ReminderService) DispatchAll(ctx context.Context) (*ReminderResult, error) {
	return s.dispatch(ctx, "")
}

type reminderItem struct {
	title string
	due   time.Time
}

// reminderBatch is everything due for one recipient
type reminderBatch struct {
	userID   string
	taskIDs  []string
	eventIDs []string
	items    []reminderItem
}

func (b *reminderBatch) size() int {
	return len(b.taskIDs) + len(b.eventIDs)
}

func (s *ReminderService) dispatch(ctx context.Context, userID string) (*ReminderResult, error) {
	now := s.now()
	from := now.Add(-s.window)

	tasks, err := s.tasks.DueForReminder(ctx, userID, from, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load due tasks: %w", err)
	}
	events, err := s.events.DueForReminder(ctx, userID, from, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load due events: %w", err)
	}

	batches := groupByUser(tasks, events)
	if len(batches) == 0 {
		return &ReminderResult{Message: "No new reminders"}, nil
	}

	ids := make([]string, 0, len(batches))
	for _, b := range batches {
		ids = append(ids, b.userID)
	}
	users, err := s.users.GetMany(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load reminder recipients: %w", err)
	}

	result := &ReminderResult{}
	for _, batch := range batches {
		user, ok := users[batch.userID]
		if !ok || strings.TrimSpace(user.Email) == "" {
			s.logger.Info("skipping reminders without a recipient address", "user_id="+batch.userID)
			continue
		}

		if err := s.mailer.Send(ctx, s.buildMessage(user, batch.items)); err != nil {
			s.logger.Error("failed to send reminder", err, map[string]interface{}{"user_id": user.ID})
			result.Failed++
			continue
		}

		sentAt := s.now()
		if err := s.tasks.MarkReminded(ctx, batch.taskIDs, sentAt); err != nil {
			s.logger.Error("failed to mark tasks reminded", err, map[string]interface{}{"user_id": user.ID})
			result.Failed++
			continue
		}
		if err := s.events.MarkReminded(ctx, batch.eventIDs, sentAt); err != nil {
			s.logger.Error("failed to mark events reminded", err, map[string]interface{}{"user_id": user.ID})
			result.Failed++
			continue
		}

		result.Recipients++
		result.Count += batch.size()
	}

	switch {
	case result.Recipients > 0:
		result.Message = "Reminders sent successfully"
	case result.Failed > 0:
		result.Message = "Failed to send reminders"
	default:
		result.Message = "No new reminders"
	}
	return result, nil
}

// groupByUser batches items per owner, keeping the order owners first appear in
func groupByUser(tasks []model.Task, events []model.Event) []*reminderBatch {
	var batches []*reminderBatch
	byUser := make(map[string]*reminderBatch)
	batchFor := func(userID string) *reminderBatch {
		b, ok := byUser[userID]
		if !ok {
			b = &reminderBatch{userID: userID}
			byUser[userID] = b
			batches = append(batches, b)
		}
		return b
	}

	for _, t := range tasks {
		if t.DueDate == nil {
			continue
		}
		b := batchFor(t.UserID)
		b.taskIDs = append(b.taskIDs, t.ID)
		b.items = append(b.items, reminderItem{title: t.Title, due: *t.DueDate})
	}
	for _, e := range events {
		b := batchFor(e.UserID)
		b.eventIDs = append(b.eventIDs, e.ID)
		b.items = append(b.items, reminderItem{title: e.Title, due: e.DateTime})
	}
	return batches
}

func (s *ReminderService) buildMessage(user model.User, items []reminderItem) mailer.Message {
	name := strings.TrimSpace(user.Name)
	if name == "" {
		name = "Student"
	}

	lines := make([]string, 0, len(items))
	htmlItems := new(strings.Builder)
	for _, item := range items {
		title := item.title
		if strings.TrimSpace(title) == "" {
			title = "Untitled"
		}
		due := item.due.In(s.loc).Format(reminderTimeLayout)
		lines = append(lines, fmt.Sprintf("• %s (Due: %s)", title, due))
		fmt.Fprintf(htmlItems, "<li><b>%s</b> (Due: %s)</li>", html.EscapeString(title), html.EscapeString(due))
	}

	text := fmt.Sprintf("Hello %s,\n\nThe following tasks were due recently:\n\n%s\n\nStay on track with StudyFlow!\n\n- StudyFlow",
		name, strings.Join(lines, "\n"))
	body := fmt.Sprintf("<p>Hello %s,</p><p>The following tasks were due recently:</p><ul>%s</ul><p>Stay on track with StudyFlow!</p><p>- StudyFlow</p>",
		html.EscapeString(name), htmlItems.String())

	return mailer.Message{
		To:      user.Email,
		ToName:  user.Name,
		Subject: reminderSubject,
		Text:    text,
		HTML:    body,
	}
}
