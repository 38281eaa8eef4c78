package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Khushi2755/academix/internal/model"
	"github.com/Khushi2755/academix/internal/repository"
	"github.com/Khushi2755/academix/pkg/apperror"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// listLimit caps the notification feed at the newest entries.
const listLimit = 50

type NotificationService interface {
	// NotifyClubCreated fans out one new_club notification to every Student.
	NotifyClubCreated(ctx context.Context, club *model.Club) error
	// NotifyEventCreated fans out one new_event notification to every
	// current member of the club.
	NotifyEventCreated(ctx context.Context, club *model.Club, event *model.Event, memberIDs []uuid.UUID) error

	List(ctx context.Context, userID uuid.UUID) ([]model.Notification, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) (*model.Notification, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
}

type notificationService struct {
	repo        repository.NotificationRepository
	userRepo    repository.UserRepository
	redisClient *redis.Client
}

func NewNotificationService(repo repository.NotificationRepository, userRepo repository.UserRepository, redisClient *redis.Client) NotificationService {
	return &notificationService{
		repo:        repo,
		userRepo:    userRepo,
		redisClient: redisClient,
	}
}

func (s *notificationService) NotifyClubCreated(ctx context.Context, club *model.Club) error {
	role, err := s.userRepo.FindRoleByName(ctx, model.RoleStudent)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No Student role yet means nobody to notify.
			return nil
		}
		return err
	}

	students, err := s.userRepo.FindByRole(ctx, role.ID)
	if err != nil {
		return err
	}

	clubID := club.ID
	notifications := make([]model.Notification, 0, len(students))
	for _, student := range students {
		notifications = append(notifications, model.Notification{
			UserID:  student.ID,
			Type:    model.NotificationNewClub,
			Title:   "New club added",
			Message: fmt.Sprintf("%q is now available. Enroll from your dashboard to join.", club.Name),
			ClubID:  &clubID,
		})
	}

	if err := s.repo.CreateBatch(ctx, notifications); err != nil {
		return err
	}

	s.publish(ctx, notifications)
	return nil
}

func (s *notificationService) NotifyEventCreated(ctx context.Context, club *model.Club, event *model.Event, memberIDs []uuid.UUID) error {
	message := fmt.Sprintf("%s – %s", event.Title, event.Date.Format("2006-01-02 15:04"))
	if event.Location != "" {
		message += " at " + event.Location
	}

	clubID := club.ID
	eventTitle := event.Title
	eventDate := event.Date
	notifications := make([]model.Notification, 0, len(memberIDs))
	for _, memberID := range memberIDs {
		notifications = append(notifications, model.Notification{
			UserID:     memberID,
			Type:       model.NotificationNewEvent,
			Title:      fmt.Sprintf("New event in %s", club.Name),
			Message:    message,
			ClubID:     &clubID,
			EventTitle: &eventTitle,
			EventDate:  &eventDate,
		})
	}

	if err := s.repo.CreateBatch(ctx, notifications); err != nil {
		return err
	}

	s.publish(ctx, notifications)
	return nil
}

// publish pushes fresh notifications over Redis pub/sub for the WebSocket
// bridge. Skipped entirely when Redis is not configured.
func (s *notificationService) publish(ctx context.Context, notifications []model.Notification) {
	if s.redisClient == nil {
		return
	}

	for i := range notifications {
		payload, err := json.Marshal(&notifications[i])
		if err != nil {
			continue
		}
		channel := NotificationChannel(notifications[i].UserID.String())
		s.redisClient.Publish(ctx, channel, payload)
	}
}

// NotificationChannel is the Redis pub/sub channel carrying a user's
// notification stream.
func NotificationChannel(userID string) string {
	return "user_notifications:" + userID
}

func (s *notificationService) List(ctx context.Context, userID uuid.UUID) ([]model.Notification, error) {
	return s.repo.FindByUser(ctx, userID, listLimit)
}

func (s *notificationService) MarkRead(ctx context.Context, userID, id uuid.UUID) (*model.Notification, error) {
	notification, err := s.repo.MarkRead(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Notification not found")
		}
		return nil, err
	}
	return notification, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllRead(ctx, userID)
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}
