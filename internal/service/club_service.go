package service

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"github.com/Khushi2755/academix/internal/dto"
	"github.com/Khushi2755/academix/internal/model"
	"github.com/Khushi2755/academix/internal/repository"
	"github.com/Khushi2755/academix/pkg/apperror"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type ClubService interface {
	List(ctx context.Context) ([]dto.ClubResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ClubResponse, error)
	Search(ctx context.Context, query string) ([]dto.ClubDocument, error)
	Create(ctx context.Context, actor *model.User, input dto.CreateClubInput) (*dto.ClubResponse, error)
	Update(ctx context.Context, actor *model.User, id uuid.UUID, input dto.UpdateClubInput) (*dto.ClubResponse, error)
	Delete(ctx context.Context, actor *model.User, id uuid.UUID) error
	AddMember(ctx context.Context, actor *model.User, clubID uuid.UUID, input dto.AddMemberInput) (*dto.ClubResponse, error)
	RemoveMember(ctx context.Context, actor *model.User, clubID, memberID uuid.UUID) (*dto.ClubResponse, error)
	Enroll(ctx context.Context, actor *model.User, clubID uuid.UUID) (*dto.ClubResponse, error)
	AddEvent(ctx context.Context, actor *model.User, clubID uuid.UUID, input dto.AddEventInput) (*dto.ClubResponse, error)
	DeleteEvent(ctx context.Context, actor *model.User, clubID uuid.UUID, index int) (*dto.ClubResponse, error)
}

type clubService struct {
	repo          repository.ClubRepository
	userRepo      repository.UserRepository
	notifications NotificationService
	search        SearchService
	redisClient   *redis.Client
	createLimit   time.Duration
}

func NewClubService(repo repository.ClubRepository, userRepo repository.UserRepository, notifications NotificationService, search SearchService, redisClient *redis.Client) ClubService {
	createLimit := 5 * time.Second
	if limitStr := os.Getenv("RATE_LIMIT_CLUB"); limitStr != "" {
		if d, err := time.ParseDuration(limitStr); err == nil {
			createLimit = d
		}
	}

	return &clubService{
		repo:          repo,
		userRepo:      userRepo,
		notifications: notifications,
		search:        search,
		redisClient:   redisClient,
		createLimit:   createLimit,
	}
}

func (s *clubService) List(ctx context.Context) ([]dto.ClubResponse, error) {
	clubs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	clubIDs := make([]uuid.UUID, len(clubs))
	for i, club := range clubs {
		clubIDs[i] = club.ID
	}

	membersByClub, err := s.repo.MembersByClubIDs(ctx, clubIDs)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ClubResponse, len(clubs))
	for i, club := range clubs {
		responses[i] = clubToResponse(club, membersByClub[club.ID])
	}

	return responses, nil
}

func (s *clubService) Get(ctx context.Context, id uuid.UUID) (*dto.ClubResponse, error) {
	return s.loadResponse(ctx, id)
}

func (s *clubService) Search(ctx context.Context, query string) ([]dto.ClubDocument, error) {
	if s.search == nil {
		return nil, errors.New("search is not configured")
	}
	return s.search.SearchClubs(query)
}

func (s *clubService) Create(ctx context.Context, actor *model.User, input dto.CreateClubInput) (*dto.ClubResponse, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.InvalidInput("Club name is required")
	}

	allowed, err := CheckAndSetRateLimit(ctx, s.redisClient, actor.ID, "create_club", s.createLimit)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperror.ErrRateLimitExceeded
	}

	if _, err := s.repo.FindByName(ctx, name); err == nil {
		return nil, apperror.Conflict("Club with this name already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	club := &model.Club{
		Name:          name,
		Description:   strings.TrimSpace(input.Description),
		CoordinatorID: actor.ID,
		IsActive:      true,
	}

	if err := s.repo.Create(ctx, club); err != nil {
		return nil, err
	}
	club.Coordinator = *actor

	// Fan-out and indexing are best-effort: creation already succeeded.
	if err := s.notifications.NotifyClubCreated(ctx, club); err != nil {
		log.Printf("Create club notifications error: %v", err)
	}
	s.indexClub(club)

	resp := clubToResponse(club, nil)
	return &resp, nil
}

func (s *clubService) Update(ctx context.Context, actor *model.User, id uuid.UUID, input dto.UpdateClubInput) (*dto.ClubResponse, error) {
	club, err := s.findClub(ctx, id)
	if err != nil {
		return nil, err
	}

	if club.CoordinatorID != actor.ID {
		return nil, apperror.Forbidden("Not authorized to update this club")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name != "" && name != club.Name {
			if _, err := s.repo.FindByName(ctx, name); err == nil {
				return nil, apperror.Conflict("Club with this name already exists")
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			club.Name = name
		}
	}
	if input.Description != nil {
		club.Description = strings.TrimSpace(*input.Description)
	}

	if err := s.repo.Save(ctx, club); err != nil {
		return nil, err
	}
	s.indexClub(club)

	return s.loadResponse(ctx, id)
}

func (s *clubService) Delete(ctx context.Context, actor *model.User, id uuid.UUID) error {
	club, err := s.findClub(ctx, id)
	if err != nil {
		return err
	}

	if club.CoordinatorID != actor.ID {
		return apperror.Forbidden("Not authorized to delete this club")
	}

	// Notifications referencing the club are intentionally kept.
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.search != nil {
		if err := s.search.DeleteClub(id.String()); err != nil {
			log.Printf("Remove club from search index error: %v", err)
		}
	}

	return nil
}

func (s *clubService) AddMember(ctx context.Context, actor *model.User, clubID uuid.UUID, input dto.AddMemberInput) (*dto.ClubResponse, error) {
	club, err := s.findClub(ctx, clubID)
	if err != nil {
		return nil, err
	}

	if club.CoordinatorID != actor.ID {
		return nil, apperror.Forbidden("Not authorized to add members to this club")
	}

	student, err := s.userRepo.FindByStudentID(ctx, strings.TrimSpace(input.StudentID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Student not found")
		}
		return nil, err
	}
	if student.RoleName() != model.RoleStudent {
		return nil, apperror.NotFound("Student not found")
	}

	isMember, err := s.repo.IsMember(ctx, clubID, student.ID)
	if err != nil {
		return nil, err
	}
	if isMember {
		return nil, apperror.Conflict("Student is already a member of this club")
	}

	if err := s.repo.AddMember(ctx, clubID, student.ID); err != nil {
		return nil, err
	}

	return s.loadResponse(ctx, clubID)
}

// RemoveMember is idempotent: removing someone who is not a member leaves
// the club unchanged.
func (s *clubService) RemoveMember(ctx context.Context, actor *model.User, clubID, memberID uuid.UUID) (*dto.ClubResponse, error) {
	club, err := s.findClub(ctx, clubID)
	if err != nil {
		return nil, err
	}

	if club.CoordinatorID != actor.ID {
		return nil, apperror.Forbidden("Not authorized to remove members from this club")
	}

	if err := s.repo.RemoveMember(ctx, clubID, memberID); err != nil {
		return nil, err
	}

	return s.loadResponse(ctx, clubID)
}

func (s *clubService) Enroll(ctx context.Context, actor *model.User, clubID uuid.UUID) (*dto.ClubResponse, error) {
	if _, err := s.findClub(ctx, clubID); err != nil {
		return nil, err
	}

	isMember, err := s.repo.IsMember(ctx, clubID, actor.ID)
	if err != nil {
		return nil, err
	}
	if isMember {
		return nil, apperror.Conflict("You are already a member of this club")
	}

	if err := s.repo.AddMember(ctx, clubID, actor.ID); err != nil {
		return nil, err
	}

	return s.loadResponse(ctx, clubID)
}

func (s *clubService) AddEvent(ctx context.Context, actor *model.User, clubID uuid.UUID, input dto.AddEventInput) (*dto.ClubResponse, error) {
	club, err := s.findClub(ctx, clubID)
	if err != nil {
		return nil, err
	}

	if club.CoordinatorID != actor.ID {
		return nil, apperror.Forbidden("Not authorized to add events to this club")
	}

	date, err := parseEventDate(input.Date)
	if err != nil {
		return nil, apperror.InvalidInput("Valid date is required")
	}

	event := &model.Event{
		ClubID:      clubID,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Date:        date,
		Location:    strings.TrimSpace(input.Location),
	}

	if err := s.repo.AddEvent(ctx, event); err != nil {
		return nil, err
	}

	members, err := s.repo.Members(ctx, clubID)
	if err != nil {
		log.Printf("Event notifications error: %v", err)
	} else {
		memberIDs := make([]uuid.UUID, len(members))
		for i, m := range members {
			memberIDs[i] = m.UserID
		}
		if err := s.notifications.NotifyEventCreated(ctx, club, event, memberIDs); err != nil {
			log.Printf("Event notifications error: %v", err)
		}
	}

	return s.loadResponse(ctx, clubID)
}

// DeleteEvent resolves the zero-based position over the creation-ordered
// event list to the stable event id, then deletes that row.
func (s *clubService) DeleteEvent(ctx context.Context, actor *model.User, clubID uuid.UUID, index int) (*dto.ClubResponse, error) {
	club, err := s.findClub(ctx, clubID)
	if err != nil {
		return nil, err
	}

	if club.CoordinatorID != actor.ID {
		return nil, apperror.Forbidden("Not authorized to delete events from this club")
	}

	if index < 0 || index >= len(club.Events) {
		return nil, apperror.InvalidIndex("Invalid event index")
	}

	if err := s.repo.DeleteEvent(ctx, club.Events[index].ID); err != nil {
		return nil, err
	}

	return s.loadResponse(ctx, clubID)
}

func (s *clubService) findClub(ctx context.Context, id uuid.UUID) (*model.Club, error) {
	club, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Club not found")
		}
		return nil, err
	}
	return club, nil
}

func (s *clubService) loadResponse(ctx context.Context, id uuid.UUID) (*dto.ClubResponse, error) {
	club, err := s.findClub(ctx, id)
	if err != nil {
		return nil, err
	}

	members, err := s.repo.Members(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := clubToResponse(club, members)
	return &resp, nil
}

func (s *clubService) indexClub(club *model.Club) {
	if s.search == nil {
		return
	}
	if err := s.search.IndexClub(club); err != nil {
		log.Printf("Index club error: %v", err)
	}
}

var eventDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseEventDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	var lastErr error
	for _, layout := range eventDateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func clubToResponse(club *model.Club, members []model.ClubMember) dto.ClubResponse {
	memberInfos := make([]dto.MemberInfo, len(members))
	for i, m := range members {
		memberInfos[i] = dto.MemberInfo{
			ID:        m.User.ID,
			Name:      m.User.Name,
			Email:     m.User.Email,
			StudentID: m.User.StudentID,
		}
	}

	events := make([]dto.EventResponse, len(club.Events))
	for i, e := range club.Events {
		attendees := make([]dto.MemberInfo, len(e.Attendees))
		for j, a := range e.Attendees {
			attendees[j] = dto.MemberInfo{
				ID:        a.ID,
				Name:      a.Name,
				Email:     a.Email,
				StudentID: a.StudentID,
			}
		}
		events[i] = dto.EventResponse{
			ID:          e.ID,
			Title:       e.Title,
			Description: e.Description,
			Date:        e.Date,
			Location:    e.Location,
			Attendees:   attendees,
		}
	}

	return dto.ClubResponse{
		ID:          club.ID,
		Name:        club.Name,
		Description: club.Description,
		IsActive:    club.IsActive,
		Coordinator: dto.CoordinatorInfo{
			ID:            club.Coordinator.ID,
			Name:          club.Coordinator.Name,
			Email:         club.Coordinator.Email,
			CoordinatorID: club.Coordinator.CoordinatorID,
		},
		Members:   memberInfos,
		Events:    events,
		CreatedAt: club.CreatedAt,
	}
}
