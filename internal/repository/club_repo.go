package repository

import (
	"context"

	"github.com/Khushi2755/academix/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClubRepository interface {
	Create(ctx context.Context, club *model.Club) error
	Save(ctx context.Context, club *model.Club) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindAll(ctx context.Context) ([]*model.Club, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Club, error)
	FindByName(ctx context.Context, name string) (*model.Club, error)

	Members(ctx context.Context, clubID uuid.UUID) ([]model.ClubMember, error)
	MembersByClubIDs(ctx context.Context, clubIDs []uuid.UUID) (map[uuid.UUID][]model.ClubMember, error)
	IsMember(ctx context.Context, clubID, userID uuid.UUID) (bool, error)
	AddMember(ctx context.Context, clubID, userID uuid.UUID) error
	RemoveMember(ctx context.Context, clubID, userID uuid.UUID) error

	AddEvent(ctx context.Context, event *model.Event) error
	DeleteEvent(ctx context.Context, eventID uuid.UUID) error
}

type clubRepository struct {
	db *gorm.DB
}

func NewClubRepository(db *gorm.DB) ClubRepository {
	return &clubRepository{db: db}
}

func orderedEvents(db *gorm.DB) *gorm.DB {
	return db.Order("events.created_at ASC")
}

func (r *clubRepository) Create(ctx context.Context, club *model.Club) error {
	return r.db.WithContext(ctx).Create(club).Error
}

func (r *clubRepository) Save(ctx context.Context, club *model.Club) error {
	return r.db.WithContext(ctx).Save(club).Error
}

func (r *clubRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var eventIDs []uuid.UUID
		if err := tx.Model(&model.Event{}).
			Where("club_id = ?", id).
			Pluck("id", &eventIDs).Error; err != nil {
			return err
		}

		if len(eventIDs) > 0 {
			if err := tx.Exec("DELETE FROM event_attendees WHERE event_id IN ?", eventIDs).Error; err != nil {
				return err
			}
			if err := tx.Where("club_id = ?", id).Delete(&model.Event{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("club_id = ?", id).Delete(&model.ClubMember{}).Error; err != nil {
			return err
		}

		return tx.Delete(&model.Club{}, "id = ?", id).Error
	})
}

func (r *clubRepository) FindAll(ctx context.Context) ([]*model.Club, error) {
	var clubs []*model.Club
	if err := r.db.WithContext(ctx).
		Preload("Coordinator").
		Preload("Events", orderedEvents).
		Preload("Events.Attendees").
		Order("created_at DESC").
		Find(&clubs).Error; err != nil {
		return nil, err
	}

	return clubs, nil
}

func (r *clubRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Club, error) {
	var club model.Club
	if err := r.db.WithContext(ctx).
		Preload("Coordinator").
		Preload("Events", orderedEvents).
		Preload("Events.Attendees").
		Where("id = ?", id).
		First(&club).Error; err != nil {
		return nil, err
	}

	return &club, nil
}

func (r *clubRepository) FindByName(ctx context.Context, name string) (*model.Club, error) {
	var club model.Club
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&club).Error; err != nil {
		return nil, err
	}

	return &club, nil
}

func (r *clubRepository) Members(ctx context.Context, clubID uuid.UUID) ([]model.ClubMember, error) {
	var members []model.ClubMember
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("club_id = ?", clubID).
		Order("created_at ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}

	return members, nil
}

func (r *clubRepository) MembersByClubIDs(ctx context.Context, clubIDs []uuid.UUID) (map[uuid.UUID][]model.ClubMember, error) {
	grouped := make(map[uuid.UUID][]model.ClubMember, len(clubIDs))
	if len(clubIDs) == 0 {
		return grouped, nil
	}

	var members []model.ClubMember
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("club_id IN ?", clubIDs).
		Order("created_at ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}

	for _, m := range members {
		grouped[m.ClubID] = append(grouped[m.ClubID], m)
	}

	return grouped, nil
}

func (r *clubRepository) IsMember(ctx context.Context, clubID, userID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.ClubMember{}).
		Where("club_id = ? AND user_id = ?", clubID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *clubRepository) AddMember(ctx context.Context, clubID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Create(&model.ClubMember{ClubID: clubID, UserID: userID}).Error
}

func (r *clubRepository) RemoveMember(ctx context.Context, clubID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("club_id = ? AND user_id = ?", clubID, userID).
		Delete(&model.ClubMember{}).Error
}

func (r *clubRepository) AddEvent(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *clubRepository) DeleteEvent(ctx context.Context, eventID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM event_attendees WHERE event_id = ?", eventID).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Event{}, "id = ?", eventID).Error
	})
}
