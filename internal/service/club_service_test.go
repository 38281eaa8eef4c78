package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Khushi2755/academix/internal/dto"
	"github.com/Khushi2755/academix/internal/model"
	"github.com/Khushi2755/academix/internal/repository"
	"github.com/Khushi2755/academix/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func newTestClubService(t *testing.T) (ClubService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	clubRepo := repository.NewClubRepository(db)
	userRepo := repository.NewUserRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	notifications := NewNotificationService(notificationRepo, userRepo, nil)
	return NewClubService(clubRepo, userRepo, notifications, nil, nil), db
}

func createClub(t *testing.T, svc ClubService, owner *model.User, name string) *dto.ClubResponse {
	t.Helper()
	club, err := svc.Create(context.Background(), owner, dto.CreateClubInput{
		Name:        name,
		Description: "A club for " + name,
	})
	if err != nil {
		t.Fatalf("create club %s: %v", name, err)
	}
	return club
}

func countNotifications(t *testing.T, db *gorm.DB, userID uuid.UUID, kind string) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&model.Notification{}).
		Where("user_id = ? AND type = ?", userID, kind).
		Count(&count).Error; err != nil {
		t.Fatalf("count notifications: %v", err)
	}
	return count
}

func TestCreateClub(t *testing.T) {
	svc, db := newTestClubService(t)
	coordinator := createUser(t, db, "Ravi", "ravi@example.edu", model.RoleCoordinator, nil)
	club := createClub(t, svc, coordinator, "Chess Club")

	if club.Name != "Chess Club" {
		t.Fatalf("name = %q", club.Name)
	}
	if !club.IsActive {
		t.Fatal("new clubs start active")
	}
	if club.Coordinator.ID != coordinator.ID {
		t.Fatal("creator should be the coordinator")
	}
	if len(club.Members) != 0 || len(club.Events) != 0 {
		t.Fatal("new clubs start with no members and no events")
	}
}

func TestCreateClubDuplicateName(t *testing.T) {
	svc, db := newTestClubService(t)
	owner := createUser(t, db, "Ravi", "ravi@example.edu", model.RoleCoordinator, nil)
	other := createUser(t, db, "Mina", "mina@example.edu", model.RoleCoordinator, nil)

	createClub(t, svc, owner, "Chess Club")
	_, err := svc.Create(context.Background(), other, dto.CreateClubInput{Name: "Chess Club"})
	if err == nil {
		t.Fatal("expected duplicate name to fail")
	}
	if err.Error() != "Club with this name already exists" {
		t.Fatalf("message = %q", err.Error())
	}
	if got := apperror.MapErrorToStatus(err); got != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", got)
	}
}

func TestCreateClubBlankName(t *testing.T) {
	svc, db := newTestClubService(t)
	owner := createUser(t, db, "Ravi", "ravi@example.edu", model.RoleCoordinator, nil)

	_, err := svc.Create(context.Background(), owner, dto.CreateClubInput{Name: "   "})
	if !errors.Is(err, apperror.ErrInvalidInput) {
		t.Fatalf("error = %v, want invalid input", err)
	}
}

func TestUpdateClubOwnershipEnforced(t *testing.T) {
	svc, db := newTestClubService(t)
	owner := createUser(t, db, "Ravi", "ravi@example.edu", model.RoleCoordinator, nil)
	other := createUser(t, db, "Mina", "mina@example.edu", model.RoleCoordinator, nil)

	club := createClub(t, svc, owner, "Chess Club")

	_, err := svc.Update(context.Background(), other, club.ID, dto.UpdateClubInput{Name: strp("Hijacked")})
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("error = %v, want forbidden", err)
	}
	if got := apperror.MapErrorToStatus(err); got != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", got)
	}

	// The owner can update.
	updated, err := svc.Update(context.Background(), owner, club.ID, dto.UpdateClubInput{
		Description: strp("Weekly blitz tournaments"),
	})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Description != "Weekly blitz tournaments" {
		t.Fatalf("description = %q", updated.Description)
	}
	if updated.Name != "Chess Club" {
		t.Fatalf("name changed unexpectedly to %q", updated.Name)
	}
}

func TestDeleteClubOwnershipEnforced(t *testing.T) {
	svc, db := newTestClubService(t)
	owner := createUser(t, db, "Ravi", "ravi@example.edu", model.RoleCoordinator, nil)
	other := createUser(t, db, "Mina", "mina@example.edu", model.RoleCoordinator, nil)

	club := createClub(t, svc, owner, "Chess Club")

	if err := svc.Delete(context.Background(), other, club.ID); !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("error = %v, want forbidden", err)
	}

	if err := svc.Delete(context.Background(), owner, club.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), club.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("error after delete = %v, want not found", err)
	}
}

func TestEnroll(t *testing.T) {
	svc, db := newTestClubService(t)
	owner := createUser(t, db, "Ravi", "ravi@example.edu", model.RoleCoordinator, nil)
	student := createUser(t, db, "Aisha", "aisha@example.edu", model.RoleStudent, strp("S100"))

	club := createClub(t, svc, owner, "Chess Club")

	enrolled, err := svc.Enroll(context.Background(), student, club.ID)
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if len(enrolled.Members) != 1 {
		t.Fatalf("members = %d, want 1", len(enrolled.Members))
	}
	if enrolled.Members[0].ID != student.ID {
		t.Fatal("enrolled member should be the actor")
	}

	_, err = svc.Enroll(context.Background(), student, club.ID)
	if err == nil {
		t.Fatal("expected second enroll to fail")
	}
	if err.Error() != "You are already a member of this club" {
		t.Fatalf("message = %q", err.Error())
	}

	// Failed enroll does not grow membership.
	after, err := svc.Get(context.Background(), club.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(after.Members) != 1 {
		t.Fatalf("members = %d after duplicate enroll, want 1", len(after.Members))
	}
}

func TestEnrollUnknownClub(t *testing.T) {
	svc, db := newTestClubService(t)
	student := createUser(t, db, "Aisha", "aisha@example.edu", model.RoleStudent, strp("S100"))

	_, err := svc.Enroll(context.Background(), student, uuid.New())
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("error = %v, want not found", err)
	}
	if err.Error() != "Club not found" {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestAddMember(t *testing.T) {
	svc, db := newTestClubService(t)
	owner := createUser(t, db, "Ravi", "ravi@example.edu", model.RoleCoordinator, nil)
	createUser(t, db, "Aisha", "aisha@example.edu", model.RoleStudent, strp("S100"))

	club := createClub(t, svc, owner, "Chess Club")

	updated, err := svc.AddMember(context.Background(), owner, club.ID, dto.AddMemberInput{StudentID: "S100"})
	if err != nil {
		t.Fatalf("add member: %v", err)
	}
	if len(updated.Members) != 1 {
		t.Fatalf("members = %d, want 1", len(updated.Members))
	}

	_, err = svc.AddMember(context.Background(), owner, club.ID, dto.AddMemberInput{StudentID: "S100"})
	if err == nil {
		t.Fatal("expected duplicate add to fail")
	}
	if err.Error() != "Student is already a member of this club" {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestAddMemberUnknownStudent(t *testing.T) {
	svc, db := newTestClubService(t)
	owner := createUser(t, db, "Ravi", "ravi@example.edu", model.RoleCoordinator, nil)
	club := createClub(t, svc, owner, "Chess Club")

	_, err := svc.AddMember(context.Background(), owner, club.ID, dto.AddMemberInput{StudentID: "S404"})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("error = %v, want not found", err)
	}
	if err.Error() != "Student not found" {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestAddMemberRequiresOwnership(t *testing.T) {
	svc, db := newTestClubService(t)
	owner := createUser(t, db, "Ravi", "ravi@example.edu", model.RoleCoordinator, nil)
	other := createUser(t, db, "Mina", "mina@example.edu", model.RoleCoordinator, nil)
	createUser(t, db, "Aisha", "aisha@example.edu", model.RoleStudent, strp("S100"))

	club := createClub(t, svc, owner, "Chess Club")

	_, err := svc.AddMember(context.Background(), other, club.ID, dto.AddMemberInput{StudentID: "S100"})
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("error = %v, want forbidden", err)
	}
}

func TestRemoveMemberIdempotent(t *testing.T) {
	svc, db := newTestClubService(t)
	owner := createUser(t, db, "Ravi", "ravi@example.edu", model.RoleCoordinator, nil)
	student := createUser(t, db, "Aisha", "aisha@example.edu", model.RoleStudent, strp("S100"))

	club := createClub(t, svc, owner, "Chess Club")
	if _, err := svc.Enroll(context.Background(), student, club.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	updated, err := svc.RemoveMember(context.Background(), owner, club.ID, student.ID)
	if err != nil {
		t.Fatalf("remove member: %v", err)
	}
	if len(updated.Members) != 0 {
		t.Fatalf("members = %d, want 0", len(updated.Members))
	}

	// Removing someone who is not a member leaves the club unchanged.
	again, err := svc.RemoveMember(context.Background(), owner, club.ID, student.ID)
	if err != nil {
		t.Fatalf("second remove: %v", err)
	}
	if len(again.Members) != 0 {
		t.Fatalf("members = %d, want 0", len(again.Members))
	}
}

func TestAddAndDeleteEvents(t *testing.T) {
	svc, db := newTestClubService(t)
	owner := createUser(t, db, "Ravi", "ravi@example.edu", model.RoleCoordinator, nil)
	club := createClub(t, svc, owner, "Chess Club")

	for i, title := range []string{"Opening Night", "Blitz Tournament", "Endgame Workshop"} {
		_, err := svc.AddEvent(context.Background(), owner, club.ID, dto.AddEventInput{
			Title: title,
			Date:  fmt.Sprintf("2026-09-%02dT18:00:00Z", i+1),
		})
		if err != nil {
			t.Fatalf("add event %s: %v", title, err)
		}
	}

	// Delete the middle event; the later one shifts down one position.
	updated, err := svc.DeleteEvent(context.Background(), owner, club.ID, 1)
	if err != nil {
		t.Fatalf("delete event: %v", err)
	}
	if len(updated.Events) != 2 {
		t.Fatalf("events = %d, want 2", len(updated.Events))
	}
	if updated.Events[0].Title != "Opening Night" || updated.Events[1].Title != "Endgame Workshop" {
		t.Fatalf("remaining events = %q, %q", updated.Events[0].Title, updated.Events[1].Title)
	}
}

func TestDeleteEventIndexOutOfRange(t *testing.T) {
	svc, db := newTestClubService(t)
	owner := createUser(t, db, "Ravi", "ravi@example.edu", model.RoleCoordinator, nil)
	club := createClub(t, svc, owner, "Chess Club")

	if _, err := svc.AddEvent(context.Background(), owner, club.ID, dto.AddEventInput{
		Title: "Opening Night",
		Date:  "2026-09-01",
	}); err != nil {
		t.Fatalf("add event: %v", err)
	}

	for _, index := range []int{-1, 1, 5} {
		_, err := svc.DeleteEvent(context.Background(), owner, club.ID, index)
		if !errors.Is(err, apperror.ErrInvalidIndex) {
			t.Fatalf("index %d: error = %v, want invalid index", index, err)
		}
		if err.Error() != "Invalid event index" {
			t.Fatalf("index %d: message = %q", index, err.Error())
		}
	}

	// Nothing was deleted.
	after, err := svc.Get(context.Background(), club.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(after.Events) != 1 {
		t.Fatalf("events = %d, want 1", len(after.Events))
	}
}

func TestAddEventRejectsBadDate(t *testing.T) {
	svc, db := newTestClubService(t)
	owner := createUser(t, db, "Ravi", "ravi@example.edu", model.RoleCoordinator, nil)
	club := createClub(t, svc, owner, "Chess Club")

	_, err := svc.AddEvent(context.Background(), owner, club.ID, dto.AddEventInput{
		Title: "Opening Night",
		Date:  "next tuesday",
	})
	if !errors.Is(err, apperror.ErrInvalidInput) {
		t.Fatalf("error = %v, want invalid input", err)
	}
	if err.Error() != "Valid date is required" {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestCreateClubNotifiesEveryStudent(t *testing.T) {
	svc, db := newTestClubService(t)
	owner := createUser(t, db, "Ravi", "ravi@example.edu", model.RoleCoordinator, nil)
	teacher := createUser(t, db, "Prof", "prof@example.edu", model.RoleTeacher, nil)

	students := make([]*model.User, 3)
	for i := range students {
		students[i] = createUser(t, db,
			fmt.Sprintf("Student %d", i),
			fmt.Sprintf("student%d@example.edu", i),
			model.RoleStudent,
			strp(fmt.Sprintf("S%03d", i)))
	}

	createClub(t, svc, owner, "Chess Club")

	for _, student := range students {
		if got := countNotifications(t, db, student.ID, model.NotificationNewClub); got != 1 {
			t.Fatalf("student %s has %d new_club notifications, want 1", student.Email, got)
		}
	}
	// Teachers and the creator get nothing.
	if got := countNotifications(t, db, teacher.ID, model.NotificationNewClub); got != 0 {
		t.Fatalf("teacher has %d new_club notifications, want 0", got)
	}
	if got := countNotifications(t, db, owner.ID, model.NotificationNewClub); got != 0 {
		t.Fatalf("owner has %d new_club notifications, want 0", got)
	}
}

func TestCreateClubWithNoStudents(t *testing.T) {
	svc, db := newTestClubService(t)
	owner := createUser(t, db, "Ravi", "ravi@example.edu", model.RoleCoordinator, nil)

	createClub(t, svc, owner, "Chess Club")

	var count int64
	if err := db.Model(&model.Notification{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("notifications = %d, want 0", count)
	}
}

func TestAddEventNotifiesOnlyMembers(t *testing.T) {
	svc, db := newTestClubService(t)
	owner := createUser(t, db, "Ravi", "ravi@example.edu", model.RoleCoordinator, nil)
	member := createUser(t, db, "Aisha", "aisha@example.edu", model.RoleStudent, strp("S100"))
	outsider := createUser(t, db, "Omar", "omar@example.edu", model.RoleStudent, strp("S200"))

	club := createClub(t, svc, owner, "Chess Club")
	if _, err := svc.Enroll(context.Background(), member, club.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	if _, err := svc.AddEvent(context.Background(), owner, club.ID, dto.AddEventInput{
		Title:    "Blitz Tournament",
		Date:     "2026-09-12T18:00:00Z",
		Location: "Hall B",
	}); err != nil {
		t.Fatalf("add event: %v", err)
	}

	if got := countNotifications(t, db, member.ID, model.NotificationNewEvent); got != 1 {
		t.Fatalf("member has %d new_event notifications, want 1", got)
	}
	if got := countNotifications(t, db, outsider.ID, model.NotificationNewEvent); got != 0 {
		t.Fatalf("outsider has %d new_event notifications, want 0", got)
	}

	var n model.Notification
	if err := db.Where("user_id = ? AND type = ?", member.ID, model.NotificationNewEvent).First(&n).Error; err != nil {
		t.Fatalf("load notification: %v", err)
	}
	if n.ClubID == nil || *n.ClubID != club.ID {
		t.Fatal("notification should reference the club")
	}
	if n.EventTitle == nil || *n.EventTitle != "Blitz Tournament" {
		t.Fatalf("event title = %v", n.EventTitle)
	}
}
