package bootstrap

import (
	"github.com/Khushi2755/academix/internal/model"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Role{},
		&model.User{},
		&model.Club{},
		&model.ClubMember{},
		&model.Event{},
		&model.Notification{},
		&model.Course{},
		&model.CourseStudent{},
	)
}

// SeedRoles creates the closed role set if missing. Registration also
// creates roles lazily, so this only pre-warms a fresh database.
func SeedRoles(db *gorm.DB) error {
	defaultRoles := []model.Role{
		{Name: model.RoleStudent, Description: "Enrolled student"},
		{Name: model.RoleTeacher, Description: "Teaching staff"},
		{Name: model.RoleCoordinator, Description: "Club coordinator"},
	}

	for _, role := range defaultRoles {
		var count int64
		if err := db.Model(&model.Role{}).
			Where("name = ?", role.Name).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			if err := db.Create(&role).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
