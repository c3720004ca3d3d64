package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&Scout{},
		&UserRole{},
		&ScoutHistory{},
		&Attendance{},
		&AttendanceScout{},
		&Badge{},
		&ScoutBadge{},
		&Notice{},
	)
}
