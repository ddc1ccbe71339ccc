package models

import "gorm.io/gorm"

// Lesson positions are unique per course across all rows, deleted ones
// included; freed positions are never reassigned.
type Lesson struct {
	gorm.Model
	CourseID  uint   `gorm:"not null;uniqueIndex:idx_course_position" json:"course_id"`
	Title     string `gorm:"size:200;not null" json:"title"`
	Position  int    `gorm:"not null;uniqueIndex:idx_course_position" json:"position"`
	IsDeleted bool   `gorm:"default:false" json:"is_deleted"`
}
