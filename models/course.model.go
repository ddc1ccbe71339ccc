package models

import (
	"strings"

	"gorm.io/gorm"
)

// CourseStatus is persisted as its string form to keep the wire and
// storage representations identical.
type CourseStatus string

const (
	CourseStatusDraft     CourseStatus = "Draft"
	CourseStatusPublished CourseStatus = "Published"
)

// ParseCourseStatus matches the exact enum names. Unknown strings return
// ok=false so callers can keep the previous status.
func ParseCourseStatus(s string) (CourseStatus, bool) {
	switch CourseStatus(s) {
	case CourseStatusDraft, CourseStatusPublished:
		return CourseStatus(s), true
	}
	return "", false
}

// ParseCourseStatusFold is the case-insensitive variant used by search
// query parsing.
func ParseCourseStatusFold(s string) (CourseStatus, bool) {
	switch strings.ToLower(s) {
	case "draft":
		return CourseStatusDraft, true
	case "published":
		return CourseStatusPublished, true
	}
	return "", false
}

type Course struct {
	gorm.Model
	Title     string       `gorm:"size:200;not null" json:"title"`
	Status    CourseStatus `gorm:"size:20;default:'Draft'" json:"status"`
	IsDeleted bool         `gorm:"default:false" json:"is_deleted"`
}
