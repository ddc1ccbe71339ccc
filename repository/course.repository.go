package repository

import (
	"cursos/models"
	"strings"
	"time"

	"gorm.io/gorm"
)

// CourseRepository exposes live-row course access; soft-deleted rows are
// invisible to every method.
type CourseRepository interface {
	GetByID(id uint) (*models.Course, error)
	GetAll() ([]models.Course, error)
	GetPublished() ([]models.Course, error)
	Search(query string, status *models.CourseStatus, page, pageSize int) ([]models.Course, int64, error)
	Create(course *models.Course) error
	Update(course *models.Course) error
	SoftDelete(id uint) error
}

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) GetByID(id uint) (*models.Course, error) {
	var course models.Course
	err := r.db.Where("id = ? AND is_deleted = ?", id, false).First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) GetAll() ([]models.Course, error) {
	var courses []models.Course
	err := r.db.Where("is_deleted = ?", false).
		Order("created_at desc").
		Find(&courses).Error
	return courses, err
}

func (r *courseRepository) GetPublished() ([]models.Course, error) {
	var courses []models.Course
	err := r.db.Where("is_deleted = ? AND status = ?", false, models.CourseStatusPublished).
		Order("created_at desc").
		Find(&courses).Error
	return courses, err
}

// Search filters before counting; totalCount reflects the filtered set.
// Page and pageSize arrive already sanitized by the route validator.
func (r *courseRepository) Search(query string, status *models.CourseStatus, page, pageSize int) ([]models.Course, int64, error) {
	db := r.db.Model(&models.Course{}).Where("is_deleted = ?", false)

	if trimmed := strings.TrimSpace(query); trimmed != "" {
		db = db.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(trimmed)+"%")
	}

	if status != nil {
		db = db.Where("status = ?", *status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var courses []models.Course
	err := db.Order("created_at desc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&courses).Error
	if err != nil {
		return nil, 0, err
	}

	return courses, total, nil
}

func (r *courseRepository) Create(course *models.Course) error {
	return r.db.Create(course).Error
}

func (r *courseRepository) Update(course *models.Course) error {
	course.UpdatedAt = time.Now().UTC()
	return r.db.Save(course).Error
}

func (r *courseRepository) SoftDelete(id uint) error {
	course, err := r.GetByID(id)
	if err != nil {
		return err
	}

	course.IsDeleted = true
	course.UpdatedAt = time.Now().UTC()

	return r.db.Save(course).Error
}
