package repository

import (
	"cursos/models"
	"errors"
	"time"

	"gorm.io/gorm"
)

// LessonRepository maintains the per-course lesson ordering: live lessons
// hold pairwise-distinct positions and new lessons always extend the
// sequence, never reusing a position freed by a soft-delete.
type LessonRepository interface {
	GetByID(id uint) (*models.Lesson, error)
	GetByCourse(courseID uint) ([]models.Lesson, error)
	NextPosition(courseID uint) (int, error)
	Create(lesson *models.Lesson) error
	Update(lesson *models.Lesson) error
	SoftDelete(id uint) error
	MoveUp(id uint) error
	MoveDown(id uint) error
}

type lessonRepository struct {
	db *gorm.DB
}

func NewLessonRepository(db *gorm.DB) LessonRepository {
	return &lessonRepository{db: db}
}

func (r *lessonRepository) GetByID(id uint) (*models.Lesson, error) {
	var lesson models.Lesson
	err := r.db.Where("id = ? AND is_deleted = ?", id, false).First(&lesson).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *lessonRepository) GetByCourse(courseID uint) ([]models.Lesson, error) {
	var lessons []models.Lesson
	err := r.db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("position asc").
		Find(&lessons).Error
	return lessons, err
}

// NextPosition scans all rows of the course, deleted ones included. The
// (course_id, position) unique index covers deleted rows too, so a freed
// position must never be handed out again.
func (r *lessonRepository) NextPosition(courseID uint) (int, error) {
	var highest int
	err := r.db.Model(&models.Lesson{}).
		Where("course_id = ?", courseID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&highest).Error
	if err != nil {
		return 0, err
	}
	return highest + 1, nil
}

func (r *lessonRepository) Create(lesson *models.Lesson) error {
	return r.db.Create(lesson).Error
}

func (r *lessonRepository) Update(lesson *models.Lesson) error {
	lesson.UpdatedAt = time.Now().UTC()
	return r.db.Save(lesson).Error
}

// SoftDelete flags the lesson without renumbering the survivors; gaps in
// the sequence are expected after deletes.
func (r *lessonRepository) SoftDelete(id uint) error {
	lesson, err := r.GetByID(id)
	if err != nil {
		return err
	}

	lesson.IsDeleted = true
	lesson.UpdatedAt = time.Now().UTC()

	return r.db.Save(lesson).Error
}

// MoveUp swaps the lesson with its immediate live predecessor. Already
// first is a no-op, not an error.
func (r *lessonRepository) MoveUp(id uint) error {
	return r.swap(id, true)
}

// MoveDown swaps the lesson with its immediate live successor. Already
// last is a no-op, not an error.
func (r *lessonRepository) MoveDown(id uint) error {
	return r.swap(id, false)
}

func (r *lessonRepository) swap(id uint, up bool) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var lesson models.Lesson
		if err := tx.Where("id = ? AND is_deleted = ?", id, false).First(&lesson).Error; err != nil {
			return err
		}

		neighbor := tx.Where("course_id = ? AND is_deleted = ?", lesson.CourseID, false)
		if up {
			neighbor = neighbor.Where("position < ?", lesson.Position).Order("position desc")
		} else {
			neighbor = neighbor.Where("position > ?", lesson.Position).Order("position asc")
		}

		var other models.Lesson
		if err := neighbor.First(&other).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil // already at the edge
			}
			return err
		}

		// The unique index is not deferrable, so the swap parks the
		// moving lesson on a temporary negative position first; no
		// statement ever observes a duplicate.
		now := time.Now().UTC()
		lessonPos, otherPos := lesson.Position, other.Position

		if err := tx.Model(&lesson).
			Updates(map[string]interface{}{"position": -int(lesson.ID), "updated_at": now}).Error; err != nil {
			return err
		}
		if err := tx.Model(&other).
			Updates(map[string]interface{}{"position": lessonPos, "updated_at": now}).Error; err != nil {
			return err
		}
		return tx.Model(&lesson).
			Updates(map[string]interface{}{"position": otherPos, "updated_at": now}).Error
	})
}
