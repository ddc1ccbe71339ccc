package repository

import (
	"cursos/models"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.LoginAudit{}, &models.Course{}, &models.Lesson{}))
	return db
}

func seedCourse(t *testing.T, db *gorm.DB, title string) *models.Course {
	t.Helper()

	course := &models.Course{Title: title, Status: models.CourseStatusDraft}
	require.NoError(t, db.Create(course).Error)
	return course
}

func seedLesson(t *testing.T, db *gorm.DB, courseID uint, title string, position int, deleted bool) *models.Lesson {
	t.Helper()

	lesson := &models.Lesson{CourseID: courseID, Title: title, Position: position, IsDeleted: deleted}
	require.NoError(t, db.Create(lesson).Error)
	return lesson
}

func livePositions(t *testing.T, db *gorm.DB, courseID uint) map[uint]int {
	t.Helper()

	var lessons []models.Lesson
	require.NoError(t, db.Where("course_id = ? AND is_deleted = ?", courseID, false).Find(&lessons).Error)

	positions := make(map[uint]int, len(lessons))
	for _, l := range lessons {
		positions[l.ID] = l.Position
	}
	return positions
}

func TestNextPositionEmptyCourse(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLessonRepository(db)
	course := seedCourse(t, db, "Go basics")

	pos, err := repo.NextPosition(course.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, pos)
}

func TestNextPositionAfterGaps(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLessonRepository(db)
	course := seedCourse(t, db, "Go basics")

	seedLesson(t, db, course.ID, "a", 1, false)
	seedLesson(t, db, course.ID, "b", 2, false)
	seedLesson(t, db, course.ID, "c", 5, false)

	pos, err := repo.NextPosition(course.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, pos)
}

func TestNextPositionNeverReusesDeleted(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLessonRepository(db)
	course := seedCourse(t, db, "Go basics")

	seedLesson(t, db, course.ID, "a", 1, false)
	seedLesson(t, db, course.ID, "b", 2, false)
	last := seedLesson(t, db, course.ID, "c", 3, false)

	require.NoError(t, repo.SoftDelete(last.ID))

	// Deleted row still holds position 3 under the unique index
	pos, err := repo.NextPosition(course.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, pos)
}

func TestNextPositionScopedPerCourse(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLessonRepository(db)
	first := seedCourse(t, db, "Go basics")
	second := seedCourse(t, db, "Advanced Go")

	seedLesson(t, db, first.ID, "a", 1, false)
	seedLesson(t, db, first.ID, "b", 2, false)

	pos, err := repo.NextPosition(second.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, pos)
}

func TestGetByIDExcludesDeleted(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLessonRepository(db)
	course := seedCourse(t, db, "Go basics")

	lesson := seedLesson(t, db, course.ID, "a", 1, true)

	_, err := repo.GetByID(lesson.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGetByCourseOrdersByPosition(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLessonRepository(db)
	course := seedCourse(t, db, "Go basics")

	seedLesson(t, db, course.ID, "third", 3, false)
	seedLesson(t, db, course.ID, "first", 1, false)
	seedLesson(t, db, course.ID, "second", 2, false)
	seedLesson(t, db, course.ID, "ghost", 4, true)

	lessons, err := repo.GetByCourse(course.ID)
	require.NoError(t, err)
	require.Len(t, lessons, 3)
	assert.Equal(t, "first", lessons[0].Title)
	assert.Equal(t, "second", lessons[1].Title)
	assert.Equal(t, "third", lessons[2].Title)
}

func TestMoveUpSwapsWithPredecessor(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLessonRepository(db)
	course := seedCourse(t, db, "Go basics")

	a := seedLesson(t, db, course.ID, "a", 1, false)
	b := seedLesson(t, db, course.ID, "b", 2, false)

	require.NoError(t, repo.MoveUp(b.ID))

	positions := livePositions(t, db, course.ID)
	assert.Equal(t, 2, positions[a.ID])
	assert.Equal(t, 1, positions[b.ID])
}

func TestMoveUpFirstIsNoop(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLessonRepository(db)
	course := seedCourse(t, db, "Go basics")

	a := seedLesson(t, db, course.ID, "a", 1, false)
	b := seedLesson(t, db, course.ID, "b", 2, false)

	require.NoError(t, repo.MoveUp(a.ID))

	positions := livePositions(t, db, course.ID)
	assert.Equal(t, 1, positions[a.ID])
	assert.Equal(t, 2, positions[b.ID])
}

func TestMoveDownSwapsWithSuccessor(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLessonRepository(db)
	course := seedCourse(t, db, "Go basics")

	a := seedLesson(t, db, course.ID, "a", 1, false)
	b := seedLesson(t, db, course.ID, "b", 2, false)

	require.NoError(t, repo.MoveDown(a.ID))

	positions := livePositions(t, db, course.ID)
	assert.Equal(t, 2, positions[a.ID])
	assert.Equal(t, 1, positions[b.ID])
}

func TestMoveDownLastIsNoop(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLessonRepository(db)
	course := seedCourse(t, db, "Go basics")

	a := seedLesson(t, db, course.ID, "a", 1, false)
	b := seedLesson(t, db, course.ID, "b", 2, false)

	require.NoError(t, repo.MoveDown(b.ID))

	positions := livePositions(t, db, course.ID)
	assert.Equal(t, 1, positions[a.ID])
	assert.Equal(t, 2, positions[b.ID])
}

func TestMoveUpThenDownRestoresOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLessonRepository(db)
	course := seedCourse(t, db, "Go basics")

	a := seedLesson(t, db, course.ID, "a", 1, false)
	b := seedLesson(t, db, course.ID, "b", 2, false)
	c := seedLesson(t, db, course.ID, "c", 3, false)

	require.NoError(t, repo.MoveUp(b.ID))
	require.NoError(t, repo.MoveDown(b.ID))

	positions := livePositions(t, db, course.ID)
	assert.Equal(t, 1, positions[a.ID])
	assert.Equal(t, 2, positions[b.ID])
	assert.Equal(t, 3, positions[c.ID])
}

func TestMoveSkipsDeletedNeighbor(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLessonRepository(db)
	course := seedCourse(t, db, "Go basics")

	a := seedLesson(t, db, course.ID, "a", 1, false)
	seedLesson(t, db, course.ID, "b", 2, true)
	c := seedLesson(t, db, course.ID, "c", 3, false)

	// The deleted lesson at position 2 must not take part in the swap
	require.NoError(t, repo.MoveUp(c.ID))

	positions := livePositions(t, db, course.ID)
	assert.Equal(t, 3, positions[a.ID])
	assert.Equal(t, 1, positions[c.ID])
}

func TestMoveUpMissingLesson(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLessonRepository(db)

	assert.ErrorIs(t, repo.MoveUp(999), gorm.ErrRecordNotFound)
}

func TestMoveUpDeletedLesson(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLessonRepository(db)
	course := seedCourse(t, db, "Go basics")

	lesson := seedLesson(t, db, course.ID, "a", 1, true)

	assert.ErrorIs(t, repo.MoveUp(lesson.ID), gorm.ErrRecordNotFound)
}

func TestMoveTouchesBothTimestamps(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLessonRepository(db)
	course := seedCourse(t, db, "Go basics")

	a := seedLesson(t, db, course.ID, "a", 1, false)
	b := seedLesson(t, db, course.ID, "b", 2, false)

	before := time.Now().Add(-time.Minute)
	require.NoError(t, db.Model(&models.Lesson{}).Where("course_id = ?", course.ID).Update("updated_at", before).Error)

	require.NoError(t, repo.MoveUp(b.ID))

	var moved, other models.Lesson
	require.NoError(t, db.First(&moved, b.ID).Error)
	require.NoError(t, db.First(&other, a.ID).Error)
	assert.True(t, moved.UpdatedAt.After(before))
	assert.True(t, other.UpdatedAt.After(before))
}

func TestPositionsStayDistinctAcrossMoves(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLessonRepository(db)
	course := seedCourse(t, db, "Go basics")

	var ids []uint
	for i := 1; i <= 4; i++ {
		lesson := seedLesson(t, db, course.ID, fmt.Sprintf("lesson %d", i), i, false)
		ids = append(ids, lesson.ID)
	}

	require.NoError(t, repo.MoveUp(ids[1]))
	require.NoError(t, repo.MoveDown(ids[2]))
	require.NoError(t, repo.MoveUp(ids[3]))

	positions := livePositions(t, db, course.ID)
	seen := make(map[int]bool)
	for _, pos := range positions {
		assert.False(t, seen[pos], "duplicate position %d", pos)
		seen[pos] = true
	}
}

func TestSoftDeleteLeavesGap(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLessonRepository(db)
	course := seedCourse(t, db, "Go basics")

	a := seedLesson(t, db, course.ID, "a", 1, false)
	b := seedLesson(t, db, course.ID, "b", 2, false)
	c := seedLesson(t, db, course.ID, "c", 3, false)

	require.NoError(t, repo.SoftDelete(b.ID))

	// Survivors are not renumbered
	positions := livePositions(t, db, course.ID)
	assert.Equal(t, 1, positions[a.ID])
	assert.Equal(t, 3, positions[c.ID])
	assert.NotContains(t, positions, b.ID)
}

func TestSoftDeleteMissingLesson(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLessonRepository(db)

	assert.ErrorIs(t, repo.SoftDelete(42), gorm.ErrRecordNotFound)
}
