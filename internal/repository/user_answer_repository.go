package repository

import (
	"errors"

	"github.com/hmtri1011/surveyhub/internal/errs"
	"github.com/hmtri1011/surveyhub/internal/model"
	"gorm.io/gorm"
)

// MonthCount is one month's submitted-answer tally.
type MonthCount struct {
	Month int
	Total int64
}

type UserAnswerRepository interface {
	// CreateBatch persists all rows in a single transaction; either every
	// row commits or none do. IDs are populated on return.
	CreateBatch(answers []model.UserAnswer) ([]model.UserAnswer, error)
	FindByID(id uint) (*model.UserAnswer, error)
	FindAllByUser(userID uint, page, perPage int) ([]model.UserAnswer, int64, error)
	FindAllByQuestionID(questionID uint) ([]model.UserAnswer, error)
	CountByQuestionID(questionID uint) (int64, error)
	Delete(id uint) error
	CountAll() (int64, error)
	CountByMonth(year int) ([]MonthCount, error)
}

type userAnswerRepository struct {
	db *gorm.DB
}

func NewUserAnswerRepository(db *gorm.DB) UserAnswerRepository {
	return &userAnswerRepository{db: db}
}

func (r *userAnswerRepository) CreateBatch(answers []model.UserAnswer) ([]model.UserAnswer, error) {
	if len(answers) == 0 {
		return answers, nil
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&answers).Error
	})
	if err != nil {
		return nil, err
	}
	return answers, nil
}

func (r *userAnswerRepository) FindByID(id uint) (*model.UserAnswer, error) {
	var answer model.UserAnswer
	err := r.db.Preload("Question").Preload("AnswerOption").First(&answer, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &answer, nil
}

func (r *userAnswerRepository) FindAllByUser(userID uint, page, perPage int) ([]model.UserAnswer, int64, error) {
	query := r.db.Model(&model.UserAnswer{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 15
	}

	var answers []model.UserAnswer
	err := query.
		Preload("Question").
		Preload("AnswerOption").
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&answers).Error
	return answers, total, err
}

func (r *userAnswerRepository) FindAllByQuestionID(questionID uint) ([]model.UserAnswer, error) {
	var answers []model.UserAnswer
	err := r.db.
		Preload("User").
		Preload("AnswerOption").
		Where("question_id = ?", questionID).
		Order("created_at DESC").
		Find(&answers).Error
	return answers, err
}

func (r *userAnswerRepository) CountByQuestionID(questionID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.UserAnswer{}).Where("question_id = ?", questionID).Count(&count).Error
	return count, err
}

func (r *userAnswerRepository) Delete(id uint) error {
	result := r.db.Delete(&model.UserAnswer{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *userAnswerRepository) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&model.UserAnswer{}).Count(&count).Error
	return count, err
}

func (r *userAnswerRepository) CountByMonth(year int) ([]MonthCount, error) {
	var counts []MonthCount
	err := r.db.Model(&model.UserAnswer{}).
		Select("EXTRACT(MONTH FROM created_at)::int as month, COUNT(*) as total").
		Where("EXTRACT(YEAR FROM created_at) = ? AND deleted_at IS NULL", year).
		Group("month").
		Order("month").
		Scan(&counts).Error
	return counts, err
}
