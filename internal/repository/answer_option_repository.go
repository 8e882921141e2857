package repository

import (
	"errors"
	"fmt"

	"github.com/hmtri1011/surveyhub/internal/errs"
	"github.com/hmtri1011/surveyhub/internal/model"
	"gorm.io/gorm"
)

type AnswerOptionRepository interface {
	FindByID(id uint) (*model.AnswerOption, error)
	CountByQuestionID(questionID uint) (int64, error)
	// CreateCapped inserts the option only if the question currently holds
	// fewer than max options. Count and insert share one transaction so two
	// concurrent adds cannot both pass the check.
	CreateCapped(option *model.AnswerOption, max int) error
	Delete(id uint) error
}

type answerOptionRepository struct {
	db *gorm.DB
}

func NewAnswerOptionRepository(db *gorm.DB) AnswerOptionRepository {
	return &answerOptionRepository{db: db}
}

func (r *answerOptionRepository) FindByID(id uint) (*model.AnswerOption, error) {
	var option model.AnswerOption
	if err := r.db.First(&option, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &option, nil
}

func (r *answerOptionRepository) CountByQuestionID(questionID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.AnswerOption{}).Where("question_id = ?", questionID).Count(&count).Error
	return count, err
}

func (r *answerOptionRepository) CreateCapped(option *model.AnswerOption, max int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.AnswerOption{}).Where("question_id = ?", option.QuestionID).Count(&count).Error; err != nil {
			return err
		}
		if count >= int64(max) {
			return errs.Validation("options", fmt.Sprintf("a question can only have up to %d options", max))
		}
		return tx.Create(option).Error
	})
}

func (r *answerOptionRepository) Delete(id uint) error {
	result := r.db.Delete(&model.AnswerOption{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}
