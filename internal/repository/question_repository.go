package repository

import (
	"errors"

	"github.com/hmtri1011/surveyhub/internal/errs"
	"github.com/hmtri1011/surveyhub/internal/model"
	"gorm.io/gorm"
)

// QuestionFilter narrows a question listing. Zero values mean "no filter".
type QuestionFilter struct {
	OwnerID *uint
	Status  string
	Search  string // matched against question text, case-insensitive
	Page    int
	PerPage int
}

type QuestionRepository interface {
	Create(question *model.Question) error
	FindByID(id uint) (*model.Question, error)
	FindByIDWithOptions(id uint) (*model.Question, error)
	FindFiltered(filter QuestionFilter) ([]model.Question, int64, error)
	// FindAllByOwner returns every question the owner holds, options
	// preloaded, without pagination.
	FindAllByOwner(ownerID uint) ([]model.Question, error)
	Update(question *model.Question) error
	// ReplaceOptions persists edited text/type and swaps the option set in
	// one transaction.
	ReplaceOptions(question *model.Question, options []model.AnswerOption) error
	// DeleteCascade removes the question together with its options and all
	// submitted answers, atomically.
	DeleteCascade(id uint) error
	CountAll() (int64, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *model.Question) error {
	// GORM creates associated options in the same insert when populated.
	return r.db.Create(question).Error
}

func (r *questionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.First(&question, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindByIDWithOptions(id uint) (*model.Question, error) {
	var question model.Question
	err := r.db.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("answer_options.id ASC")
	}).First(&question, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindFiltered(filter QuestionFilter) ([]model.Question, int64, error) {
	query := r.db.Model(&model.Question{})
	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		query = query.Where("text ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 {
		perPage = 15
	}

	var questions []model.Question
	err := query.
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("answer_options.id ASC") }).
		Order("questions.created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&questions).Error
	return questions, total, err
}

func (r *questionRepository) FindAllByOwner(ownerID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("answer_options.id ASC") }).
		Where("owner_id = ?", ownerID).
		Order("questions.created_at DESC").
		Find(&questions).Error
	return questions, err
}

func (r *questionRepository) Update(question *model.Question) error {
	return r.db.Save(question).Error
}

func (r *questionRepository) ReplaceOptions(question *model.Question, options []model.AnswerOption) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", question.ID).Delete(&model.AnswerOption{}).Error; err != nil {
			return err
		}
		question.Options = nil
		if err := tx.Save(question).Error; err != nil {
			return err
		}
		for i := range options {
			options[i].QuestionID = question.ID
		}
		if len(options) > 0 {
			if err := tx.Create(&options).Error; err != nil {
				return err
			}
		}
		question.Options = options
		return nil
	})
}

func (r *questionRepository) DeleteCascade(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&model.UserAnswer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", id).Delete(&model.AnswerOption{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Question{}, id).Error
	})
}

func (r *questionRepository) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&model.Question{}).Count(&count).Error
	return count, err
}
