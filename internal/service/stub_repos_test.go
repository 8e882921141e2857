package service

import (
	"sort"
	"strings"

	"github.com/hmtri1011/surveyhub/internal/errs"
	"github.com/hmtri1011/surveyhub/internal/model"
	"github.com/hmtri1011/surveyhub/internal/repository"
)

// In-memory stand-ins for the gorm repositories. Each one implements the full
// repository interface so the services under test run against plain maps.

type stubQuestionRepo struct {
	questions map[uint]*model.Question
	nextID    uint
	updates   int
	createErr error
}

func newStubQuestionRepo() *stubQuestionRepo {
	return &stubQuestionRepo{questions: make(map[uint]*model.Question)}
}

func (r *stubQuestionRepo) seed(q model.Question) *model.Question {
	if q.ID == 0 {
		r.nextID++
		q.ID = r.nextID
	} else if q.ID > r.nextID {
		r.nextID = q.ID
	}
	r.questions[q.ID] = &q
	return &q
}

func (r *stubQuestionRepo) Create(question *model.Question) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	question.ID = r.nextID
	for i := range question.Options {
		question.Options[i].ID = uint(i + 1)
		question.Options[i].QuestionID = question.ID
	}
	cp := *question
	r.questions[question.ID] = &cp
	return nil
}

func (r *stubQuestionRepo) FindByID(id uint) (*model.Question, error) {
	q, ok := r.questions[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cp := *q
	cp.Options = nil
	return &cp, nil
}

func (r *stubQuestionRepo) FindByIDWithOptions(id uint) (*model.Question, error) {
	q, ok := r.questions[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cp := *q
	cp.Options = append([]model.AnswerOption(nil), q.Options...)
	return &cp, nil
}

func (r *stubQuestionRepo) FindFiltered(filter repository.QuestionFilter) ([]model.Question, int64, error) {
	var out []model.Question
	for _, q := range r.questions {
		if filter.OwnerID != nil && q.OwnerID != *filter.OwnerID {
			continue
		}
		if filter.Status != "" && q.Status != filter.Status {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(q.Text), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, *q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *stubQuestionRepo) FindAllByOwner(ownerID uint) ([]model.Question, error) {
	var out []model.Question
	for _, q := range r.questions {
		if q.OwnerID == ownerID {
			out = append(out, *q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubQuestionRepo) Update(question *model.Question) error {
	r.updates++
	cp := *question
	r.questions[question.ID] = &cp
	return nil
}

func (r *stubQuestionRepo) ReplaceOptions(question *model.Question, options []model.AnswerOption) error {
	for i := range options {
		options[i].ID = uint(i + 1)
		options[i].QuestionID = question.ID
	}
	question.Options = options
	cp := *question
	r.questions[question.ID] = &cp
	return nil
}

func (r *stubQuestionRepo) DeleteCascade(id uint) error {
	if _, ok := r.questions[id]; !ok {
		return errs.ErrNotFound
	}
	delete(r.questions, id)
	return nil
}

func (r *stubQuestionRepo) CountAll() (int64, error) {
	return int64(len(r.questions)), nil
}

type stubOptionRepo struct {
	options map[uint]*model.AnswerOption
	nextID  uint
}

func newStubOptionRepo() *stubOptionRepo {
	return &stubOptionRepo{options: make(map[uint]*model.AnswerOption)}
}

func (r *stubOptionRepo) seed(o model.AnswerOption) *model.AnswerOption {
	if o.ID == 0 {
		r.nextID++
		o.ID = r.nextID
	} else if o.ID > r.nextID {
		r.nextID = o.ID
	}
	r.options[o.ID] = &o
	return &o
}

func (r *stubOptionRepo) FindByID(id uint) (*model.AnswerOption, error) {
	o, ok := r.options[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *stubOptionRepo) CountByQuestionID(questionID uint) (int64, error) {
	var count int64
	for _, o := range r.options {
		if o.QuestionID == questionID {
			count++
		}
	}
	return count, nil
}

func (r *stubOptionRepo) CreateCapped(option *model.AnswerOption, max int) error {
	count, _ := r.CountByQuestionID(option.QuestionID)
	if count >= int64(max) {
		return errs.Validation("options", "a question can only have up to 5 options")
	}
	r.nextID++
	option.ID = r.nextID
	cp := *option
	r.options[option.ID] = &cp
	return nil
}

func (r *stubOptionRepo) Delete(id uint) error {
	if _, ok := r.options[id]; !ok {
		return errs.ErrNotFound
	}
	delete(r.options, id)
	return nil
}

type stubUserAnswerRepo struct {
	answers   []model.UserAnswer
	nextID    uint
	createErr error
	months    []repository.MonthCount
}

func (r *stubUserAnswerRepo) CreateBatch(answers []model.UserAnswer) ([]model.UserAnswer, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for i := range answers {
		r.nextID++
		answers[i].ID = r.nextID
	}
	r.answers = append(r.answers, answers...)
	return answers, nil
}

func (r *stubUserAnswerRepo) FindByID(id uint) (*model.UserAnswer, error) {
	for _, a := range r.answers {
		if a.ID == id {
			cp := a
			return &cp, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (r *stubUserAnswerRepo) FindAllByUser(userID uint, page, perPage int) ([]model.UserAnswer, int64, error) {
	var out []model.UserAnswer
	for _, a := range r.answers {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubUserAnswerRepo) FindAllByQuestionID(questionID uint) ([]model.UserAnswer, error) {
	var out []model.UserAnswer
	for _, a := range r.answers {
		if a.QuestionID == questionID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *stubUserAnswerRepo) CountByQuestionID(questionID uint) (int64, error) {
	out, _ := r.FindAllByQuestionID(questionID)
	return int64(len(out)), nil
}

func (r *stubUserAnswerRepo) Delete(id uint) error {
	for i, a := range r.answers {
		if a.ID == id {
			r.answers = append(r.answers[:i], r.answers[i+1:]...)
			return nil
		}
	}
	return errs.ErrNotFound
}

func (r *stubUserAnswerRepo) CountAll() (int64, error) {
	return int64(len(r.answers)), nil
}

func (r *stubUserAnswerRepo) CountByMonth(year int) ([]repository.MonthCount, error) {
	return r.months, nil
}

type stubUserRepo struct {
	users map[uint]*model.User
}

func newStubUserRepo(users ...model.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[uint]*model.User)}
	for _, u := range users {
		cp := u
		r.users[u.ID] = &cp
	}
	return r
}

func (r *stubUserRepo) FindByID(id uint) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *stubUserRepo) FindAllByRole(role string) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) CountAll() (int64, error) {
	return int64(len(r.users)), nil
}

type stubNotificationRepo struct {
	notifications []model.Notification
	createErr     error
	updates       int
}

func (r *stubNotificationRepo) Create(notification *model.Notification) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.notifications = append(r.notifications, *notification)
	return nil
}

func (r *stubNotificationRepo) CreateBatch(notifications []model.Notification) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.notifications = append(r.notifications, notifications...)
	return nil
}

func (r *stubNotificationRepo) FindByRecipient(recipientID uint) ([]model.Notification, error) {
	var out []model.Notification
	for _, n := range r.notifications {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *stubNotificationRepo) FindByIDForRecipient(id string, recipientID uint) (*model.Notification, error) {
	for _, n := range r.notifications {
		if n.ID == id && n.RecipientID == recipientID {
			cp := n
			return &cp, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (r *stubNotificationRepo) Update(notification *model.Notification) error {
	r.updates++
	for i, n := range r.notifications {
		if n.ID == notification.ID {
			r.notifications[i] = *notification
			return nil
		}
	}
	return errs.ErrNotFound
}
