package service

import (
	"fmt"
	"time"

	"github.com/hmtri1011/surveyhub/internal/dto"
	"github.com/hmtri1011/surveyhub/internal/repository"
)

// StatsService serves the admin dashboard aggregates.
type StatsService interface {
	Dashboard() (*dto.StatisticsResponse, error)
	MonthlyAnswers(year int) ([]dto.MonthlyAnswerStat, error)
}

type statsService struct {
	userRepo       repository.UserRepository
	questionRepo   repository.QuestionRepository
	userAnswerRepo repository.UserAnswerRepository
}

func NewStatsService(userRepo repository.UserRepository, questionRepo repository.QuestionRepository, userAnswerRepo repository.UserAnswerRepository) StatsService {
	return &statsService{userRepo: userRepo, questionRepo: questionRepo, userAnswerRepo: userAnswerRepo}
}

func (s *statsService) Dashboard() (*dto.StatisticsResponse, error) {
	totalUsers, err := s.userRepo.CountAll()
	if err != nil {
		return nil, fmt.Errorf("error counting users: %w", err)
	}
	totalQuestions, err := s.questionRepo.CountAll()
	if err != nil {
		return nil, fmt.Errorf("error counting questions: %w", err)
	}
	totalAnswers, err := s.userAnswerRepo.CountAll()
	if err != nil {
		return nil, fmt.Errorf("error counting answers: %w", err)
	}

	return &dto.StatisticsResponse{
		TotalUsers:     totalUsers,
		TotalQuestions: totalQuestions,
		TotalAnswers:   totalAnswers,
	}, nil
}

// MonthlyAnswers always returns twelve entries; months without submissions
// report zero.
func (s *statsService) MonthlyAnswers(year int) ([]dto.MonthlyAnswerStat, error) {
	counts, err := s.userAnswerRepo.CountByMonth(year)
	if err != nil {
		return nil, fmt.Errorf("error aggregating monthly answers: %w", err)
	}

	byMonth := make(map[int]int64, len(counts))
	for _, c := range counts {
		byMonth[c.Month] = c.Total
	}

	stats := make([]dto.MonthlyAnswerStat, 0, 12)
	for month := 1; month <= 12; month++ {
		stats = append(stats, dto.MonthlyAnswerStat{
			Month:        month,
			MonthName:    time.Month(month).String(),
			TotalAnswers: byMonth[month],
		})
	}
	return stats, nil
}
