package service

import (
	"ai_interview_backend/internal/model"
	"ai_interview_backend/internal/repository"
	"fmt"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

// ProfileUpdate carries the optional profile fields; nil means unchanged.
type ProfileUpdate struct {
	Name           *string
	Age            *int
	Gender         *string
	CareerSummary  *string
	Certifications *string
}

func (s *UserService) UpdateProfile(userID uint, update ProfileUpdate) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Age != nil {
		user.Age = *update.Age
	}
	if update.Gender != nil {
		user.Gender = *update.Gender
	}
	if update.CareerSummary != nil {
		user.CareerSummary = *update.CareerSummary
	}
	if update.Certifications != nil {
		user.Certifications = *update.Certifications
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// BuildUserSpec renders the applicant profile for AI prompt personalization.
func BuildUserSpec(user *model.User) string {
	return fmt.Sprintf("이름: %s\n나이: %d\n성별: %s\n경력: %s\n자격증: %s",
		user.Name, user.Age, user.Gender, user.CareerSummary, user.Certifications)
}
