package services

import (
	"errors"

	"carers-store/models"
	"carers-store/repositories"
	"carers-store/utils"
)

type AuthService struct {
	userRepo *repositories.UserRepository
}

func NewAuthService() *AuthService {
	return &AuthService{
		userRepo: repositories.NewUserRepository(),
	}
}

func (s *AuthService) Register(req models.RegisterRequest) (*models.LoginResponse, error) {
	existingUser, _ := s.userRepo.FindByEmail(req.Email)
	if existingUser != nil {
		return nil, errors.New("email already registered")
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    req.Email,
		Password: hashedPassword,
		Role:     "customer",
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	profile := &models.UserProfile{
		UserID:   user.ID,
		FullName: req.FullName,
		Phone:    req.Phone,
	}

	if err := s.userRepo.CreateProfile(profile); err != nil {
		return nil, err
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{Token: token, User: *user}, nil
}

func (s *AuthService) GetProfile(userID int) (*models.User, *models.UserProfile, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, nil, errors.New("user not found")
	}

	profile, err := s.userRepo.GetProfile(userID)
	if err != nil {
		profile = &models.UserProfile{UserID: userID}
	}
	return user, profile, nil
}

func (s *AuthService) UpdateProfile(userID int, req models.UpdateProfileRequest) (*models.UserProfile, error) {
	profile, err := s.userRepo.GetProfile(userID)
	if err != nil {
		return nil, errors.New("profile not found")
	}

	if req.FullName != "" {
		profile.FullName = req.FullName
	}
	if req.Phone != "" {
		profile.Phone = req.Phone
	}
	if req.Address != "" {
		profile.Address = req.Address
	}

	if err := s.userRepo.UpdateProfile(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// UpdateProfilePhoto swaps the stored photo path and returns the old one so
// the caller can clean up the file.
func (s *AuthService) UpdateProfilePhoto(userID int, photoURL string) (string, error) {
	profile, err := s.userRepo.GetProfile(userID)
	if err != nil {
		return "", errors.New("profile not found")
	}

	if err := s.userRepo.UpdatePhotoURL(userID, photoURL); err != nil {
		return "", err
	}
	return profile.PhotoURL, nil
}

func (s *AuthService) Login(req models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}

	ok, err := utils.VerifyPassword(user.Password, req.Password)
	if err != nil || !ok {
		return nil, errors.New("invalid email or password")
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{Token: token, User: *user}, nil
}
