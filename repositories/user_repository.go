package repositories

import (
	"context"
	"time"

	"carers-store/config"
	"carers-store/models"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	var u models.User
	err := config.DB.QueryRow(context.Background(),
		`SELECT id, email, password, role, created_at, updated_at FROM users WHERE email = $1`,
		email).Scan(&u.ID, &u.Email, &u.Password, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByID(id int) (*models.User, error) {
	var u models.User
	err := config.DB.QueryRow(context.Background(),
		`SELECT id, email, password, role, created_at, updated_at FROM users WHERE id = $1`,
		id).Scan(&u.ID, &u.Email, &u.Password, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(user *models.User) error {
	now := time.Now()
	return config.DB.QueryRow(context.Background(),
		`INSERT INTO users (email, password, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at, updated_at`,
		user.Email, user.Password, user.Role, now, now,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *UserRepository) CreateProfile(profile *models.UserProfile) error {
	return config.DB.QueryRow(context.Background(),
		`INSERT INTO user_profiles (user_id, full_name, phone, address)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		profile.UserID, profile.FullName, profile.Phone, profile.Address,
	).Scan(&profile.ID)
}

func (r *UserRepository) GetProfile(userID int) (*models.UserProfile, error) {
	var p models.UserProfile
	err := config.DB.QueryRow(context.Background(),
		`SELECT id, user_id, COALESCE(full_name, ''), COALESCE(phone, ''), COALESCE(address, ''), COALESCE(photo_url, '')
		 FROM user_profiles WHERE user_id = $1`,
		userID).Scan(&p.ID, &p.UserID, &p.FullName, &p.Phone, &p.Address, &p.PhotoURL)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *UserRepository) UpdatePhotoURL(userID int, photoURL string) error {
	_, err := config.DB.Exec(context.Background(),
		`UPDATE user_profiles SET photo_url = $1 WHERE user_id = $2`,
		photoURL, userID)
	return err
}

func (r *UserRepository) UpdateProfile(profile *models.UserProfile) error {
	_, err := config.DB.Exec(context.Background(),
		`UPDATE user_profiles SET full_name = $1, phone = $2, address = $3 WHERE user_id = $4`,
		profile.FullName, profile.Phone, profile.Address, profile.UserID)
	return err
}
