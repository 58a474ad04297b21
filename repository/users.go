package repository

import (
	"context"

	"github.com/UFAZ-L2-CS1/DADLY/models"
)

// CreateUser returns ErrDuplicate when the email is taken.
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	return translate(s.db.WithContext(ctx).Create(u).Error)
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

// FindUser matches on both id and email, the two identity claims carried by
// access tokens.
func (s *Store) FindUser(ctx context.Context, id uint, email string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("id = ? AND email = ?", id, email).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

// UpdateUserProfile writes the given columns only.
func (s *Store) UpdateUserProfile(ctx context.Context, userID uint, fields map[string]any) error {
	return translate(s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(fields).Error)
}

func (s *Store) DeleteUser(ctx context.Context, userID uint) error {
	res := s.db.WithContext(ctx).Delete(&models.User{}, userID)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
