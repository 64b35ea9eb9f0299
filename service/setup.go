package service

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/virgidrex/sentinela-bot/models"
)

func (s *Service) GetOrCreateUser(userId int64, userName string) (models.User, error) {
	var user models.User
	err := s.DB.First(&user, "user_id = ?", userId).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger().Info("new user", zap.Int64("user_id", userId), zap.String("user_name", userName))
		user = models.User{UserId: userId, UserName: userName}
		if err := s.DB.Create(&user).Error; err != nil {
			return user, fmt.Errorf("create user %d: %w", userId, err)
		}
		return user, nil
	}
	if err != nil {
		return user, fmt.Errorf("query user %d: %w", userId, err)
	}
	if user.UserName != userName {
		if err := s.DB.Model(&user).Update("UserName", userName).Error; err != nil {
			return user, fmt.Errorf("rename user %d: %w", userId, err)
		}
	}
	return user, nil
}

func (s *Service) CountUsers() (int64, error) {
	var count int64
	if err := s.DB.Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}
