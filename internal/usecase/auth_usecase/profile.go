package auth

import (
	"context"
	"errors"
	"fmt"

	"medicue/internal/domain/model"
	"medicue/internal/repository"
)

// ログイン中ユーザーのプロフィール取得
type ProfileUsecase struct {
	userRepo repository.UserRepository
}

func NewProfileUsecase(userRepo repository.UserRepository) *ProfileUsecase {
	return &ProfileUsecase{userRepo: userRepo}
}

func (u *ProfileUsecase) Execute(ctx context.Context, userID int64) (model.UserProfile, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserProfile{}, ErrUserNotFound
		}
		return model.UserProfile{}, fmt.Errorf("%w: find user by id: %w", ErrStorage, err)
	}
	return user.Profile(), nil
}
