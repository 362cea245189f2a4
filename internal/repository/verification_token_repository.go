package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"secalert/internal/model"
)

// VerificationTokenRepository defines persistence for single-use
// verification tokens.
type VerificationTokenRepository interface {
	Create(ctx context.Context, token *model.VerificationToken) error
	FindByToken(ctx context.Context, token string) (*model.VerificationToken, error)
	// DeleteUnconsumed removes every unconsumed token of the given purpose
	// for the user, so a newly issued token supersedes the old ones.
	DeleteUnconsumed(ctx context.Context, userID uuid.UUID, purpose model.TokenPurpose) error
	// ConsumeIfUnconsumed marks the token used with a conditional update.
	// It returns true only when this call flipped the flag: under two
	// concurrent consumers exactly one observes true.
	ConsumeIfUnconsumed(ctx context.Context, token string) (bool, error)
}

type verificationTokenRepository struct {
	db *gorm.DB
}

// NewVerificationTokenRepository builds a GORM-backed repository.
func NewVerificationTokenRepository(db *gorm.DB) VerificationTokenRepository {
	return &verificationTokenRepository{db: db}
}

func (r *verificationTokenRepository) Create(ctx context.Context, token *model.VerificationToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *verificationTokenRepository) FindByToken(ctx context.Context, token string) (*model.VerificationToken, error) {
	var record model.VerificationToken
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *verificationTokenRepository) DeleteUnconsumed(ctx context.Context, userID uuid.UUID, purpose model.TokenPurpose) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND purpose = ? AND used = ?", userID, purpose, false).
		Delete(&model.VerificationToken{}).Error
}

func (r *verificationTokenRepository) ConsumeIfUnconsumed(ctx context.Context, token string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.VerificationToken{}).
		Where("token = ? AND used = ?", token, false).
		Update("used", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
