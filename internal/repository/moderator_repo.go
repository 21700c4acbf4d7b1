package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/noah-isme/platform-admin-api/internal/models"
)

// ModeratorFilter defines filters for listing moderator accounts.
type ModeratorFilter struct {
	Search   string
	Page     int
	PageSize int
}

// ModeratorRepository exposes persistence helpers for moderator accounts.
type ModeratorRepository interface {
	Create(ctx context.Context, moderator *models.Moderator) error
	List(ctx context.Context, filter ModeratorFilter) ([]models.Moderator, int64, error)
	GetByID(ctx context.Context, id uint) (models.Moderator, error)
	GetByEmail(ctx context.Context, email string) (models.Moderator, error)
	Exists(ctx context.Context, email, username string) (bool, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Moderator, error)
	Delete(ctx context.Context, id uint) error
}

type moderatorRepository struct {
	db *gorm.DB
}

// NewModeratorRepository constructs the moderator repository.
func NewModeratorRepository(db *gorm.DB) ModeratorRepository {
	return &moderatorRepository{db: db}
}

func (r *moderatorRepository) Create(ctx context.Context, moderator *models.Moderator) error {
	return r.db.WithContext(ctx).Create(moderator).Error
}

func (r *moderatorRepository) List(ctx context.Context, filter ModeratorFilter) ([]models.Moderator, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Moderator{})

	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(username) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		offset := (page - 1) * filter.PageSize
		query = query.Limit(filter.PageSize).Offset(offset)
	}

	var moderators []models.Moderator
	if err := query.Find(&moderators).Error; err != nil {
		return nil, 0, err
	}

	return moderators, total, nil
}

func (r *moderatorRepository) GetByID(ctx context.Context, id uint) (models.Moderator, error) {
	var moderator models.Moderator
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&moderator).Error; err != nil {
		return models.Moderator{}, err
	}

	return moderator, nil
}

func (r *moderatorRepository) GetByEmail(ctx context.Context, email string) (models.Moderator, error) {
	var moderator models.Moderator
	if err := r.db.WithContext(ctx).Where("LOWER(email) = ?", strings.ToLower(email)).First(&moderator).Error; err != nil {
		return models.Moderator{}, err
	}

	return moderator, nil
}

func (r *moderatorRepository) Exists(ctx context.Context, email, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Moderator{}).
		Where("LOWER(email) = ? OR LOWER(username) = ?", strings.ToLower(email), strings.ToLower(username)).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *moderatorRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Moderator, error) {
	tx := r.db.WithContext(ctx).Model(&models.Moderator{}).Where("id = ?", id)

	result := tx.Updates(updates)
	if result.Error != nil {
		return models.Moderator{}, result.Error
	}

	if result.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return models.Moderator{}, err
		}
	}

	return r.GetByID(ctx, id)
}

func (r *moderatorRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Moderator{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
