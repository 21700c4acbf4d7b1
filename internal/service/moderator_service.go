package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/noah-isme/platform-admin-api/internal/dto"
	"github.com/noah-isme/platform-admin-api/internal/models"
	"github.com/noah-isme/platform-admin-api/internal/repository"
)

// Sentinel errors surfaced by the moderator directory.
var (
	ErrModeratorNotFound = errors.New("moderator not found")
	ErrModeratorExists   = errors.New("a moderator with that email or username already exists")

	// ErrInvalidCredentials deliberately covers wrong password, unknown email
	// and non-moderator accounts so callers cannot tell them apart.
	ErrInvalidCredentials = errors.New("invalid credentials or not a moderator")
)

// ModeratorService orchestrates moderator account management and login.
type ModeratorService interface {
	Create(ctx context.Context, payload dto.ModeratorCreateRequest, createdByAdminID uint) (dto.ModeratorResponse, error)
	List(ctx context.Context, req dto.ModeratorListRequest) (dto.ModeratorListResponse, error)
	Get(ctx context.Context, id uint) (dto.ModeratorResponse, error)
	Update(ctx context.Context, id uint, payload dto.ModeratorUpdateRequest) (dto.ModeratorResponse, error)
	Delete(ctx context.Context, id uint) error
	Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error)
}

type moderatorService struct {
	repo       repository.ModeratorRepository
	validator  *validator.Validate
	activity   ActivityRecorder
	jwtSecret  string
	sessionTTL time.Duration
	bcryptCost int
	logger     zerolog.Logger
}

// NewModeratorService constructs the moderator service.
func NewModeratorService(repo repository.ModeratorRepository, validator *validator.Validate, activity ActivityRecorder, jwtSecret string, sessionTTL time.Duration, bcryptCost int, logger zerolog.Logger) ModeratorService {
	if sessionTTL <= 0 {
		sessionTTL = 12 * time.Hour
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}

	return &moderatorService{
		repo:       repo,
		validator:  validator,
		activity:   activity,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
		bcryptCost: bcryptCost,
		logger:     logger.With().Str("component", "moderator_service").Logger(),
	}
}

func (s *moderatorService) Create(ctx context.Context, payload dto.ModeratorCreateRequest, createdByAdminID uint) (dto.ModeratorResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ModeratorResponse{}, err
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	username := strings.TrimSpace(payload.Username)

	taken, err := s.repo.Exists(ctx, email, username)
	if err != nil {
		return dto.ModeratorResponse{}, err
	}
	if taken {
		return dto.ModeratorResponse{}, ErrModeratorExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), s.bcryptCost)
	if err != nil {
		return dto.ModeratorResponse{}, err
	}

	moderator := models.Moderator{
		Username:      username,
		Email:         email,
		Password:      string(hash),
		AssignedModel: strings.TrimSpace(payload.AssignedModel),
		IsModerator:   true,
	}

	if err := s.repo.Create(ctx, &moderator); err != nil {
		return dto.ModeratorResponse{}, err
	}

	// The account insert has already committed; a failed audit write should
	// not fail the creation. It is logged and the record is simply absent.
	if s.activity != nil {
		if _, err := s.activity.RecordModeratorCreated(ctx, moderator.ID, moderator.Email, createdByAdminID); err != nil {
			s.logger.Warn().Err(err).Uint("moderator_id", moderator.ID).Msg("failed to record moderator creation")
		}
	}

	return dto.NewModeratorResponse(moderator), nil
}

func (s *moderatorService) List(ctx context.Context, req dto.ModeratorListRequest) (dto.ModeratorListResponse, error) {
	filter := repository.ModeratorFilter{
		Search:   strings.TrimSpace(req.Search),
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	moderators, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.ModeratorListResponse{}, err
	}

	responses := make([]dto.ModeratorResponse, 0, len(moderators))
	for _, moderator := range moderators {
		responses = append(responses, dto.NewModeratorResponse(moderator))
	}

	return dto.ModeratorListResponse{
		Items:      responses,
		Pagination: paginationMeta(req.Page, req.PageSize, total),
	}, nil
}

func (s *moderatorService) Get(ctx context.Context, id uint) (dto.ModeratorResponse, error) {
	moderator, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ModeratorResponse{}, ErrModeratorNotFound
		}
		return dto.ModeratorResponse{}, err
	}

	return dto.NewModeratorResponse(moderator), nil
}

func (s *moderatorService) Update(ctx context.Context, id uint, payload dto.ModeratorUpdateRequest) (dto.ModeratorResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ModeratorResponse{}, err
	}

	updates := make(map[string]interface{})

	if payload.Username != nil {
		updates["username"] = strings.TrimSpace(*payload.Username)
	}
	if payload.Email != nil {
		updates["email"] = strings.ToLower(strings.TrimSpace(*payload.Email))
	}
	if payload.AssignedModel != nil {
		updates["assigned_model"] = strings.TrimSpace(*payload.AssignedModel)
	}
	if payload.Password != nil && *payload.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*payload.Password), s.bcryptCost)
		if err != nil {
			return dto.ModeratorResponse{}, err
		}
		updates["password"] = string(hash)
	}

	if len(updates) == 0 {
		return s.Get(ctx, id)
	}

	moderator, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ModeratorResponse{}, ErrModeratorNotFound
		}
		return dto.ModeratorResponse{}, err
	}

	return dto.NewModeratorResponse(moderator), nil
}

func (s *moderatorService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrModeratorNotFound
		}
		return err
	}

	return nil
}

func (s *moderatorService) Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LoginResponse{}, err
	}

	moderator, err := s.repo.GetByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LoginResponse{}, ErrInvalidCredentials
		}
		return dto.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(moderator.Password), []byte(payload.Password)); err != nil {
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	if !moderator.IsModerator {
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	token, err := s.issueToken(moderator)
	if err != nil {
		return dto.LoginResponse{}, err
	}

	return dto.LoginResponse{
		Token: token,
		User:  dto.NewModeratorResponse(moderator),
	}, nil
}

func (s *moderatorService) issueToken(moderator models.Moderator) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   moderator.ID,
		"email": moderator.Email,
		"role":  "moderator",
		"iat":   now.Unix(),
		"exp":   now.Add(s.sessionTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
