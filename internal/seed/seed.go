package seed

import (
	"context"

	"github.com/flagsapp/flags-backend/api/validators"
	"github.com/flagsapp/flags-backend/pkg/config"
	"github.com/flagsapp/flags-backend/pkg/db/models"
	dbtypes "github.com/flagsapp/flags-backend/pkg/db/types"
	apperrors "github.com/flagsapp/flags-backend/pkg/errors"
	"github.com/flagsapp/flags-backend/pkg/logger"
)

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdateFields(ctx context.Context, id string, fields map[string]any) error
}

type hotTakeStore interface {
	GetByNormalizedText(ctx context.Context, normalized string) (*models.HotTake, error)
	Create(ctx context.Context, take *models.HotTake) error
}

type questionStore interface {
	CountActive(ctx context.Context) (int64, error)
	Create(ctx context.Context, question *models.Question) error
}

type passwordHasher interface {
	Hash(password string) (string, error)
}

// SeederParams groups dependencies for the startup seeder.
type SeederParams struct {
	UserRepo     userStore
	HotTakeRepo  hotTakeStore
	QuestionRepo questionStore
	Hasher       passwordHasher
	Logger       *logger.Logger
	AdminConfig  config.AdminConfig
	SeedConfig   config.SeedConfig
}

// Seeder provisions the admin account, the anonymous author, and the curated
// launch content. Every step is idempotent so it can run on each boot.
type Seeder struct {
	users     userStore
	hotTakes  hotTakeStore
	questions questionStore
	hasher    passwordHasher
	logg      *logger.Logger
	admin     config.AdminConfig
	cfg       config.SeedConfig
}

func NewSeeder(params SeederParams) (*Seeder, error) {
	if params.UserRepo == nil {
		return nil, apperrors.New(apperrors.CodeValidation, "user repo is required")
	}
	if params.HotTakeRepo == nil {
		return nil, apperrors.New(apperrors.CodeValidation, "hot take repo is required")
	}
	if params.QuestionRepo == nil {
		return nil, apperrors.New(apperrors.CodeValidation, "question repo is required")
	}
	if params.Hasher == nil {
		return nil, apperrors.New(apperrors.CodeValidation, "hasher is required")
	}
	if params.Logger == nil {
		return nil, apperrors.New(apperrors.CodeValidation, "logger is required")
	}
	return &Seeder{
		users:     params.UserRepo,
		hotTakes:  params.HotTakeRepo,
		questions: params.QuestionRepo,
		hasher:    params.Hasher,
		logg:      params.Logger,
		admin:     params.AdminConfig,
		cfg:       params.SeedConfig,
	}, nil
}

// Run executes all enabled seeding steps.
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.EnsureAdmin(ctx); err != nil {
		return err
	}

	anonymous, err := s.EnsureAnonymousUser(ctx)
	if err != nil {
		return err
	}

	if s.cfg.Statements {
		if err := s.SeedStatements(ctx, anonymous.ID); err != nil {
			return err
		}
	}
	if s.cfg.Questions {
		if err := s.SeedQuestions(ctx); err != nil {
			return err
		}
	}
	return nil
}

// EnsureAdmin creates the configured admin account, or promotes it if the
// email already exists. A blank admin email disables the step.
func (s *Seeder) EnsureAdmin(ctx context.Context) error {
	if s.admin.Email == "" {
		return nil
	}
	if s.admin.Password == "" {
		return apperrors.New(apperrors.CodeValidation, "admin password is required when admin email is set")
	}

	email := validators.NormalizeEmail(s.admin.Email)
	existing, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		if existing.IsAdmin {
			return nil
		}
		s.logg.Info(s.logg.WithField(ctx, "email", email), "promoting existing user to admin")
		return s.users.UpdateFields(ctx, existing.ID, map[string]any{"is_admin": true})
	}
	if appErr := apperrors.As(err); appErr == nil || appErr.Code() != apperrors.CodeNotFound {
		return err
	}

	hash, err := s.hasher.Hash(s.admin.Password)
	if err != nil {
		return err
	}
	admin := &models.User{
		Email:                     email,
		PasswordHash:              hash,
		Name:                      s.admin.Name,
		IsAdmin:                   true,
		HasCompletedQuestionnaire: true,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return err
	}
	s.logg.Info(s.logg.WithField(ctx, "email", email), "created admin account")
	return nil
}

// EnsureAnonymousUser creates the account seeded statements are attributed
// to. Its password hash is empty so nobody can log into it.
func (s *Seeder) EnsureAnonymousUser(ctx context.Context) (*models.User, error) {
	email := validators.NormalizeEmail(s.cfg.AnonymousEmail)
	existing, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if appErr := apperrors.As(err); appErr == nil || appErr.Code() != apperrors.CodeNotFound {
		return nil, err
	}

	anonymous := &models.User{
		Email:                     email,
		Name:                      s.cfg.AnonymousName,
		HasCompletedQuestionnaire: true,
	}
	if err := s.users.Create(ctx, anonymous); err != nil {
		return nil, err
	}
	s.logg.Info(s.logg.WithField(ctx, "email", email), "created anonymous seed user")
	return anonymous, nil
}

// SeedStatements inserts the curated hot takes attributed to authorID,
// skipping any whose normalized text already exists.
func (s *Seeder) SeedStatements(ctx context.Context, authorID string) error {
	created := 0
	for _, seed := range statementSeeds {
		normalized := validators.NormalizeStatement(seed.Text)

		_, err := s.hotTakes.GetByNormalizedText(ctx, normalized)
		if err == nil {
			continue
		}
		if appErr := apperrors.As(err); appErr == nil || appErr.Code() != apperrors.CodeNotFound {
			return err
		}

		categories := make(dbtypes.StringArray, len(seed.Categories))
		for i, category := range seed.Categories {
			categories[i] = string(category)
		}
		author := authorID
		take := &models.HotTake{
			Text:           seed.Text,
			NormalizedText: normalized,
			Categories:     categories,
			AuthorID:       &author,
			IsActive:       true,
			IsInitial:      seed.IsInitial,
		}
		if err := s.hotTakes.Create(ctx, take); err != nil {
			// another instance may have seeded concurrently
			if appErr := apperrors.As(err); appErr != nil && appErr.Code() == apperrors.CodeConflict {
				continue
			}
			return err
		}
		created++
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"created": created,
		"total":   len(statementSeeds),
	}), "seeded hot takes")
	return nil
}

// SeedQuestions inserts the curated questionnaire only when no active
// questions exist, so admin edits are never clobbered.
func (s *Seeder) SeedQuestions(ctx context.Context) error {
	count, err := s.questions.CountActive(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, seed := range questionSeeds {
		question := &models.Question{
			Text:     seed.Text,
			Type:     string(seed.Type),
			Category: string(seed.Category),
			Options:  dbtypes.StringArray(seed.Options),
			Weight:   seed.Weight,
			Order:    seed.Order,
			IsActive: true,
		}
		if err := s.questions.Create(ctx, question); err != nil {
			return err
		}
	}
	s.logg.Info(s.logg.WithField(ctx, "created", len(questionSeeds)), "seeded questionnaire")
	return nil
}
