package usecase

import (
	"context"
	"errors"
	"strings"

	"hospital-portal/internal/converter"
	"hospital-portal/internal/delivery/dto"
	"hospital-portal/internal/domain/entity"
	"hospital-portal/internal/domain/repository"
	"hospital-portal/internal/infrastructure/store"
	"hospital-portal/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrUsernameTaken   = errors.New("username already taken")
	ErrInvalidRole     = errors.New("role must be admin, doctor or patient")
)

type AccountUsecase interface {
	Create(ctx context.Context, req *dto.CreateAccountRequest) (*dto.AccountResponse, error)
	List(ctx context.Context, search string) (*dto.AccountListResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateAccountRequest) (*dto.AccountResponse, error)
	Delete(ctx context.Context, id uint) error
}

type accountUsecase struct {
	store       *store.Handle
	log         *logrus.Logger
	accountRepo repository.AccountRepository
	activity    service.ActivityLogService
}

func NewAccountUsecase(
	handle *store.Handle,
	log *logrus.Logger,
	accountRepo repository.AccountRepository,
	activity service.ActivityLogService,
) AccountUsecase {
	return &accountUsecase{
		store:       handle,
		log:         log,
		accountRepo: accountRepo,
		activity:    activity,
	}
}

// Create provisions an account. The unique username index settles races
// between concurrent creators.
func (u *accountUsecase) Create(ctx context.Context, req *dto.CreateAccountRequest) (*dto.AccountResponse, error) {
	role := entity.ParseRole(req.Role)
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	account := &entity.Account{
		Username: strings.TrimSpace(req.Username),
		Password: req.Password,
		Role:     role,
	}

	err := u.store.UnitOfWork(ctx, func(tx *gorm.DB) error {
		if err := u.accountRepo.Create(tx, account); err != nil {
			if errors.Is(err, store.ErrDuplicateKey) {
				return ErrUsernameTaken
			}
			return err
		}
		return u.activity.Record(ctx, tx, "Created %s account %s", account.Role, account.Username)
	})
	if err != nil {
		if !errors.Is(err, ErrUsernameTaken) {
			u.log.Warnf("Failed to create account %s: %+v", account.Username, err)
		}
		return nil, err
	}

	return converter.AccountToResponse(account), nil
}

func (u *accountUsecase) List(ctx context.Context, search string) (*dto.AccountListResponse, error) {
	accounts, err := u.accountRepo.FindAll(u.store.DB(ctx), search)
	if err != nil {
		u.log.Warnf("Failed to list accounts: %+v", err)
		return nil, err
	}

	return &dto.AccountListResponse{
		Accounts: converter.AccountsToResponses(accounts),
		Total:    len(accounts),
	}, nil
}

func (u *accountUsecase) Update(ctx context.Context, id uint, req *dto.UpdateAccountRequest) (*dto.AccountResponse, error) {
	var account *entity.Account

	err := u.store.UnitOfWork(ctx, func(tx *gorm.DB) error {
		var err error
		account, err = u.accountRepo.FindByID(tx, id)
		if err != nil {
			return err
		}
		if account == nil {
			return ErrAccountNotFound
		}

		if req.Role != "" {
			role := entity.ParseRole(req.Role)
			if !role.IsValid() {
				return ErrInvalidRole
			}
			account.Role = role
		}
		if req.Password != "" {
			account.Password = req.Password
		}

		if err := u.accountRepo.Update(tx, account); err != nil {
			return err
		}
		return u.activity.Record(ctx, tx, "Updated account %s", account.Username)
	})
	if err != nil {
		if !errors.Is(err, ErrAccountNotFound) && !errors.Is(err, ErrInvalidRole) {
			u.log.Warnf("Failed to update account %d: %+v", id, err)
		}
		return nil, err
	}

	return converter.AccountToResponse(account), nil
}

func (u *accountUsecase) Delete(ctx context.Context, id uint) error {
	err := u.store.UnitOfWork(ctx, func(tx *gorm.DB) error {
		account, err := u.accountRepo.FindByID(tx, id)
		if err != nil {
			return err
		}
		if account == nil {
			return ErrAccountNotFound
		}
		if _, err := u.accountRepo.Delete(tx, id); err != nil {
			return err
		}
		return u.activity.Record(ctx, tx, "Deleted account %s", account.Username)
	})
	if err != nil && !errors.Is(err, ErrAccountNotFound) {
		u.log.Warnf("Failed to delete account %d: %+v", id, err)
	}
	return err
}
