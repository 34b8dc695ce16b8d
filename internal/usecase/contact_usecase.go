package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"hospital-portal/internal/converter"
	"hospital-portal/internal/delivery/dto"
	"hospital-portal/internal/domain/entity"
	"hospital-portal/internal/domain/repository"
	"hospital-portal/internal/infrastructure/store"
	"hospital-portal/internal/service"
	"hospital-portal/pkg/phone"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrContactMessageNotFound = errors.New("contact message not found")

type ContactUsecase interface {
	Submit(ctx context.Context, req *dto.ContactMessageRequest) (*dto.ContactMessageResponse, error)
	// List returns messages newest first.
	List(ctx context.Context, search string) (*dto.ContactMessageListResponse, error)
	Delete(ctx context.Context, id uint) error
}

type contactUsecase struct {
	store       *store.Handle
	log         *logrus.Logger
	contactRepo repository.ContactMessageRepository
	activity    service.ActivityLogService
	phoneRegion string
	now         func() time.Time
}

func NewContactUsecase(
	handle *store.Handle,
	log *logrus.Logger,
	contactRepo repository.ContactMessageRepository,
	activity service.ActivityLogService,
	phoneRegion string,
) ContactUsecase {
	return &contactUsecase{
		store:       handle,
		log:         log,
		contactRepo: contactRepo,
		activity:    activity,
		phoneRegion: phoneRegion,
		now:         time.Now,
	}
}

func (u *contactUsecase) Submit(ctx context.Context, req *dto.ContactMessageRequest) (*dto.ContactMessageResponse, error) {
	message := &entity.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:   phone.Normalize(req.Phone, u.phoneRegion),
		Message: strings.TrimSpace(req.Message),
		TS:      u.now().UTC(),
	}

	if err := u.contactRepo.Create(u.store.DB(ctx), message); err != nil {
		u.log.Warnf("Failed to store contact message from %s: %+v", message.Name, err)
		return nil, err
	}

	return converter.ContactMessageToResponse(message), nil
}

func (u *contactUsecase) List(ctx context.Context, search string) (*dto.ContactMessageListResponse, error) {
	messages, err := u.contactRepo.FindAll(u.store.DB(ctx), search)
	if err != nil {
		u.log.Warnf("Failed to list contact messages: %+v", err)
		return nil, err
	}

	return &dto.ContactMessageListResponse{
		Messages: converter.ContactMessagesToResponses(messages),
		Total:    len(messages),
	}, nil
}

func (u *contactUsecase) Delete(ctx context.Context, id uint) error {
	err := u.store.UnitOfWork(ctx, func(tx *gorm.DB) error {
		message, err := u.contactRepo.FindByID(tx, id)
		if err != nil {
			return err
		}
		if message == nil {
			return ErrContactMessageNotFound
		}
		if _, err := u.contactRepo.Delete(tx, id); err != nil {
			return err
		}
		return u.activity.Record(ctx, tx, "Deleted contact message from %s", message.Name)
	})
	if err != nil && !errors.Is(err, ErrContactMessageNotFound) {
		u.log.Warnf("Failed to delete contact message %d: %+v", id, err)
	}
	return err
}
