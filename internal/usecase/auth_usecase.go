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
	"hospital-portal/pkg/jwt"
	"hospital-portal/pkg/phone"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAuthenticationFailed = errors.New("invalid identifier, password or role")
	ErrEmailAlreadyExists   = errors.New("email already registered")
	ErrNHSAlreadyExists     = errors.New("NHS number already registered")
)

type AuthUsecase interface {
	// Authenticate resolves a principal from an identifier and secret.
	// Returns ErrAuthenticationFailed when nothing matches; any other error
	// is a storage failure.
	Authenticate(ctx context.Context, identifier, secret, role string) (*entity.Principal, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.PatientResponse, error)
}

type authUsecase struct {
	store       *store.Handle
	log         *logrus.Logger
	accountRepo repository.AccountRepository
	patientRepo repository.PatientRepository
	doctorRepo  repository.DoctorRepository
	activity    service.ActivityLogService
	jwtService  *jwt.JWTService
	phoneRegion string
	now         func() time.Time
}

func NewAuthUsecase(
	handle *store.Handle,
	log *logrus.Logger,
	accountRepo repository.AccountRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	activity service.ActivityLogService,
	jwtService *jwt.JWTService,
	phoneRegion string,
) AuthUsecase {
	return &authUsecase{
		store:       handle,
		log:         log,
		accountRepo: accountRepo,
		patientRepo: patientRepo,
		doctorRepo:  doctorRepo,
		activity:    activity,
		jwtService:  jwtService,
		phoneRegion: phoneRegion,
		now:         time.Now,
	}
}

// Authenticate checks accounts first. An account whose role differs from the
// requested one is ignored, and the identifier is then tried as a patient
// email (when it contains '@') or NHS number. Patients without a password
// cannot sign in.
func (u *authUsecase) Authenticate(ctx context.Context, identifier, secret, role string) (*entity.Principal, error) {
	identifier = strings.TrimSpace(identifier)
	role = strings.TrimSpace(role)
	if identifier == "" || secret == "" {
		return nil, ErrAuthenticationFailed
	}

	db := u.store.DB(ctx)

	account, err := u.accountRepo.FindByUsername(db, identifier)
	if err != nil {
		u.log.Warnf("Failed to find account %s: %+v", identifier, err)
		return nil, err
	}
	if account != nil && (role == "" || account.Role.Matches(role)) {
		if account.Password != secret {
			return nil, ErrAuthenticationFailed
		}
		return u.principalForAccount(db, account)
	}

	if role != "" && !entity.RolePatient.Matches(role) {
		return nil, ErrAuthenticationFailed
	}

	patient, err := u.findPatient(db, identifier)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", identifier, err)
		return nil, err
	}
	if patient == nil || !patient.HasPassword() || patient.Password != secret {
		return nil, ErrAuthenticationFailed
	}

	return &entity.Principal{Role: entity.RolePatient, Patient: patient}, nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	principal, err := u.Authenticate(ctx, req.Identifier, req.Password, req.Role)
	if err != nil {
		return nil, err
	}

	if principal.Account != nil {
		u.touchAccount(ctx, principal.Account)
	}

	session := principal.Session()
	token, _, err := u.jwtService.GenerateSessionToken(session.Profile, string(session.Role), session.Name)
	if err != nil {
		u.log.Warnf("Failed to generate session token: %+v", err)
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(u.jwtService.GetAccessExpiry().Seconds()),
		Session:     converter.SessionToResponse(session),
	}, nil
}

// RegisterPatient creates a self-registered patient able to sign in through
// the patient path.
func (u *authUsecase) RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.PatientResponse, error) {
	patient := &entity.Patient{
		Name:     strings.TrimSpace(req.Name),
		NHS:      strings.TrimSpace(req.NHS),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		DOB:      req.DOB,
		Gender:   req.Gender,
		Phone:    phone.Normalize(req.Phone, u.phoneRegion),
		Address:  strings.TrimSpace(req.Address),
		Password: req.Password,
	}

	err := u.store.UnitOfWork(ctx, func(tx *gorm.DB) error {
		existing, err := u.patientRepo.FindByEmail(tx, patient.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrEmailAlreadyExists
		}
		if patient.NHS != "" {
			existing, err = u.patientRepo.FindByNHS(tx, patient.NHS)
			if err != nil {
				return err
			}
			if existing != nil {
				return ErrNHSAlreadyExists
			}
		}

		if err := u.patientRepo.Create(tx, patient); err != nil {
			return err
		}
		return u.activity.Record(ctx, tx, "Patient %s registered", patient.Email)
	})
	if err != nil {
		if !errors.Is(err, ErrEmailAlreadyExists) && !errors.Is(err, ErrNHSAlreadyExists) {
			u.log.Warnf("Failed to register patient %s: %+v", patient.Email, err)
		}
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func (u *authUsecase) principalForAccount(db *gorm.DB, account *entity.Account) (*entity.Principal, error) {
	principal := &entity.Principal{Role: entity.ParseRole(string(account.Role)), Account: account}

	switch principal.Role {
	case entity.RoleDoctor:
		doctor, err := u.doctorRepo.FindByEmail(db, account.Username)
		if err != nil {
			return nil, err
		}
		principal.Doctor = doctor
	case entity.RolePatient:
		patient, err := u.findPatient(db, account.Username)
		if err != nil {
			return nil, err
		}
		principal.Patient = patient
	}

	return principal, nil
}

func (u *authUsecase) findPatient(db *gorm.DB, identifier string) (*entity.Patient, error) {
	if entity.IsEmailIdentifier(identifier) {
		return u.patientRepo.FindByEmail(db, identifier)
	}
	return u.patientRepo.FindByNHS(db, identifier)
}

// touchAccount records the sign-in. Failure is logged and does not block the
// login.
func (u *authUsecase) touchAccount(ctx context.Context, account *entity.Account) {
	at := u.now().UTC()
	err := u.store.UnitOfWork(ctx, func(tx *gorm.DB) error {
		if err := u.accountRepo.TouchLastActive(tx, account.ID, at); err != nil {
			return err
		}
		return u.activity.Record(ctx, tx, "Account %s signed in", account.Username)
	})
	if err != nil {
		u.log.Warnf("Failed to record activity for account %s: %+v", account.Username, err)
		return
	}
	account.LastActive = &at
}
