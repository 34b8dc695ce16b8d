package usecase

import (
	"context"
	"testing"
	"time"

	"hospital-portal/config"
	"hospital-portal/internal/delivery/dto"
	"hospital-portal/internal/domain/entity"
	"hospital-portal/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestUsecase(t *testing.T) (*testEnv, AuthUsecase, *jwt.JWTService) {
	t.Helper()

	env := newTestEnv(t)
	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "test-secret", AccessExpiry: time.Hour})
	uc := NewAuthUsecase(env.handle, env.log, env.accounts, env.patients, env.doctors, env.activity, jwtService, "GB")

	for _, a := range []*entity.Account{
		{Username: "admin", Password: "admin123", Role: "Admin"},
		{Username: "m.grey@example.org", Password: "scalpel", Role: entity.RoleDoctor},
	} {
		require.NoError(t, env.accounts.Create(env.db(), a))
	}
	env.addDoctor(t, "Meredith Grey", "m.grey@example.org")
	env.addPatient(t, &entity.Patient{Name: "Ada Lovelace", NHS: "9434765919", Email: "ada@example.org", Password: "engine"})
	env.addPatient(t, &entity.Patient{Name: "Charles Babbage", NHS: "4010232137"})

	return env, uc, jwtService
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	_, uc, _ := newAuthTestUsecase(t)

	tests := []struct {
		name        string
		identifier  string
		secret      string
		role        string
		wantRole    entity.Role
		wantProfile string
		wantErr     error
	}{
		{name: "admin account", identifier: "admin", secret: "admin123", role: "admin", wantRole: entity.RoleAdmin, wantProfile: "admin"},
		{name: "role compared without case", identifier: "admin", secret: "admin123", role: "ADMIN", wantRole: entity.RoleAdmin, wantProfile: "admin"},
		{name: "no role requested", identifier: "m.grey@example.org", secret: "scalpel", wantRole: entity.RoleDoctor, wantProfile: "m.grey@example.org"},
		{name: "wrong password", identifier: "admin", secret: "nope", role: "admin", wantErr: ErrAuthenticationFailed},
		{name: "account under another role", identifier: "admin", secret: "admin123", role: "doctor", wantErr: ErrAuthenticationFailed},
		{name: "patient by email", identifier: "ADA@example.org", secret: "engine", role: "patient", wantRole: entity.RolePatient, wantProfile: "ada@example.org"},
		{name: "patient by NHS number", identifier: "9434765919", secret: "engine", role: "Patient", wantRole: entity.RolePatient, wantProfile: "ada@example.org"},
		{name: "patient without password", identifier: "4010232137", secret: "anything", role: "patient", wantErr: ErrAuthenticationFailed},
		{name: "unknown identifier", identifier: "nobody@example.org", secret: "x", wantErr: ErrAuthenticationFailed},
		{name: "blank secret", identifier: "admin", secret: "", wantErr: ErrAuthenticationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			principal, err := uc.Authenticate(ctx, tt.identifier, tt.secret, tt.role)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, principal)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRole, principal.Role)
			assert.Equal(t, tt.wantProfile, principal.Profile())
		})
	}
}

func TestAuthenticateResolvesDoctorProfile(t *testing.T) {
	_, uc, _ := newAuthTestUsecase(t)

	principal, err := uc.Authenticate(context.Background(), "m.grey@example.org", "scalpel", "doctor")
	require.NoError(t, err)
	require.NotNil(t, principal.Doctor)
	assert.Equal(t, "Meredith Grey", principal.DisplayName())
}

func TestLoginIssuesSessionToken(t *testing.T) {
	ctx := context.Background()
	env, uc, jwtService := newAuthTestUsecase(t)

	resp, err := uc.Login(ctx, &dto.LoginRequest{Identifier: "admin", Password: "admin123", Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, "admin", resp.Session.Profile)
	assert.Equal(t, "admin", resp.Session.Role)

	claims, err := jwtService.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Profile)

	account, err := env.accounts.FindByUsername(env.db(), "admin")
	require.NoError(t, err)
	assert.NotNil(t, account.LastActive)
	assert.Equal(t, int64(1), env.activityCount(t))

	_, err = uc.Login(ctx, &dto.LoginRequest{Identifier: "admin", Password: "wrong"})
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestRegisterPatient(t *testing.T) {
	ctx := context.Background()
	env, uc, _ := newAuthTestUsecase(t)

	resp, err := uc.RegisterPatient(ctx, &dto.RegisterPatientRequest{
		Name:     "Mary Shelley",
		Email:    "Mary@Example.org",
		NHS:      "4857773456",
		Phone:    "07400 123456",
		Password: "frankenstein",
	})
	require.NoError(t, err)
	assert.Equal(t, "mary@example.org", resp.Email)
	assert.Equal(t, "+447400123456", resp.Phone)

	principal, err := uc.Authenticate(ctx, "mary@example.org", "frankenstein", "patient")
	require.NoError(t, err)
	assert.Equal(t, "Mary Shelley", principal.DisplayName())

	_, err = uc.RegisterPatient(ctx, &dto.RegisterPatientRequest{Name: "Impostor", Email: "ada@EXAMPLE.org", Password: "secret1"})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	_, err = uc.RegisterPatient(ctx, &dto.RegisterPatientRequest{Name: "Impostor", Email: "new@example.org", NHS: "9434765919", Password: "secret1"})
	assert.ErrorIs(t, err, ErrNHSAlreadyExists)

	n, err := env.patients.Count(env.db())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
