package handler

import (
	"errors"
	"net/http"

	"hospital-portal/internal/delivery/dto"
	"hospital-portal/internal/usecase"
	"hospital-portal/pkg/response"
	"hospital-portal/pkg/validator"
)

type AccountHandler struct {
	accountUsecase usecase.AccountUsecase
	validator      *validator.CustomValidator
}

func NewAccountHandler(accountUsecase usecase.AccountUsecase, validator *validator.CustomValidator) *AccountHandler {
	return &AccountHandler{
		accountUsecase: accountUsecase,
		validator:      validator,
	}
}

func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAccountRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	account, err := h.accountUsecase.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUsernameTaken):
			response.Conflict(w, "Username already taken")
		case errors.Is(err, usecase.ErrInvalidRole):
			response.BadRequest(w, err.Error())
		default:
			storeFailure(w, err, "Failed to create account")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Account created successfully", account)
}

func (h *AccountHandler) GetAllAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accountUsecase.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		storeFailure(w, err, "Failed to get accounts")
		return
	}

	response.Success(w, http.StatusOK, "Accounts retrieved successfully", accounts)
}

func (h *AccountHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid account ID")
		return
	}

	var req dto.UpdateAccountRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	account, err := h.accountUsecase.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrAccountNotFound):
			response.NotFound(w, "Account not found")
		case errors.Is(err, usecase.ErrInvalidRole):
			response.BadRequest(w, err.Error())
		default:
			storeFailure(w, err, "Failed to update account")
		}
		return
	}

	response.Success(w, http.StatusOK, "Account updated successfully", account)
}

func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid account ID")
		return
	}

	if err := h.accountUsecase.Delete(r.Context(), id); err != nil {
		if errors.Is(err, usecase.ErrAccountNotFound) {
			response.NotFound(w, "Account not found")
			return
		}
		storeFailure(w, err, "Failed to delete account")
		return
	}

	response.Success(w, http.StatusOK, "Account deleted successfully", nil)
}
