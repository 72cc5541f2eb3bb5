package controllers

import (
	"net/http"

	"github.com/omerfq/stitchline-backend/api/responses"
	"github.com/omerfq/stitchline-backend/api/validators"
	"github.com/omerfq/stitchline-backend/internal/auth"
	"github.com/omerfq/stitchline-backend/pkg/logger"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	DisplayName string `json:"display_name"`
}

type AuthController struct {
	auth *auth.Service
	logg *logger.Logger
}

func NewAuthController(authSvc *auth.Service, logg *logger.Logger) *AuthController {
	return &AuthController{auth: authSvc, logg: logg}
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	result, err := c.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, result)
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req registerRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	user, err := c.auth.Register(ctx, req.Email, req.Password, req.DisplayName)
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, http.StatusCreated, user)
}
