package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/orphanage-admin/internal/api/dto"
	"github.com/spec-kit/orphanage-admin/internal/service"
	apperrors "github.com/spec-kit/orphanage-admin/pkg/util/errorutil"
)

// AuthHandler exposes the login endpoint.
type AuthHandler struct {
	identity *service.IdentityService
	validate *validator.Validate
}

// NewAuthHandler constructs handler.
func NewAuthHandler(identity *service.IdentityService) *AuthHandler {
	return &AuthHandler{
		identity: identity,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(err)
	}

	user, profile, err := h.identity.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	resp := dto.LoginResponse{User: dto.NewUserResponse(user)}
	if profile != nil {
		staff := dto.NewStaffResponse(profile)
		resp.Staff = &staff
	}
	return c.JSON(fiber.Map{"data": resp})
}
