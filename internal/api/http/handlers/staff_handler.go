package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/orphanage-admin/internal/api/dto"
	"github.com/spec-kit/orphanage-admin/internal/service"
	apperrors "github.com/spec-kit/orphanage-admin/pkg/util/errorutil"
)

// StaffHandler exposes staff profile endpoints.
type StaffHandler struct {
	identity *service.IdentityService
	validate *validator.Validate
}

// NewStaffHandler constructs handler.
func NewStaffHandler(identity *service.IdentityService) *StaffHandler {
	return &StaffHandler{
		identity: identity,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// List handles GET /api/staff.
func (h *StaffHandler) List(c *fiber.Ctx) error {
	profiles, err := h.identity.ListStaffProfiles(c.UserContext())
	if err != nil {
		return err
	}

	resp := make([]dto.StaffResponse, 0, len(profiles))
	for i := range profiles {
		resp = append(resp, dto.NewStaffResponse(&profiles[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// GetByID handles GET /api/staff/:id.
func (h *StaffHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	profile, err := h.identity.GetStaffProfileByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if profile == nil {
		return apperrors.NewNotFound("staff profile", map[string]any{"id": id})
	}
	return c.JSON(fiber.Map{"data": dto.NewStaffResponse(profile)})
}

// Create handles POST /api/staff.
func (h *StaffHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(err)
	}

	profile, err := h.identity.CreateStaffProfile(c.UserContext(), service.CreateStaffProfileInput{
		UserID:      req.UserID,
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Position:    req.Position,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewStaffResponse(profile)})
}

// Update handles PUT /api/staff/:id.
func (h *StaffHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(err)
	}

	input := service.UpdateStaffProfileInput{
		Name:     req.Name,
		Email:    req.Email,
		Position: req.Position,
	}
	if req.PhoneNumber.Set {
		if req.PhoneNumber.Value == nil {
			input.ClearPhoneNumber = true
		} else {
			input.PhoneNumber = req.PhoneNumber.Value
		}
	}

	profile, err := h.identity.UpdateStaffProfile(c.UserContext(), id, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewStaffResponse(profile)})
}

// Delete handles DELETE /api/staff/:id.
func (h *StaffHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.identity.DeleteStaffProfile(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"success": true}})
}
