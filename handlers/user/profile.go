package user

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/campushub/campus-hub-api/utils/middleware"
	"github.com/campushub/campus-hub-api/utils/response"
	"github.com/campushub/campus-hub-api/utils/validation"
	"github.com/gofiber/fiber/v2"
)

var errInvalidImage = errors.New("invalid base64 image")

// UpdateProfileRequest carries partial profile updates. Pointer
// fields distinguish absent keys from explicit empty strings.
type UpdateProfileRequest struct {
	FullName          *string `json:"full_name" validate:"omitempty,max=100"`
	Phone             *string `json:"phone" validate:"omitempty,max=20"`
	Bio               *string `json:"bio" validate:"omitempty"`
	ProfilePictureURL *string `json:"profile_picture_url" validate:"omitempty,max=500"`
	Address           *string `json:"address" validate:"omitempty,max=255"`
	City              *string `json:"city" validate:"omitempty,max=100"`
	State             *string `json:"state" validate:"omitempty,max=100"`
	Country           *string `json:"country" validate:"omitempty,max=100"`
}

// PictureRequest sets the profile picture either as an inline
// base64-encoded image or as a URL reference.
type PictureRequest struct {
	PictureBase64 string `json:"picture_base64"`
	PictureURL    string `json:"picture_url"`
}

// GetProfile handles GET /users/profile/:id (owner or admin)
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	user, errResp := h.loadForProfileAccess(c)
	if user == nil {
		return errResp
	}

	return response.Success(c, user)
}

// UpdateProfile handles PUT /users/profile/:id (owner or admin).
// Failures return a sanitized message; detail goes to the server log
// only.
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	user, errResp := h.loadForProfileAccess(c)
	if user == nil {
		return errResp
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.FormatValidationErrors(err))
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.ProfilePictureURL != nil {
		user.ProfilePictureURL = *req.ProfilePictureURL
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	if req.City != nil {
		user.City = *req.City
	}
	if req.State != nil {
		user.State = *req.State
	}
	if req.Country != nil {
		user.Country = *req.Country
	}

	if err := h.db.Save(user).Error; err != nil {
		log.Printf("profile update failed for user %d: %v", user.ID, err)
		return response.InternalServerError(c, "Failed to update profile")
	}

	callerID, _ := middleware.GetUserID(c)
	h.audit.Record(&callerID, fmt.Sprintf("Updated profile for user: %s", user.Username), nil)

	return response.SuccessWithMessage(c, "Profile updated successfully", user)
}

// SetPicture handles POST /users/profile/:id/picture (owner or
// admin). Inline images are uploaded to object storage when it is
// configured; otherwise the encoded string is stored as the reference.
func (h *UserHandler) SetPicture(c *fiber.Ctx) error {
	user, errResp := h.loadForProfileAccess(c)
	if user == nil {
		return errResp
	}

	var req PictureRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	switch {
	case req.PictureBase64 != "":
		url, err := h.storeInlinePicture(c, user.ID, req.PictureBase64)
		if err != nil {
			if errors.Is(err, errInvalidImage) {
				return response.BadRequest(c, "Invalid base64 image")
			}
			log.Printf("picture upload failed for user %d: %v", user.ID, err)
			return response.InternalServerError(c, "Failed to store picture")
		}
		user.ProfilePictureURL = url
	case req.PictureURL != "":
		user.ProfilePictureURL = req.PictureURL
	default:
		return response.BadRequest(c, "No picture provided")
	}

	if err := h.db.Save(user).Error; err != nil {
		log.Printf("picture update failed for user %d: %v", user.ID, err)
		return response.InternalServerError(c, "Failed to store picture")
	}

	callerID, _ := middleware.GetUserID(c)
	h.audit.Record(&callerID, fmt.Sprintf("Updated profile picture for user: %s", user.Username), nil)

	return response.SuccessWithMessage(c, "Profile picture updated successfully", fiber.Map{
		"picture_url": user.ProfilePictureURL,
	})
}

// storeInlinePicture decodes a base64 image (with or without a data
// URI prefix) and uploads it, falling back to storing the raw string
// when no object storage is configured.
func (h *UserHandler) storeInlinePicture(c *fiber.Ctx, userID uint, encoded string) (string, error) {
	if h.pictures == nil {
		return encoded, nil
	}

	contentType := "image/png"
	payload := encoded
	if strings.HasPrefix(encoded, "data:") {
		// data:image/png;base64,AAAA...
		parts := strings.SplitN(encoded, ",", 2)
		if len(parts) == 2 {
			payload = parts[1]
			meta := strings.TrimPrefix(parts[0], "data:")
			if i := strings.Index(meta, ";"); i > 0 {
				contentType = meta[:i]
			}
		}
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errInvalidImage, err)
	}

	return h.pictures.UploadProfilePicture(c.Context(), userID, data, contentType)
}
