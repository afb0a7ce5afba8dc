package handlers

import (
	"net/http"
	"time"

	"github.com/01moynul/baaje-storefront/internal/apperr"
	"github.com/01moynul/baaje-storefront/internal/middleware"
	"github.com/01moynul/baaje-storefront/internal/models"
	"github.com/gin-gonic/gin"
)

const msgInvalidCredentials = "Invalid credentials"

// LoginInput is the body of POST /api/admin/login.
type LoginInput struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	Admin     models.Admin `json:"admin"`
}

// Login is the handler for POST /api/admin/login.
// Unknown emails and wrong passwords answer the same 401.
func (h *Handlers) Login(c *gin.Context) {
	// 1. --- Bind & Validate Input ---
	var input LoginInput
	if err := c.ShouldBind(&input); err != nil {
		h.fail(c, apperr.Validation("Email and password are required"), "")
		return
	}

	// 2. --- Find Admin ---
	admin, err := h.Admins.GetByEmail(c.Request.Context(), input.Email)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			unauthorized(c)
			return
		}
		h.fail(c, err, "Login failed")
		return
	}

	// 3. --- Check Password ---
	password := models.Password{Hash: admin.PasswordHash}
	ok, err := password.Matches(input.Password)
	if err != nil {
		h.fail(c, apperr.Upstream("compare password", err), "Login failed")
		return
	}
	if !ok {
		unauthorized(c)
		return
	}

	// 4. --- Issue Token ---
	token, expiresAt, err := h.Tokens.GenerateToken(admin.ID)
	if err != nil {
		h.fail(c, apperr.Upstream("issue token", err), "Login failed")
		return
	}

	respond(c, http.StatusOK, "Login successful", loginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Admin:     admin,
	})
}

// Me is the handler for GET /api/admin/me.
func (h *Handlers) Me(c *gin.Context) {
	id, ok := middleware.AdminID(c)
	if !ok {
		unauthorized(c)
		return
	}

	admin, err := h.Admins.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Failed to fetch admin")
		return
	}
	respond(c, http.StatusOK, "", admin)
}

func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": msgInvalidCredentials})
}
