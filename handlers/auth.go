// auth.go - Registration, login, logout and profile handlers

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SeniduRavihara/usj-event-calendar/auth"
	"github.com/SeniduRavihara/usj-event-calendar/config"
	"github.com/SeniduRavihara/usj-event-calendar/database"
	"github.com/SeniduRavihara/usj-event-calendar/middleware"
	"github.com/SeniduRavihara/usj-event-calendar/models"
)

// cookieMaxAge is the lifetime of the login cookie. Shorter than the token's
// own 7-day expiry; the browser drops the cookie after a day even though the
// token inside would still verify.
const cookieMaxAge = 24 * 60 * 60

type AuthHandler struct {
	tokens       *auth.Service
	secureCookie bool
}

func NewAuthHandler(tokens *auth.Service, cfg *config.Config) *AuthHandler {
	return &AuthHandler{tokens: tokens, secureCookie: cfg.IsProduction()}
}

type RegisterInput struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	Role       string `json:"role"`
	Department string `json:"department"`
	StudentID  string `json:"student_id"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		jsonError(c, http.StatusBadRequest, "Name, email and password are required")
		return
	}

	role := input.Role
	if role == "" {
		role = models.RoleStudent
	}
	if role != models.RoleAdmin && role != models.RoleStudent {
		jsonError(c, http.StatusBadRequest, "Role must be ADMIN or STUDENT")
		return
	}
	if role == models.RoleStudent && (input.Department == "" || input.StudentID == "") {
		jsonError(c, http.StatusBadRequest, "Department and student ID are required for students")
		return
	}

	var existing models.User
	if err := database.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		jsonError(c, http.StatusBadRequest, "Email already registered")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		serverError(c, err)
		return
	}
	if input.StudentID != "" {
		if err := database.DB.Where("student_id = ?", input.StudentID).First(&existing).Error; err == nil {
			jsonError(c, http.StatusBadRequest, "Student ID already registered")
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			serverError(c, err)
			return
		}
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		serverError(c, err)
		return
	}

	user := models.User{
		Name:       input.Name,
		Email:      input.Email,
		Password:   hash,
		Role:       role,
		Department: input.Department,
	}
	if input.StudentID != "" {
		user.StudentID = &input.StudentID
	}

	if err := database.DB.Create(&user).Error; err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"user":    user.Public(),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		jsonError(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	// Same message for unknown email and wrong password.
	var user models.User
	if err := database.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			jsonError(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		serverError(c, err)
		return
	}
	if err := auth.CheckPassword(user.Password, input.Password); err != nil {
		jsonError(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := h.tokens.Issue(&user)
	if err != nil {
		serverError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.CookieName, token, cookieMaxAge, "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"message": "Login successful"})
}

// Logout clears the session cookie. Always succeeds, with or without an
// existing session.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.CookieName, "", -1, "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// Me returns the caller's profile, re-read from storage rather than from the
// token snapshot. A valid token for a deleted account yields 404.
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		jsonError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var user models.User
	if err := database.DB.First(&user, claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			jsonError(c, http.StatusNotFound, "User not found")
			return
		}
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user.Public()})
}

type UpdateProfileInput struct {
	Name       *string `json:"name"`
	Department *string `json:"department"`
	StudentID  *string `json:"student_id"`
	Password   *string `json:"password"`
}

// UpdateMe applies a partial profile update: omitted fields keep their
// stored values.
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		jsonError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		jsonError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	var user models.User
	if err := database.DB.First(&user, claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			jsonError(c, http.StatusNotFound, "User not found")
			return
		}
		serverError(c, err)
		return
	}

	if input.Name != nil {
		if *input.Name == "" {
			jsonError(c, http.StatusBadRequest, "Name cannot be empty")
			return
		}
		user.Name = *input.Name
	}
	if input.Department != nil {
		if user.Role == models.RoleStudent && *input.Department == "" {
			jsonError(c, http.StatusBadRequest, "Department is required for students")
			return
		}
		user.Department = *input.Department
	}
	if input.StudentID != nil {
		if user.Role == models.RoleStudent && *input.StudentID == "" {
			jsonError(c, http.StatusBadRequest, "Student ID is required for students")
			return
		}
		var existing models.User
		err := database.DB.Where("student_id = ? AND id <> ?", *input.StudentID, user.ID).First(&existing).Error
		if err == nil {
			jsonError(c, http.StatusBadRequest, "Student ID already registered")
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			serverError(c, err)
			return
		}
		user.StudentID = input.StudentID
	}
	if input.Password != nil {
		if *input.Password == "" {
			jsonError(c, http.StatusBadRequest, "Password cannot be empty")
			return
		}
		hash, err := auth.HashPassword(*input.Password)
		if err != nil {
			serverError(c, err)
			return
		}
		user.Password = hash
	}

	if err := database.DB.Save(&user).Error; err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    user.Public(),
	})
}
