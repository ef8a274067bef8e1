package api

import (
	"errors"
	"net/http" // HTTP status codes

	"estatehub/internal/domain"
	"estatehub/internal/middleware"
	"estatehub/internal/repository"
	"estatehub/internal/utils" // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"
)

// Request struct for registration
type RegisterRequest struct {
	Name     string  `json:"name" binding:"required,min=2"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=6"`
	Phone    *string `json:"phone"`
}

// Request struct for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterHandler creates a user account and returns it with a fresh token
func RegisterHandler(users *repository.UserRepository, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		// Email uniqueness check before hashing work
		if _, err := users.FindByEmail(c.Request.Context(), req.Email); err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.WithField("error", err.Error()).Error("Registration lookup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
			return
		}

		user := domain.User{
			Name:     req.Name,
			Email:    req.Email,
			Password: string(hash),
			Phone:    req.Phone,
			Role:     domain.RoleUser,
		}
		if err := users.Create(c.Request.Context(), &user); err != nil {
			logrus.WithFields(logrus.Fields{
				"email": req.Email,
				"error": err.Error(),
			}).Error("Failed to create user")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
			return
		}

		token, err := utils.GenerateJWT(user.ID, user.Email, jwtSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}

		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,
			"email":   user.Email,
		}).Info("User registered")
		c.JSON(http.StatusCreated, gin.H{"user": userResponse(&user), "token": token})
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(users *repository.UserRepository, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		user, err := users.FindByEmail(c.Request.Context(), req.Email)
		if err != nil {
			// Same response for unknown email and wrong password
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}

		token, err := utils.GenerateJWT(user.ID, user.Email, jwtSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": userResponse(user), "token": token})
	}
}

// MeHandler returns the authenticated user's projection
func MeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := middleware.CurrentUser(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}
