package api

import (
	"net/http" // HTTP status codes

	"estatehub/internal/domain"
	"estatehub/internal/middleware"
	"estatehub/internal/repository"

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// Request struct for loan applications
type ApplyLoanRequest struct {
	ListingID    *uint   `json:"listingId"`
	LoanAmount   float64 `json:"loanAmount" binding:"required,gt=0"`
	Tenure       int     `json:"tenure" binding:"required,min=1"`
	Purpose      string  `json:"purpose" binding:"required"`
	Employment   string  `json:"employment" binding:"required"`
	AnnualIncome float64 `json:"annualIncome" binding:"required,gt=0"`
	Name         string  `json:"name" binding:"required"`
	Email        string  `json:"email" binding:"required,email"`
	Phone        string  `json:"phone" binding:"required"`
	Address      string  `json:"address" binding:"required"`
}

// ApplyLoanHandler files a PENDING loan application for the authenticated
// user, optionally tied to a listing
func ApplyLoanHandler(loans *repository.LoanRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := middleware.CurrentUser(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req ApplyLoanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		loan := domain.LoanApplication{
			UserID:       user.ID,
			ListingID:    req.ListingID,
			LoanAmount:   req.LoanAmount,
			Tenure:       req.Tenure,
			Purpose:      req.Purpose,
			Employment:   req.Employment,
			AnnualIncome: req.AnnualIncome,
			Name:         req.Name,
			Email:        req.Email,
			Phone:        req.Phone,
			Address:      req.Address,
			Status:       domain.LoanPending,
		}
		if err := loans.Create(c.Request.Context(), &loan); err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": user.ID,
				"amount":  req.LoanAmount,
				"error":   err.Error(),
			}).Error("Failed to create loan application")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply for loan"})
			return
		}

		logrus.WithFields(logrus.Fields{
			"loan_id": loan.ID,
			"user_id": user.ID,
			"amount":  loan.LoanAmount,
			"tenure":  loan.Tenure,
		}).Info("Loan application filed")
		c.JSON(http.StatusCreated, gin.H{"loanApplication": loan})
	}
}

// GetLoansHandler lists the caller's loan applications, newest first
func GetLoansHandler(loans *repository.LoanRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := middleware.CurrentUser(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		result, err := loans.ListByUser(c.Request.Context(), user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch loans"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"loans": result})
	}
}
