package api

import (
	"errors"
	"net/http" // HTTP status codes

	"estatehub/internal/middleware"
	"estatehub/internal/repository"

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"
)

// AddFavoriteHandler bookmarks a listing for the authenticated user.
// Adding an existing favorite is a no-op success, not an error.
func AddFavoriteHandler(favorites *repository.FavoriteRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := middleware.CurrentUser(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		listingID, err := paramUint(c, "listingId")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing id"})
			return
		}

		favorite, err := favorites.Add(c.Request.Context(), user.ID, listingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
				return
			}
			logrus.WithFields(logrus.Fields{
				"user_id":    user.ID,
				"listing_id": listingID,
				"error":      err.Error(),
			}).Error("Failed to add favorite")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add favorite"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"favorite": favorite})
	}
}

// RemoveFavoriteHandler removes a bookmark; removing one that does not exist
// still succeeds.
func RemoveFavoriteHandler(favorites *repository.FavoriteRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := middleware.CurrentUser(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		listingID, err := paramUint(c, "listingId")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing id"})
			return
		}

		if err := favorites.Remove(c.Request.Context(), user.ID, listingID); err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id":    user.ID,
				"listing_id": listingID,
				"error":      err.Error(),
			}).Error("Failed to remove favorite")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove favorite"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Favorite removed"})
	}
}

// GetFavoritesHandler lists the user's favorites with listing and owner
// populated, newest first
func GetFavoritesHandler(favorites *repository.FavoriteRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := middleware.CurrentUser(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		result, err := favorites.ListByUser(c.Request.Context(), user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch favorites"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"favorites": result})
	}
}
