package api

import (
	"net/http"
	"time"

	"estatehub/internal/config"
	"estatehub/internal/middleware"
	"estatehub/internal/repository"

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// NewRouter builds the gin engine with every route mounted. rdb may be nil,
// in which case response caching is disabled.
func NewRouter(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *gin.Engine {
	users := repository.NewUserRepository(db)
	listings := repository.NewListingRepository(db)
	favorites := repository.NewFavoriteRepository(db)
	loans := repository.NewLoanRepository(db)

	r := gin.Default()

	// Uploaded listing images
	r.Static("/uploads", cfg.UploadDir)

	apiGroup := r.Group("/api")

	apiGroup.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC().Format(time.RFC3339)})
	})

	// Auth routes
	auth := apiGroup.Group("/auth")
	auth.POST("/register", RegisterHandler(users, cfg.JWTSecret))
	auth.POST("/login", LoginHandler(users, cfg.JWTSecret))
	auth.GET("/me", middleware.AuthMiddleware(db, cfg.JWTSecret), MeHandler())

	// Public listing routes
	apiGroup.GET("/listings", ListListingsHandler(listings))
	apiGroup.GET("/listings/locations", LocationsHandler(listings, rdb))
	apiGroup.POST("/listings/compare", CompareListingsHandler(listings))
	apiGroup.GET("/listings/:id", GetListingHandler(listings, rdb))

	// Protected routes
	authed := apiGroup.Group("")
	authed.Use(middleware.AuthMiddleware(db, cfg.JWTSecret))
	{
		authed.POST("/listings", CreateListingHandler(listings, rdb, cfg.UploadDir))
		authed.PUT("/listings/:id", UpdateListingHandler(listings, rdb))
		authed.DELETE("/listings/:id", DeleteListingHandler(listings, rdb))
		authed.GET("/listings/user/recommendations", RecommendationsHandler(listings))
		authed.GET("/user/listings", UserListingsHandler(listings))

		authed.GET("/favorites", GetFavoritesHandler(favorites))
		authed.POST("/favorites/:listingId", AddFavoriteHandler(favorites))
		authed.DELETE("/favorites/:listingId", RemoveFavoriteHandler(favorites))

		authed.POST("/loans/apply", ApplyLoanHandler(loans))
		authed.GET("/loans", GetLoansHandler(loans))
	}

	return r
}
