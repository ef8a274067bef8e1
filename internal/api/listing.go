package api

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http" // HTTP status codes
	"os"
	"path/filepath"
	"time"

	"estatehub/internal/domain"
	"estatehub/internal/middleware"
	"estatehub/internal/repository"
	"estatehub/internal/utils" // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"
)

// ListListingsHandler returns the filtered, paginated listing set plus the
// total count matching the filter. Malformed numeric filter values are
// rejected with 400 rather than ignored.
func ListListingsHandler(listings *repository.ListingRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var f repository.ListFilter
		var err error

		if f.MinPrice, err = queryFloat(c, "minPrice"); err == nil {
			f.MaxPrice, err = queryFloat(c, "maxPrice")
		}
		if err == nil {
			f.Bedrooms, err = queryInt(c, "bedrooms")
		}
		if err == nil {
			f.OwnerID, err = queryUint(c, "userId")
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		f.PropertyType = c.Query("propertyType")
		f.ListingType = c.Query("listingType")
		f.City = c.Query("city")
		f.State = c.Query("state")
		f.Search = c.Query("search")
		f.Status = c.DefaultQuery("status", domain.StatusActive)

		if !domain.ValidStatus(f.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status parameter"})
			return
		}
		if f.ListingType != "" && !domain.ValidListingType(f.ListingType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid listingType parameter"})
			return
		}
		if f.PropertyType != "" && !domain.ValidPropertyType(f.PropertyType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid propertyType parameter"})
			return
		}

		limit, err := queryInt(c, "limit")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		skip, err := queryInt(c, "skip")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		f.Limit = repository.DefaultLimit
		if limit != nil && *limit > 0 {
			f.Limit = *limit
		}
		if skip != nil && *skip > 0 {
			f.Skip = *skip
		}

		result, total, err := listings.List(c.Request.Context(), f)
		if err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to fetch listings")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch listings"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"listings": result,
			"total":    total,
			"limit":    f.Limit,
			"skip":     f.Skip,
		})
	}
}

// GetListingHandler returns one listing by id, cached for a short window
func GetListingHandler(listings *repository.ListingRepository, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramUint(c, "id")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing id"})
			return
		}

		ctx := c.Request.Context()
		cacheKey := utils.ListingKey(id)
		var cached domain.Listing
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}

		listing, err := listings.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
				return
			}
			logrus.WithField("error", err.Error()).Error("Failed to fetch listing")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch listing"})
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, listing, utils.CacheTTL)
		c.JSON(http.StatusOK, listing)
	}
}

// createListingRequest is the typed input for listing creation. It binds
// from JSON bodies and from multipart forms, so numeric coercion happens in
// the binder instead of ad hoc per field.
type createListingRequest struct {
	Title        string   `json:"title" form:"title" binding:"required,min=3"`
	Description  string   `json:"description" form:"description"`
	Price        float64  `json:"price" form:"price" binding:"required,gt=0"`
	Currency     string   `json:"currency" form:"currency"`
	ListingType  string   `json:"listingType" form:"listingType" binding:"required"`
	PropertyType string   `json:"propertyType" form:"propertyType" binding:"required"`
	Bedrooms     *int     `json:"bedrooms" form:"bedrooms"`
	Bathrooms    *int     `json:"bathrooms" form:"bathrooms"`
	AreaSqFt     *float64 `json:"areaSqFt" form:"areaSqFt"`
	Address      string   `json:"address" form:"address" binding:"required,min=5"`
	City         string   `json:"city" form:"city" binding:"required"`
	State        string   `json:"state" form:"state" binding:"required"`
	Area         string   `json:"area" form:"area"`
	Country      string   `json:"country" form:"country"`
	ZipCode      string   `json:"zipCode" form:"zipCode"`
	Latitude     *float64 `json:"latitude" form:"latitude"`
	Longitude    *float64 `json:"longitude" form:"longitude"`
	Amenities    []string `json:"amenities" form:"amenities"`
	Images       []string `json:"images" form:"images"` // pre-existing image URLs
}

// normalizeAmenities flattens comma-joined form input into single entries.
func normalizeAmenities(in []string) []string {
	var out []string
	for _, a := range in {
		out = append(out, splitAndTrim(a, ",")...)
	}
	return out
}

// imageURLs flattens newline-joined textarea input into single URLs.
func imageURLs(in []string) []string {
	var out []string
	for _, raw := range in {
		out = append(out, splitAndTrim(raw, "\n")...)
	}
	return out
}

// saveUpload stores one uploaded file under dir and returns its public URL.
func saveUpload(c *gin.Context, fh *multipart.FileHeader, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("%d_%s", time.Now().UnixNano(), filepath.Base(fh.Filename))
	if err := c.SaveUploadedFile(fh, filepath.Join(dir, name)); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}

// CreateListingHandler creates a listing owned by the authenticated user.
// Image URLs and uploaded files are merged into one ordered image list, URLs
// first, then files in upload order.
func CreateListingHandler(listings *repository.ListingRepository, rdb *redis.Client, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := middleware.CurrentUser(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req createListingRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if !domain.ValidListingType(req.ListingType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing type"})
			return
		}
		if !domain.ValidPropertyType(req.PropertyType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property type"})
			return
		}

		urls := imageURLs(req.Images)
		if form, err := c.MultipartForm(); err == nil && form != nil {
			for _, fh := range form.File["images"] {
				url, err := saveUpload(c, fh, uploadDir)
				if err != nil {
					logrus.WithFields(logrus.Fields{
						"filename": fh.Filename,
						"error":    err.Error(),
					}).Error("Failed to store uploaded image")
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store uploaded image"})
					return
				}
				urls = append(urls, url)
			}
		}
		images := make([]domain.ListingImage, len(urls))
		for i, url := range urls {
			images[i] = domain.ListingImage{URL: url, Position: i}
		}

		listing := domain.Listing{
			Title:        req.Title,
			Description:  req.Description,
			Price:        req.Price,
			Currency:     req.Currency,
			ListingType:  req.ListingType,
			PropertyType: req.PropertyType,
			Bedrooms:     req.Bedrooms,
			Bathrooms:    req.Bathrooms,
			AreaSqFt:     req.AreaSqFt,
			Address:      req.Address,
			City:         req.City,
			State:        req.State,
			Area:         req.Area,
			Country:      req.Country,
			ZipCode:      req.ZipCode,
			Latitude:     req.Latitude,
			Longitude:    req.Longitude,
			Status:       domain.StatusActive,
			Amenities:    normalizeAmenities(req.Amenities),
			Images:       images,
			OwnerID:      user.ID,
		}
		if listing.Currency == "" {
			listing.Currency = "INR"
		}
		if listing.Country == "" {
			listing.Country = "India"
		}

		ctx := c.Request.Context()
		if err := listings.Create(ctx, &listing); err != nil {
			logrus.WithFields(logrus.Fields{
				"owner_id": user.ID,
				"error":    err.Error(),
			}).Error("Failed to create listing")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create listing"})
			return
		}
		// A new city/state may have appeared
		_ = utils.DeleteCache(ctx, rdb, utils.LocationsKey)

		logrus.WithFields(logrus.Fields{
			"listing_id": listing.ID,
			"owner_id":   user.ID,
			"city":       listing.City,
			"price":      listing.Price,
		}).Info("Listing created")

		created, err := listings.GetByID(ctx, listing.ID)
		if err != nil {
			c.JSON(http.StatusCreated, listing)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// updateListingRequest holds the optional fields of a partial update; only
// non-nil fields are applied.
type updateListingRequest struct {
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	Price        *float64  `json:"price"`
	Currency     *string   `json:"currency"`
	ListingType  *string   `json:"listingType"`
	PropertyType *string   `json:"propertyType"`
	Bedrooms     *int      `json:"bedrooms"`
	Bathrooms    *int      `json:"bathrooms"`
	AreaSqFt     *float64  `json:"areaSqFt"`
	Address      *string   `json:"address"`
	City         *string   `json:"city"`
	State        *string   `json:"state"`
	Area         *string   `json:"area"`
	ZipCode      *string   `json:"zipCode"`
	Latitude     *float64  `json:"latitude"`
	Longitude    *float64  `json:"longitude"`
	Status       *string   `json:"status"`
	Amenities    *[]string `json:"amenities"`
}

// canMutate applies the ownership rule: the listing's owner or an admin.
func canMutate(user middleware.AuthUser, l *domain.Listing) bool {
	return l.OwnerID == user.ID || user.Role == domain.RoleAdmin
}

// UpdateListingHandler applies a partial update to a listing. Only the owner
// or an admin may update; missing listings yield 404.
func UpdateListingHandler(listings *repository.ListingRepository, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := middleware.CurrentUser(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, err := paramUint(c, "id")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing id"})
			return
		}

		ctx := c.Request.Context()
		listing, err := listings.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch listing"})
			return
		}
		if !canMutate(user, listing) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to update this listing"})
			return
		}

		var req updateListingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if req.Price != nil && *req.Price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be a positive number"})
			return
		}
		if req.ListingType != nil && !domain.ValidListingType(*req.ListingType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing type"})
			return
		}
		if req.PropertyType != nil && !domain.ValidPropertyType(*req.PropertyType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property type"})
			return
		}
		if req.Status != nil && !domain.ValidStatus(*req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}

		if req.Title != nil {
			listing.Title = *req.Title
		}
		if req.Description != nil {
			listing.Description = *req.Description
		}
		if req.Price != nil {
			listing.Price = *req.Price
		}
		if req.Currency != nil {
			listing.Currency = *req.Currency
		}
		if req.ListingType != nil {
			listing.ListingType = *req.ListingType
		}
		if req.PropertyType != nil {
			listing.PropertyType = *req.PropertyType
		}
		if req.Bedrooms != nil {
			listing.Bedrooms = req.Bedrooms
		}
		if req.Bathrooms != nil {
			listing.Bathrooms = req.Bathrooms
		}
		if req.AreaSqFt != nil {
			listing.AreaSqFt = req.AreaSqFt
		}
		if req.Address != nil {
			listing.Address = *req.Address
		}
		if req.City != nil {
			listing.City = *req.City
		}
		if req.State != nil {
			listing.State = *req.State
		}
		if req.Area != nil {
			listing.Area = *req.Area
		}
		if req.ZipCode != nil {
			listing.ZipCode = *req.ZipCode
		}
		if req.Latitude != nil {
			listing.Latitude = req.Latitude
		}
		if req.Longitude != nil {
			listing.Longitude = req.Longitude
		}
		if req.Status != nil {
			listing.Status = *req.Status
		}
		if req.Amenities != nil {
			listing.Amenities = *req.Amenities
		}

		if err := listings.Save(ctx, listing); err != nil {
			logrus.WithFields(logrus.Fields{
				"listing_id": id,
				"user_id":    user.ID,
				"error":      err.Error(),
			}).Error("Failed to update listing")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update listing"})
			return
		}
		_ = utils.DeleteCache(ctx, rdb, utils.ListingKey(id), utils.LocationsKey)

		logrus.WithFields(logrus.Fields{
			"listing_id": id,
			"user_id":    user.ID,
		}).Info("Listing updated")

		updated, err := listings.GetByID(ctx, id)
		if err != nil {
			c.JSON(http.StatusOK, listing)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// DeleteListingHandler removes a listing and its favorites. Only the owner
// or an admin may delete.
func DeleteListingHandler(listings *repository.ListingRepository, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := middleware.CurrentUser(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, err := paramUint(c, "id")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing id"})
			return
		}

		ctx := c.Request.Context()
		listing, err := listings.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch listing"})
			return
		}
		if !canMutate(user, listing) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to delete this listing"})
			return
		}

		if err := listings.Delete(ctx, id); err != nil {
			logrus.WithFields(logrus.Fields{
				"listing_id": id,
				"user_id":    user.ID,
				"error":      err.Error(),
			}).Error("Failed to delete listing")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete listing"})
			return
		}
		_ = utils.DeleteCache(ctx, rdb, utils.ListingKey(id), utils.LocationsKey)

		logrus.WithFields(logrus.Fields{
			"listing_id": id,
			"user_id":    user.ID,
		}).Info("Listing deleted")
		c.JSON(http.StatusOK, gin.H{"message": "Listing deleted successfully"})
	}
}

// LocationsHandler returns the distinct cities and states, sorted, cached
// under a single key
func LocationsHandler(listings *repository.ListingRepository, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var cached struct {
			Cities []string `json:"cities"`
			States []string `json:"states"`
		}
		if found, err := utils.GetCache(ctx, rdb, utils.LocationsKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, gin.H{"cities": cached.Cities, "states": cached.States})
			return
		}

		cities, states, err := listings.Locations(ctx)
		if err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to fetch locations")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch locations"})
			return
		}
		if cities == nil {
			cities = []string{}
		}
		if states == nil {
			states = []string{}
		}
		resp := gin.H{"cities": cities, "states": states}
		_ = utils.SetCache(ctx, rdb, utils.LocationsKey, resp, utils.CacheTTL)
		c.JSON(http.StatusOK, resp)
	}
}

// Request struct for compare
type CompareRequest struct {
	ListingIDs []uint `json:"listingIds" binding:"required,min=2"`
}

// CompareListingsHandler returns the listings matching the given ids; at
// least two ids are required
func CompareListingsHandler(listings *repository.ListingRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CompareRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "At least 2 listing IDs required"})
			return
		}
		result, err := listings.ByIDs(c.Request.Context(), req.ListingIDs)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compare listings"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"listings": result})
	}
}

// RecommendationsHandler returns up to limit ACTIVE listings matching the
// property types the user has favorited, excluding the user's own listings
func RecommendationsHandler(listings *repository.ListingRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := middleware.CurrentUser(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		limit, err := queryInt(c, "limit")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		n := 10
		if limit != nil && *limit > 0 {
			n = *limit
		}

		result, err := listings.Recommend(c.Request.Context(), user.ID, n)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": user.ID,
				"error":   err.Error(),
			}).Error("Failed to fetch recommendations")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recommendations"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"recommendations": result})
	}
}

// UserListingsHandler returns the caller's own listings regardless of status
func UserListingsHandler(listings *repository.ListingRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := middleware.CurrentUser(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		result, err := listings.ByOwner(c.Request.Context(), user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch listings"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"listings": result})
	}
}
