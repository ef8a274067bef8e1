package api

import (
	"fmt"
	"strconv"
	"strings"

	"estatehub/internal/domain"

	"github.com/gin-gonic/gin"
)

// queryFloat parses an optional float query parameter. Both return values
// are nil when the parameter is absent; a malformed value is an error so the
// caller can reject the request instead of silently corrupting the query.
func queryFloat(c *gin.Context, name string) (*float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s parameter", name)
	}
	return &v, nil
}

// queryInt parses an optional integer query parameter, same contract as
// queryFloat.
func queryInt(c *gin.Context, name string) (*int, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s parameter", name)
	}
	return &v, nil
}

// queryUint parses an optional unsigned integer query parameter.
func queryUint(c *gin.Context, name string) (*uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid %s parameter", name)
	}
	u := uint(v)
	return &u, nil
}

// paramUint parses a required numeric path parameter.
func paramUint(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return uint(v), nil
}

// userResponse is the public projection of a user, used by auth responses.
func userResponse(u *domain.User) gin.H {
	return gin.H{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"phone": u.Phone,
		"role":  u.Role,
	}
}

// splitAndTrim splits raw on sep and drops empty entries.
func splitAndTrim(raw, sep string) []string {
	var out []string
	for _, part := range strings.Split(raw, sep) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
