package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// validate uses the same rules as gin's binding tags.
var validate = validator.New()

// NormalizeEmail lower-cases and trims an address so lookups and hashes are
// stable regardless of how the user typed it.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidateEmail(email string) bool {
	return len(email) <= 254 && validate.Var(email, "required,email") == nil
}

// GetQueryParamAsFloat returns defaultValue when the parameter is absent and
// an error when it is present but not a finite, non-negative number.
func GetQueryParamAsFloat(c *gin.Context, paramName string, defaultValue float64) (float64, error) {
	raw := strings.TrimSpace(c.Query(paramName))
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, fmt.Errorf("invalid %s", paramName)
	}
	return v, nil
}
