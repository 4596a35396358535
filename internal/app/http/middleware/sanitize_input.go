package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

// sanitizeValue strips markup from every string reachable in a decoded JSON
// value, recursing through objects and arrays in place.
func sanitizeValue(policy *bluemonday.Policy, v interface{}) interface{} {
	switch t := v.(type) {
	case string:
		return policy.Sanitize(t)
	case map[string]interface{}:
		for k, elem := range t {
			t[k] = sanitizeValue(policy, elem)
		}
		return t
	case []interface{}:
		for i, elem := range t {
			t[i] = sanitizeValue(policy, elem)
		}
		return t
	default:
		return v
	}
}

// SanitizePublicInput rewrites JSON write bodies with all markup stripped
// before they reach binding. It guards the unauthenticated surface —
// registration, sign-in and the contact form — which accepts free text from
// anyone; admin routes are not wrapped, so admin-authored content (blog
// posts, service descriptions) keeps its markup.
func SanitizePublicInput() gin.HandlerFunc {
	policy := bluemonday.StrictPolicy()

	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			c.Next()
			return
		}

		buf, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid body"})
			return
		}
		if len(buf) == 0 {
			c.Next()
			return
		}

		var body interface{}
		if err := json.Unmarshal(buf, &body); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Malformed JSON"})
			return
		}

		clean, err := json.Marshal(sanitizeValue(policy, body))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Malformed JSON"})
			return
		}

		c.Request.Body = io.NopCloser(bytes.NewBuffer(clean))
		c.Request.ContentLength = int64(len(clean))

		c.Next()
	}
}
