package auth

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
)

// EmployeeFromContext returns the employee identity carried by the verified
// JWT in the request context. Replaces the ambient PHP-style session state:
// every operation that needs the caller's employee id takes it from here.
func EmployeeFromContext(ctx context.Context) (int64, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	raw, ok := claims["employee_id"]
	if !ok || raw == nil {
		return 0, ErrNoEmployeeProfile
	}

	// jwx decodes JSON numbers differently depending on the path the token
	// took (encode vs parse), so accept all of them.
	switch v := raw.(type) {
	case int64:
		return v, nil
	case float64:
		return int64(v), nil
	case json.Number:
		id, err := v.Int64()
		if err != nil {
			return 0, ErrNoEmployeeProfile
		}
		return id, nil
	default:
		return 0, ErrNoEmployeeProfile
	}
}

// UserFromContext returns the authenticated user id and role.
func UserFromContext(ctx context.Context) (userID string, role string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", ErrInvalidToken
	}
	role, _ = claims["role"].(string)
	return userID, role, nil
}
