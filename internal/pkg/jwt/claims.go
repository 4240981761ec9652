package jwt

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/go-chi/jwtauth/v5"
)

// ClaimsFromContext reads the claims jwtauth.Verifier stored in ctx.
func ClaimsFromContext(ctx context.Context) (Claims, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Claims{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, err := int64Claim(claims, "employee_id")
	if err != nil {
		return Claims{}, err
	}
	groupID, err := int64Claim(claims, "group_id")
	if err != nil {
		return Claims{}, err
	}
	role, _ := claims["role"].(string)

	return Claims{EmployeeID: employeeID, GroupID: groupID, Role: role}, nil
}

// Numeric private claims come back as float64 after a round trip, and
// as json.Number or int64 depending on the decoder.
func int64Claim(claims map[string]interface{}, key string) (int64, error) {
	switch v := claims[key].(type) {
	case float64:
		return int64(v), nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case json.Number:
		return v.Int64()
	case string:
		return strconv.ParseInt(v, 10, 64)
	case nil:
		return 0, fmt.Errorf("%s claim is missing", key)
	default:
		return 0, fmt.Errorf("%s claim has unexpected type %T", key, v)
	}
}
