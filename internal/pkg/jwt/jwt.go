package jwt

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Identity is the authenticated caller extracted from JWT claims. The
// payroll core does not issue credentials; it only consumes the identity a
// front-door auth service minted.
type Identity struct {
	UserID     string
	CompanyID  string
	EmployeeID string
	Role       string
}

// RolePayrollAdmin may approve runs it created itself (separation-of-duties
// override). Any other role is rejected on self-approval.
const (
	RolePayrollAdmin = "PAYROLL_ADMIN"
	RoleManager      = "MANAGER"
	RoleEmployee     = "EMPLOYEE"
)

func (i Identity) HasApprovalOverride() bool {
	return i.Role == RolePayrollAdmin
}

// Service verifies upstream-issued tokens; this system never mints its own.
type Service interface {
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// IdentityFromContext extracts the caller identity from the request JWT.
func IdentityFromContext(ctx context.Context) (Identity, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Identity{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return Identity{}, fmt.Errorf("company_id claim is missing or invalid")
	}

	userID, _ := claims["user_id"].(string)
	employeeID, _ := claims["employee_id"].(string)
	role, _ := claims["role"].(string)

	return Identity{
		UserID:     userID,
		CompanyID:  companyID,
		EmployeeID: employeeID,
		Role:       role,
	}, nil
}
