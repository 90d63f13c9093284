// Package httpapi exposes the staffdesk HTTP surface: session endpoints
// (register/login/refresh/logout) and the bearer-protected employee CRUD.
package httpapi

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/staffdesk-io/staffdesk/internal/logging"
	"github.com/staffdesk-io/staffdesk/internal/server/auth"
	"github.com/staffdesk-io/staffdesk/internal/server/models"
	"github.com/staffdesk-io/staffdesk/internal/server/services"
)

// AuthFlows is the slice of AuthService the handlers need.
type AuthFlows interface {
	Register(ctx context.Context, username, password string) (*models.Credential, error)
	Login(ctx context.Context, username, password string) (*services.TokenPair, error)
	RefreshAccess(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, identity auth.Identity) error
}

// EmployeeFlows is the slice of EmployeeService the handlers need.
type EmployeeFlows interface {
	Get(ctx context.Context, id int64) (*models.Employee, string, error)
	List(ctx context.Context) ([]*models.Employee, error)
	Update(ctx context.Context, emp *models.Employee) error
	PartialUpdate(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) error
	AttachProfilePicture(ctx context.Context, id int64, filename string) (string, string, error)
	AdminUpdate(ctx context.Context, emp *models.Employee, pictureFilename string) (string, string, error)
}

type handlers struct {
	logger    logging.Logger
	auth      AuthFlows
	employees EmployeeFlows
}

// NewRouter builds the gin engine with all routes registered. Everything
// below the auth middleware requires a valid bearer access token.
func NewRouter(logger logging.Logger, authFlows AuthFlows, employeeFlows EmployeeFlows, accessSecret []byte) *gin.Engine {
	h := &handlers{
		logger:    logger,
		auth:      authFlows,
		employees: employeeFlows,
	}

	r := gin.New()
	r.Use(gin.Recovery())

	r.POST("/register", h.register)
	r.POST("/login", h.login)
	r.POST("/refresh-token", h.refreshToken)

	authorized := r.Group("/", AuthMiddleware(accessSecret))
	authorized.POST("/logout", h.logout)
	authorized.GET("/employees", h.getEmployee)
	authorized.GET("/all_employees", h.listEmployees)
	authorized.PUT("/employees", h.updateEmployee)
	authorized.PATCH("/employees", h.patchEmployee)
	authorized.DELETE("/employees", h.deleteEmployee)
	authorized.POST("/employees/profile-picture", h.attachProfilePicture)
	authorized.PUT("/admin/:id", h.adminUpdateEmployee)
	authorized.DELETE("/admin/:id", h.adminDeleteEmployee)

	return r
}
