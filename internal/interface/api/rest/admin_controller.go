package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"file-manager-api/internal/application/ports"
	"file-manager-api/internal/application/services"
	domain "file-manager-api/internal/domain/profile"
	"file-manager-api/internal/interface/api/rest/dto/auth"
	"file-manager-api/internal/interface/api/rest/dto/profile"
	"file-manager-api/internal/interface/api/rest/middleware"
	"file-manager-api/internal/interface/api/rest/validator"
)

type AdminController struct {
	adminService ports.AdminService
	logger       *zap.Logger
}

func NewAdminController(
	r *gin.Engine,
	adminService ports.AdminService,
	logger *zap.Logger,
	authMW gin.HandlerFunc,
	adminMW gin.HandlerFunc,
) *AdminController {
	adc := &AdminController{
		adminService: adminService,
		logger:       logger,
	}

	r.GET(RouteAdmin, authMW, adminMW, adc.ListUsersHandler)
	r.POST(RouteAdminCreateUser, authMW, adminMW, adc.CreateUserHandler)
	r.DELETE(RouteAdminDeleteUser, authMW, adminMW, adc.DeleteUserHandler)

	return adc
}

func (adc *AdminController) ListUsersHandler(c *gin.Context) {
	users, err := adc.adminService.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to fetch users"},
		)
		adc.logger.Error("ListUsers() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, profile.UsersResponse{
		Users: profile.ToListedUsers(users),
	})
}

func (adc *AdminController) CreateUserHandler(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "invalid json"},
		)
		return
	}

	role, errs := validator.ValidateRegister(req)
	if errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	p, err := adc.adminService.CreateUser(c.Request.Context(), ports.NewUser{
		Email:    req.Email,
		Password: req.Password,
		Username: req.Username,
		Role:     role,
	})
	if err != nil {
		if errors.Is(err, services.ErrRegistrationRejected) {
			adc.logger.Info("user creation rejected", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to create user"})
			return
		}
		adc.logger.Error("CreateUser() error", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to create user profile"},
		)
		return
	}

	c.JSON(http.StatusCreated, profile.UserResponse{
		Message: "user created successfully",
		User:    profile.ToResponseUser(*p),
	})
}

func (adc *AdminController) DeleteUserHandler(c *gin.Context) {
	id, err := validator.ParseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	err = adc.adminService.DeleteUser(c.Request.Context(), c.GetString(middleware.CtxIdentityID), domain.ID(id))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "user deleted successfully"})
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	case errors.Is(err, services.ErrSelfDeletion):
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot delete your own account"})
	case errors.Is(err, services.ErrIdentityDeletion):
		adc.logger.Error("DeleteUser() error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete user from identity provider"})
	default:
		adc.logger.Error("DeleteUser() error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete user"})
	}
}
