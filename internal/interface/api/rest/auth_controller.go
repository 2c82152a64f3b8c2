package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"file-manager-api/internal/application/ports"
	"file-manager-api/internal/application/services"
	"file-manager-api/internal/interface/api/rest/dto/auth"
	"file-manager-api/internal/interface/api/rest/dto/profile"
	"file-manager-api/internal/interface/api/rest/middleware"
	"file-manager-api/internal/interface/api/rest/validator"
)

type AuthController struct {
	logger      *zap.Logger
	authService ports.AuthService
}

func NewAuthController(
	r *gin.Engine,
	logger *zap.Logger,
	authService ports.AuthService,
	authMW gin.HandlerFunc,
) *AuthController {
	ac := &AuthController{
		logger:      logger,
		authService: authService,
	}

	r.POST(RouteRegister, ac.RegisterHandler)
	r.POST(RouteLogin, ac.LoginHandler)
	r.POST(RouteLogout, authMW, ac.LogoutHandler)
	r.GET(RouteProfile, authMW, ac.ProfileHandler)

	return ac
}

func (ac *AuthController) RegisterHandler(c *gin.Context) {
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

	p, err := ac.authService.Register(c.Request.Context(), ports.NewUser{
		Email:    req.Email,
		Password: req.Password,
		Username: req.Username,
		Role:     role,
	})
	if err != nil {
		if errors.Is(err, services.ErrRegistrationRejected) {
			ac.logger.Info("registration rejected", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "registration failed"})
			return
		}
		ac.logger.Error("Register() error", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "registration failed, please try again"},
		)
		return
	}

	c.JSON(http.StatusCreated, profile.UserResponse{
		Message: "user registered successfully",
		User:    profile.ToResponseUser(*p),
	})
}

func (ac *AuthController) LoginHandler(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "invalid json"},
		)
		return
	}

	if errs := validator.ValidateLogin(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "email and password are required",
			"details": errs,
		})
		return
	}

	p, sess, err := ac.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}
		ac.logger.Error("Login() error", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "internal server error"},
		)
		return
	}

	c.JSON(http.StatusOK, auth.LoginResponse{
		Message:      "login successful",
		AccessToken:  sess.AccessToken,
		RefreshToken: sess.RefreshToken,
		User:         profile.ToResponseUser(*p),
	})
}

func (ac *AuthController) LogoutHandler(c *gin.Context) {
	if err := ac.authService.Logout(c.Request.Context(), c.GetString(middleware.CtxAccessToken)); err != nil {
		ac.logger.Info("Logout() error", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "logout failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out successfully"})
}

func (ac *AuthController) ProfileHandler(c *gin.Context) {
	p, err := ac.authService.Profile(c.Request.Context(), c.GetString(middleware.CtxIdentityID))
	if err != nil {
		ac.logger.Error("Profile() error", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get profile"},
		)
		return
	}

	c.JSON(http.StatusOK, profile.UserResponse{User: profile.ToResponseUser(*p)})
}
