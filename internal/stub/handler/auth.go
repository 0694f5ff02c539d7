package handler

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/infocast/infocast/internal/core/domain"
	"github.com/infocast/infocast/internal/core/ports"
	"github.com/infocast/infocast/internal/stub/memory"
)

// AuthHandler implements the identity endpoints of the contract.
type AuthHandler struct {
	store     *memory.Store
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthHandler(store *memory.Store, jwtSecret string, tokenTTL time.Duration) *AuthHandler {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthHandler{store: store, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	// Role is a dev convenience: the stub lets a caller register as
	// admin so owner/admin paths can be exercised locally.
	Role string `json:"role" validate:"omitempty,oneof=user admin"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type dataResponse struct {
	Data any `json:"data"`
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.Role == "" {
		req.Role = domain.RoleUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user, err := h.store.CreateUser(req.Username, req.Email, string(hash), req.Role)
	if err != nil {
		return err
	}

	token, err := h.generateToken(user)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{Token: token, User: user})
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, hash, err := h.store.FindUserByEmail(req.Email)
	if err != nil {
		return domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		return domain.ErrInvalidCredentials
	}

	token, err := h.generateToken(user)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, _ := c.Get("userID").(string)
	user, err := h.store.GetUser(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Token is not valid")
	}
	return c.JSON(http.StatusOK, dataResponse{Data: user})
}

// UpdateMe handles PUT /api/auth/me.
func (h *AuthHandler) UpdateMe(c echo.Context) error {
	var req ports.ProfileUpdate
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	userID, _ := c.Get("userID").(string)
	user, err := h.store.UpdateUser(userID, req.Username, req.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: user})
}

func (h *AuthHandler) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"exp":  time.Now().Add(h.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(h.jwtSecret))
}
