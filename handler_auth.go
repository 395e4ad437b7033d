package main

import (
	"net/http"

	"github.com/essomba/schoolhub/cache"
	"github.com/essomba/schoolhub/model"
	"github.com/essomba/schoolhub/repository"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	repo       repository.UserRepository
	jwtService *JWTService
	store      cache.Store
}

func NewAuthHandler(repo repository.UserRepository, jwtService *JWTService, store cache.Store) *AuthHandler {
	return &AuthHandler{
		repo:       repo,
		jwtService: jwtService,
		store:      store,
	}
}

// Register handles account registration for every role.
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	user, err := h.repo.CreateUser(req.ToCreateUserRequest())
	if err != nil {
		handleError(c, err)
		return
	}

	if !invalidateOrAbort(c, h.store, cache.ListPattern("users")) {
		return
	}

	c.JSON(http.StatusCreated, user.ToUserResponse())
}

// Login handles authentication and token issuance.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	user, err := h.repo.GetUserByEmail(req.Email)
	if err != nil || !h.repo.ValidatePassword(user, req.Password) {
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{
			Error:   "authentication_failed",
			Message: "Invalid email or password",
		})
		return
	}

	token, err := h.jwtService.GenerateToken(user)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int(tokenLifetime.Seconds()),
		User:        *user.ToUserResponse(),
	})
}

// GetUser returns a single account.
func (h *AuthHandler) GetUser(c *gin.Context) {
	user, err := h.repo.GetUserByID(c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	respondCached(c, h.store, user.ToUserResponse())
}

// ListUsers lists accounts, optionally filtered by role.
func (h *AuthHandler) ListUsers(c *gin.Context) {
	filter := parseListFilter(c)

	users, total, err := h.repo.ListUsers(c.Query("role"), filter)
	if err != nil {
		handleError(c, err)
		return
	}

	response := model.UserListResponse{
		Users:      make([]model.UserResponse, 0, len(users)),
		Pagination: model.NewPagination(filter, total),
	}
	for i := range users {
		response.Users = append(response.Users, *users[i].ToUserResponse())
	}

	respondCached(c, h.store, response)
}
