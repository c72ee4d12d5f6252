package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/floroz/gavel-auctions/internal/domain/images"
	"github.com/floroz/gavel-auctions/internal/domain/users"
	"github.com/floroz/gavel-auctions/pkg/auth"
)

// UserService is the subset of users.Service the HTTP layer uses.
type UserService interface {
	auth.TokenResolver
	Register(ctx context.Context, cmd users.RegisterCommand) (int64, error)
	Login(ctx context.Context, email, password string) (*users.LoginResult, error)
	Logout(ctx context.Context, userID int64) error
	GetUser(ctx context.Context, id, viewerID int64) (*users.Profile, error)
	ModifyUser(ctx context.Context, cmd users.ModifyUserCommand) error
	GetUserImage(ctx context.Context, id int64) (*images.Image, error)
	SetUserImage(ctx context.Context, cmd users.SetImageCommand) (bool, error)
	DeleteUserImage(ctx context.Context, userID, requesterID int64) error
}

type UserHandler struct {
	svc    UserService
	logger *slog.Logger
}

func NewUserHandler(svc UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, logger: logger}
}

func (h *UserHandler) Register(r gin.IRoutes, requireLogin, optionalLogin gin.HandlerFunc) {
	r.POST("/users/register", h.register)
	r.POST("/users/login", h.login)
	r.POST("/users/logout", requireLogin, h.logout)
	r.GET("/users/:id", optionalLogin, h.get)
	r.PATCH("/users/:id", requireLogin, h.modify)
	r.GET("/users/:id/image", h.getImage)
	r.PUT("/users/:id/image", requireLogin, h.setImage)
	r.DELETE("/users/:id/image", requireLogin, h.deleteImage)
}

func (h *UserHandler) register(c *gin.Context) {
	var req registerRequest
	if err := bindJSON(c, &req); err != nil {
		badRequest(c, "Invalid user data")
		return
	}
	userID, err := h.svc.Register(c.Request.Context(), users.RegisterCommand{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, registerResponse{UserID: userID})
}

func (h *UserHandler) login(c *gin.Context) {
	var req loginRequest
	if err := bindJSON(c, &req); err != nil {
		badRequest(c, "Invalid login data")
		return
	}
	result, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, loginResponse{UserID: result.UserID, Token: result.Token})
}

func (h *UserHandler) logout(c *gin.Context) {
	userID, _ := auth.GetUserID(c.Request.Context())
	if err := h.svc.Logout(c.Request.Context(), userID); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *UserHandler) get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		badRequest(c, "Invalid user id")
		return
	}
	viewerID, _ := auth.GetUserID(c.Request.Context())

	profile, err := h.svc.GetUser(c.Request.Context(), id, viewerID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(profile))
}

func (h *UserHandler) modify(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		badRequest(c, "Invalid user id")
		return
	}
	var req modifyUserRequest
	if err := bindJSON(c, &req); err != nil {
		badRequest(c, "Invalid user data")
		return
	}
	requesterID, _ := auth.GetUserID(c.Request.Context())

	err := h.svc.ModifyUser(c.Request.Context(), users.ModifyUserCommand{
		UserID:      id,
		RequesterID: requesterID,
		Patch: users.UserPatch{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Password:  req.Password,
		},
		CurrentPassword: req.CurrentPassword,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *UserHandler) getImage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		badRequest(c, "Invalid user id")
		return
	}
	img, err := h.svc.GetUserImage(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Data(http.StatusOK, img.ContentType, img.Data)
}

func (h *UserHandler) setImage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		badRequest(c, "Invalid user id")
		return
	}
	data, ok, err := readImage(c)
	if err != nil {
		badRequest(c, "Invalid image")
		return
	}
	if !ok {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "Image too large"})
		return
	}
	requesterID, _ := auth.GetUserID(c.Request.Context())

	created, err := h.svc.SetUserImage(c.Request.Context(), users.SetImageCommand{
		UserID:      id,
		RequesterID: requesterID,
		ContentType: c.ContentType(),
		Data:        data,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(imageStatus(created))
}

func (h *UserHandler) deleteImage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		badRequest(c, "Invalid user id")
		return
	}
	requesterID, _ := auth.GetUserID(c.Request.Context())

	if err := h.svc.DeleteUserImage(c.Request.Context(), id, requesterID); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusOK)
}
