// Package resource implements the users resource independent of transport.
// Every binding renders the Result it gets back without reinterpreting it.
package resource

import (
	"context"
	"errors"
	"net/http"

	"github.com/dtroode/userdesk-server/internal/logger"
	"github.com/dtroode/userdesk-server/internal/model"
)

// Response messages.
const (
	MsgDatabaseError     = "Database error"
	MsgInvalidInput      = "Invalid JSON or Database error"
	MsgUserNotFound      = "User not found"
	MsgUserDeleted       = "User deleted successfully"
	MsgRouteNotFound     = "Route not found"
	MsgUnauthorized      = "Unauthorized"
	MsgInternalServerErr = "Internal server error"
)

// UserService defines user record operations.
type UserService interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	CreateUser(ctx context.Context, in model.UserInput) (model.User, error)
	GetUser(ctx context.Context, storeID string) (model.User, error)
	UpdateUser(ctx context.Context, storeID string, profile model.Profile) (model.User, error)
	DeleteUser(ctx context.Context, storeID string) error
}

// Envelope is the body of every response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// Result pairs an envelope with the status it is sent with.
type Result struct {
	Status   int
	Envelope Envelope
}

func ok(data any) Result {
	return Result{Status: http.StatusOK, Envelope: Envelope{Success: true, Data: data}}
}

func fail(status int, msg string) Result {
	return Result{Status: status, Envelope: Envelope{Success: false, Message: msg}}
}

// Users shapes responses for the users resource.
type Users struct {
	userService UserService
	logger      *logger.Logger
}

func NewUsers(userService UserService, logger *logger.Logger) *Users {
	return &Users{
		userService: userService,
		logger:      logger,
	}
}

func (u *Users) List(ctx context.Context) Result {
	users, err := u.userService.ListUsers(ctx)
	if err != nil {
		u.logger.Error("failed to list users", "error", err.Error())
		return fail(http.StatusInternalServerError, MsgDatabaseError)
	}

	if users == nil {
		users = []model.User{}
	}

	return ok(users)
}

// Create answers 200 on success, not 201; clients depend on it.
func (u *Users) Create(ctx context.Context, body []byte) Result {
	in, err := model.ParseUser(body)
	if err != nil {
		u.logger.Debug("rejected user body", "op", "create", "error", err.Error())
		return Malformed()
	}

	user, err := u.userService.CreateUser(ctx, in)
	if err != nil {
		u.logger.Error("failed to create user", "error", err.Error())
		return fail(http.StatusBadRequest, MsgInvalidInput)
	}

	return ok(user)
}

// Get reports an absent record as a 200 with success false.
func (u *Users) Get(ctx context.Context, storeID string) Result {
	user, err := u.userService.GetUser(ctx, storeID)
	if errors.Is(err, model.ErrNotFound) {
		return fail(http.StatusOK, MsgUserNotFound)
	}
	if err != nil {
		u.logger.Error("failed to get user", "store_id", storeID, "error", err.Error())
		return fail(http.StatusInternalServerError, MsgDatabaseError)
	}

	return ok(user)
}

func (u *Users) Update(ctx context.Context, storeID string, body []byte) Result {
	in, err := model.ParseUser(body)
	if err != nil {
		u.logger.Debug("rejected user body", "op", "update", "error", err.Error())
		return Malformed()
	}

	user, err := u.userService.UpdateUser(ctx, storeID, in.Profile)
	if errors.Is(err, model.ErrNotFound) {
		return fail(http.StatusNotFound, MsgUserNotFound)
	}
	if err != nil {
		u.logger.Error("failed to update user", "store_id", storeID, "error", err.Error())
		return fail(http.StatusBadRequest, MsgInvalidInput)
	}

	return ok(user)
}

func (u *Users) Delete(ctx context.Context, storeID string) Result {
	err := u.userService.DeleteUser(ctx, storeID)
	if errors.Is(err, model.ErrNotFound) {
		return fail(http.StatusNotFound, MsgUserNotFound)
	}
	if err != nil {
		u.logger.Error("failed to delete user", "store_id", storeID, "error", err.Error())
		return fail(http.StatusInternalServerError, MsgDatabaseError)
	}

	return Result{Status: http.StatusOK, Envelope: Envelope{Success: true, Message: MsgUserDeleted}}
}

// Malformed is the answer to a body that could not be read or parsed.
func Malformed() Result {
	return fail(http.StatusBadRequest, MsgInvalidInput)
}

func RouteNotFound() Result {
	return fail(http.StatusNotFound, MsgRouteNotFound)
}

func Unauthorized() Result {
	return fail(http.StatusUnauthorized, MsgUnauthorized)
}

// Internal is rendered for a recovered panic.
func Internal() Result {
	return fail(http.StatusInternalServerError, MsgInternalServerErr)
}
