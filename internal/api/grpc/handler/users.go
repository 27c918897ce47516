package handler

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dtroode/userdesk-server/internal/api/grpc/userdeskv1"
	"github.com/dtroode/userdesk-server/internal/api/resource"
	"github.com/dtroode/userdesk-server/internal/logger"
)

var _ userdeskv1.UsersServer = (*Users)(nil)

// Users handles gRPC endpoints for the users resource.
type Users struct {
	users  *resource.Users
	logger *logger.Logger
}

// NewUsers creates a new Users handler.
func NewUsers(users *resource.Users, logger *logger.Logger) *Users {
	return &Users{
		users:  users,
		logger: logger,
	}
}

func (h *Users) List(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return h.reply(h.users.List(ctx))
}

// Create takes the user document as the request itself.
func (h *Users) Create(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	body, err := protojson.Marshal(req)
	if err != nil {
		return nil, handleError(resource.Malformed())
	}

	return h.reply(h.users.Create(ctx, body))
}

// Get answers an absent record with OK and success false, like the HTTP bindings.
func (h *Users) Get(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := storeID(req)
	if err != nil {
		return nil, err
	}

	return h.reply(h.users.Get(ctx, id))
}

// Update expects {"_id": ..., "user": {...}}.
func (h *Users) Update(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := storeID(req)
	if err != nil {
		return nil, err
	}

	user := req.GetFields()[userdeskv1.FieldUser].GetStructValue()
	if user == nil {
		return nil, status.Errorf(codes.InvalidArgument, "%s must be an object", userdeskv1.FieldUser)
	}

	body, err := protojson.Marshal(user)
	if err != nil {
		return nil, handleError(resource.Malformed())
	}

	return h.reply(h.users.Update(ctx, id, body))
}

func (h *Users) Delete(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := storeID(req)
	if err != nil {
		return nil, err
	}

	return h.reply(h.users.Delete(ctx, id))
}

func (h *Users) reply(res resource.Result) (*structpb.Struct, error) {
	if res.Status >= 400 {
		return nil, handleError(res)
	}

	out, err := toStruct(res.Envelope)
	if err != nil {
		h.logger.Error("failed to encode envelope", "error", err.Error())
		return nil, status.Error(codes.Internal, resource.MsgInternalServerErr)
	}

	return out, nil
}

func storeID(req *structpb.Struct) (string, error) {
	id := req.GetFields()[userdeskv1.FieldStoreID].GetStringValue()
	if id == "" {
		return "", status.Errorf(codes.InvalidArgument, "%s is required", userdeskv1.FieldStoreID)
	}
	return id, nil
}

func toStruct(env resource.Envelope) (*structpb.Struct, error) {
	b, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal envelope: %w", err)
	}

	out := &structpb.Struct{}
	if err := protojson.Unmarshal(b, out); err != nil {
		return nil, fmt.Errorf("failed to convert envelope: %w", err)
	}

	return out, nil
}
