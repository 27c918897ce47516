package handler

import (
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/userdesk-server/internal/api/resource"
)

func codeFor(httpStatus int) codes.Code {
	switch httpStatus {
	case http.StatusBadRequest:
		return codes.InvalidArgument
	case http.StatusUnauthorized:
		return codes.Unauthenticated
	case http.StatusNotFound:
		return codes.NotFound
	default:
		return codes.Internal
	}
}

// handleError converts a failed result into a status error carrying the
// envelope message.
func handleError(res resource.Result) error {
	return status.Error(codeFor(res.Status), res.Envelope.Message)
}
