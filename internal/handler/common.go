// Package handler contains the HTTP handlers of the gateway. Handlers bind
// the raw form payload, hand it to the submission orchestrator and render
// either the saved entity or the first violation.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/aerogestion/aerogate/internal/store"
	"github.com/aerogestion/aerogate/internal/submit"
	"github.com/aerogestion/aerogate/internal/validate"
)

// errorBody is the JSON shape of a remote or internal failure. Local
// violations marshal themselves.
type errorBody struct {
	ErrorCode validate.Code `json:"error_code"`
	Message   string        `json:"message"`
}

// writeError renders any submission failure. Local violations are always
// 400; remote failures map their taxonomy code onto a status, with broker
// and transport trouble surfacing as 502.
func writeError(c echo.Context, err error) error {
	var v *validate.Violation
	if errors.As(err, &v) {
		return c.JSON(http.StatusBadRequest, v)
	}

	var re *store.RemoteError
	if errors.As(err, &re) {
		return c.JSON(remoteStatus(re.Code), errorBody{ErrorCode: re.Code, Message: re.Detail})
	}

	if errors.Is(err, submit.ErrSubmissionInFlight) {
		return c.JSON(http.StatusConflict, errorBody{ErrorCode: "SUBMISSION_IN_FLIGHT", Message: err.Error()})
	}

	return c.JSON(http.StatusInternalServerError, errorBody{ErrorCode: validate.CodeServerFault, Message: err.Error()})
}

func remoteStatus(code validate.Code) int {
	switch code {
	case validate.CodeDuplicateConflict:
		return http.StatusConflict
	case validate.CodeSessionExpired:
		return http.StatusUnauthorized
	case validate.CodeForbidden:
		return http.StatusForbidden
	case validate.CodeNotFound:
		return http.StatusNotFound
	case validate.CodeUnprocessablePayload:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
