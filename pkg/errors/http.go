package custom_error

import (
	"errors"
	"net/http"
)

// HTTPStatus maps the error taxonomy onto response codes: local validation is the
// caller's fault, a business rejection is unprocessable, and anything that went
// wrong talking to the backend is a bad gateway.
func HTTPStatus(err error) int {
	var custom CustomError
	if !errors.As(err, &custom) {
		return http.StatusInternalServerError
	}

	switch custom.Code() {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeBackendRejected:
		return http.StatusUnprocessableEntity
	case CodeRequestError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func CodeOf(err error) string {
	var custom CustomError
	if errors.As(err, &custom) {
		return custom.Code()
	}
	return "INTERNAL_ERROR"
}

// ResponseBody is the JSON error body every handler sends for err.
func ResponseBody(err error) map[string]interface{} {
	return map[string]interface{}{
		"success": false,
		"error":   CodeOf(err),
		"message": UserMessage(err),
		"details": err.Error(),
	}
}
