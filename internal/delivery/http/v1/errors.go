package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/A1ekseiPanov/task-management-system/internal/models"
	"github.com/A1ekseiPanov/task-management-system/internal/services"
)

var errInvalidRequestBody = errors.New("invalid request body")

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newAPIError(code int, message string) apiError {
	return apiError{
		Code:    code,
		Message: message,
	}
}

func (e apiError) Error() string {
	return e.Message
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, gin.H{"error": err.Message})
}

func newStatusTextError(status int) apiError {
	return newAPIError(status, http.StatusText(status))
}

func newBadRequestError(message string) apiError {
	return newAPIError(http.StatusBadRequest, message)
}

func newNotFoundError(message string) apiError {
	return newAPIError(http.StatusNotFound, message)
}

func newConflictError(message string) apiError {
	return newAPIError(http.StatusConflict, message)
}

func newForbiddenError(message string) apiError {
	return newAPIError(http.StatusForbidden, message)
}

// abortBindingError reports request-body validation failures as an
// aggregated list of per-field messages.
func abortBindingError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	messages := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		messages = append(messages, fieldErr.Error())
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"error":    "validation failed",
		"messages": messages,
	})
}

// abortServiceError maps domain sentinels to wire statuses: missing
// entities are 404, uniqueness violations 400, business-rule conflicts
// 409, the admin gate 403, everything uncategorized 500.
func abortServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrStatusNotFound),
		errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrCommentNotFound):
		abort(c, newNotFoundError(err.Error()))
	case errors.Is(err, services.ErrUserAlreadyExists),
		errors.Is(err, services.ErrStatusAlreadyExists),
		errors.Is(err, services.ErrTaskAlreadyExists),
		errors.Is(err, services.ErrPerformerAlreadyAdded),
		errors.Is(err, models.ErrInvalidPriority):
		abort(c, newBadRequestError(err.Error()))
	case errors.Is(err, services.ErrBadCredentials),
		errors.Is(err, services.ErrNotPerformer),
		errors.Is(err, services.ErrNotTaskMember),
		errors.Is(err, services.ErrCommentConflict),
		errors.Is(err, services.ErrPerformerNotAssigned),
		errors.Is(err, services.ErrStatusInUse):
		abort(c, newConflictError(err.Error()))
	case errors.Is(err, services.ErrAdminRequired):
		abort(c, newForbiddenError(err.Error()))
	default:
		abort(c, newStatusTextError(http.StatusInternalServerError))
	}
}
