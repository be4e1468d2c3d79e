package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/tasknest-api/internal/constants"
	apierrors "github.com/yukikurage/tasknest-api/internal/errors"
	"github.com/yukikurage/tasknest-api/internal/middleware"
	"github.com/yukikurage/tasknest-api/internal/services"
	"github.com/yukikurage/tasknest-api/internal/taskview"
	"github.com/yukikurage/tasknest-api/internal/validation"
)

// respondBindError reports a malformed or invalid request body.
func respondBindError(c *gin.Context, err error) {
	if fields := validation.FieldErrors(err); fields != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", gin.H{"fields": fields})
		return
	}
	apierrors.BadRequest(c, "Invalid request body")
}

// respondServiceError maps service errors onto HTTP responses.
func respondServiceError(c *gin.Context, err error) {
	var (
		validationErr *services.ValidationError
		authzErr      *services.AuthorizationError
		notFoundErr   *services.NotFoundError
		dateErr       *taskview.DateParseError
		storageErr    *services.StorageError
	)

	switch {
	case errors.As(err, &validationErr):
		apierrors.BadRequestWithDetails(c, validationErr.Error(), gin.H{"field": validationErr.Field})
	case errors.As(err, &authzErr):
		apierrors.Forbidden(c, "You do not own this task")
	case errors.As(err, &notFoundErr):
		apierrors.NotFound(c, fmt.Sprintf("%s not found", notFoundErr.Resource))
	case errors.As(err, &dateErr):
		logServiceError(c, err)
		apierrors.UnprocessableEntity(c, "A stored due date is malformed", gin.H{
			"task_id": dateErr.TaskID,
			"value":   dateErr.Value,
		})
	case errors.As(err, &storageErr):
		logServiceError(c, err)
		apierrors.ServiceUnavailable(c, "")
	case errors.Is(err, services.ErrUsernameTaken), errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.ServiceUnavailable(c, "AI service is not configured. Please set OPENAI_API_KEY environment variable.")
	case errors.Is(err, services.ErrAINoTasksGenerated),
		errors.Is(err, services.ErrAINoValidTasks),
		errors.Is(err, services.ErrAITooManyTasks):
		apierrors.UnprocessableEntity(c, err.Error(), nil)
	default:
		logServiceError(c, err)
		apierrors.InternalError(c, "")
	}
}

func logServiceError(c *gin.Context, err error) {
	userID, _ := c.Get(constants.ContextKeyUserID)
	log.Printf("[handlers] request_id=%s user=%v %s %s: %v",
		middleware.GetRequestID(c), userID, c.Request.Method, c.FullPath(), err)
}
