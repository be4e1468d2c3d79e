package middleware

import (
	"errors"
	"log"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/tasknest-api/internal/constants"
	apierrors "github.com/yukikurage/tasknest-api/internal/errors"
	"github.com/yukikurage/tasknest-api/internal/models"
	"github.com/yukikurage/tasknest-api/internal/services"
)

// TaskLoader loads a task on behalf of an actor.
type TaskLoader func(taskID, actorID uint64) (*models.Task, error)

// RequireTaskAccess loads the task named by the :id parameter with load and
// stores it in the context. Missing tasks get 404; tasks of other users get 403.
func RequireTaskAccess(load TaskLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid task ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		task, err := load(taskID, userID)
		if err != nil {
			var (
				notFound *services.NotFoundError
				denied   *services.AuthorizationError
			)
			switch {
			case errors.As(err, &notFound):
				apierrors.NotFound(c, "Task not found")
			case errors.As(err, &denied):
				apierrors.Forbidden(c, "You do not own this task")
			default:
				log.Printf("[middleware] request_id=%s failed to load task %d: %v", GetRequestID(c), taskID, err)
				apierrors.ServiceUnavailable(c, "")
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyTask, task)
		c.Next()
	}
}

// GetTask returns the task stored by RequireTaskAccess.
func GetTask(c *gin.Context) (*models.Task, bool) {
	value, exists := c.Get(constants.ContextKeyTask)
	if !exists {
		return nil, false
	}
	task, ok := value.(*models.Task)
	return task, ok
}
