package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/A1ekseiPanov/task-management-system/internal/auth"
	"github.com/A1ekseiPanov/task-management-system/internal/services"
)

type Handler interface {
	HandleRegister(c *gin.Context)
	HandleLogin(c *gin.Context)
	HandleAuthMiddleware(c *gin.Context)

	HandleCreateStatus(c *gin.Context)
	HandleListStatuses(c *gin.Context)
	HandleUpdateStatus(c *gin.Context)
	HandleDeleteStatus(c *gin.Context)

	HandleCreateTask(c *gin.Context)
	HandleListTasks(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleUpdateTaskStatus(c *gin.Context)
	HandleDeleteTask(c *gin.Context)

	HandleAddPerformer(c *gin.Context)
	HandleListPerformers(c *gin.Context)
	HandleRemovePerformer(c *gin.Context)

	HandleAddComment(c *gin.Context)
	HandleListComments(c *gin.Context)
	HandleUpdateComment(c *gin.Context)
	HandleDeleteComment(c *gin.Context)
}

type handlerImpl struct {
	logger   zerolog.Logger
	tokens   *auth.TokenCodec
	users    *services.UserService
	statuses *services.StatusService
	tasks    *services.TaskService
	comments *services.CommentService
}

func New(
	logger zerolog.Logger,
	tokens *auth.TokenCodec,
	userService *services.UserService,
	statusService *services.StatusService,
	taskService *services.TaskService,
	commentService *services.CommentService,
) Handler {
	return &handlerImpl{
		logger:   logger,
		tokens:   tokens,
		users:    userService,
		statuses: statusService,
		tasks:    taskService,
		comments: commentService,
	}
}
