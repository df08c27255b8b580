package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/A1ekseiPanov/task-management-system/internal/models"
	"github.com/A1ekseiPanov/task-management-system/internal/services"
)

type taskRequest struct {
	Header      string `json:"header" binding:"required"`
	Description string `json:"description" binding:"required,min=5"`
	StatusID    int64  `json:"status_id" binding:"required,min=1"`
	// Priority is 1-based: 1-low, 2-medium, 3-high.
	Priority int `json:"priority" binding:"required,min=1"`
}

type taskResponse struct {
	ID          int64           `json:"task_id"`
	Header      string          `json:"header"`
	Description string          `json:"description"`
	StatusID    int64           `json:"status_id"`
	Priority    models.Priority `json:"priority"`
	UserID      int64           `json:"user_id"`
	Created     time.Time       `json:"created"`
	Updated     time.Time       `json:"updated"`
}

func newTaskResponse(task *models.Task) taskResponse {
	return taskResponse{
		ID:          task.ID,
		Header:      task.Header,
		Description: task.Description,
		StatusID:    task.StatusID,
		Priority:    task.Priority,
		UserID:      task.UserID,
		Created:     task.Created,
		Updated:     task.Updated,
	}
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		abortUnauthorized(c, "not authenticated")
		return
	}

	var req taskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind request body")
		abortBindingError(c, err)
		return
	}

	task, err := h.tasks.Create(c, services.CreateTaskParams{
		Header:      req.Header,
		Description: req.Description,
		StatusID:    req.StatusID,
		Priority:    req.Priority,
		OwnerID:     identity.UserID,
	})
	if err != nil {
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newTaskResponse(task))
}

func (h *handlerImpl) HandleListTasks(c *gin.Context) {
	limit, offset, ok := parsePagination(c)
	if !ok {
		return
	}

	tasks, err := h.tasks.List(c, services.ListTasksParams{
		Header:      c.Query("header"),
		Description: c.Query("description"),
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		abortServiceError(c, err)
		return
	}

	response := make([]taskResponse, 0, len(tasks))
	for i := range tasks {
		response = append(response, newTaskResponse(&tasks[i]))
	}
	c.JSON(http.StatusOK, response)
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		abortUnauthorized(c, "not authenticated")
		return
	}

	taskID, ok := parseIDParam(c, "task_id")
	if !ok {
		return
	}

	var req taskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind request body")
		abortBindingError(c, err)
		return
	}

	err = h.tasks.Update(c, taskID, services.UpdateTaskParams{
		Header:      req.Header,
		Description: req.Description,
		StatusID:    req.StatusID,
		Priority:    req.Priority,
	}, identity.UserID)
	if err != nil {
		abortServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *handlerImpl) HandleUpdateTaskStatus(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		abortUnauthorized(c, "not authenticated")
		return
	}

	taskID, ok := parseIDParam(c, "task_id")
	if !ok {
		return
	}

	statusID, ok := parseIDParam(c, "status_id")
	if !ok {
		return
	}

	err := h.tasks.UpdateStatus(c, taskID, identity.UserID, statusID)
	if err != nil {
		abortServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		abortUnauthorized(c, "not authenticated")
		return
	}

	taskID, ok := parseIDParam(c, "task_id")
	if !ok {
		return
	}

	err := h.tasks.Delete(c, taskID, identity.UserID)
	if err != nil {
		abortServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *handlerImpl) HandleAddPerformer(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		abortUnauthorized(c, "not authenticated")
		return
	}

	taskID, ok := parseIDParam(c, "task_id")
	if !ok {
		return
	}

	performerID, ok := parseIDParam(c, "performer_id")
	if !ok {
		return
	}

	task, err := h.tasks.AddPerformer(c, taskID, identity.UserID, performerID)
	if err != nil {
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (h *handlerImpl) HandleListPerformers(c *gin.Context) {
	taskID, ok := parseIDParam(c, "task_id")
	if !ok {
		return
	}

	performers, err := h.tasks.Performers(c, taskID)
	if err != nil {
		abortServiceError(c, err)
		return
	}

	response := make([]userResponse, 0, len(performers))
	for i := range performers {
		response = append(response, newUserResponse(&performers[i]))
	}
	c.JSON(http.StatusOK, response)
}

func (h *handlerImpl) HandleRemovePerformer(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		abortUnauthorized(c, "not authenticated")
		return
	}

	taskID, ok := parseIDParam(c, "task_id")
	if !ok {
		return
	}

	performerID, ok := parseIDParam(c, "performer_id")
	if !ok {
		return
	}

	err := h.tasks.RemovePerformer(c, taskID, identity.UserID, performerID)
	if err != nil {
		abortServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
