package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/A1ekseiPanov/task-management-system/internal/models"
)

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

type statusResponse struct {
	ID     int64  `json:"status_id"`
	Status string `json:"status"`
}

func newStatusResponse(status *models.Status) statusResponse {
	return statusResponse{
		ID:     status.ID,
		Status: status.Name,
	}
}

func (h *handlerImpl) HandleCreateStatus(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		abortUnauthorized(c, "not authenticated")
		return
	}

	var req statusRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind request body")
		abortBindingError(c, err)
		return
	}

	status, err := h.statuses.Create(c, identity, req.Status)
	if err != nil {
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newStatusResponse(status))
}

func (h *handlerImpl) HandleListStatuses(c *gin.Context) {
	statuses, err := h.statuses.List(c)
	if err != nil {
		abortServiceError(c, err)
		return
	}

	response := make([]statusResponse, 0, len(statuses))
	for i := range statuses {
		response = append(response, newStatusResponse(&statuses[i]))
	}
	c.JSON(http.StatusOK, response)
}

func (h *handlerImpl) HandleUpdateStatus(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		abortUnauthorized(c, "not authenticated")
		return
	}

	statusID, ok := parseIDParam(c, "status_id")
	if !ok {
		return
	}

	var req statusRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind request body")
		abortBindingError(c, err)
		return
	}

	err = h.statuses.Update(c, identity, statusID, req.Status)
	if err != nil {
		abortServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *handlerImpl) HandleDeleteStatus(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		abortUnauthorized(c, "not authenticated")
		return
	}

	statusID, ok := parseIDParam(c, "status_id")
	if !ok {
		return
	}

	err := h.statuses.Delete(c, identity, statusID)
	if err != nil {
		abortServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
