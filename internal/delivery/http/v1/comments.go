package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/A1ekseiPanov/task-management-system/internal/models"
	"github.com/A1ekseiPanov/task-management-system/internal/services"
)

type commentRequest struct {
	Comment string `json:"comment" binding:"required"`
}

type commentResponse struct {
	ID       int64     `json:"comment_id"`
	Comment  string    `json:"comment"`
	TaskID   int64     `json:"task_id"`
	AuthorID int64     `json:"author_id"`
	Created  time.Time `json:"created"`
}

func newCommentResponse(comment *models.Comment) commentResponse {
	return commentResponse{
		ID:       comment.ID,
		Comment:  comment.Text,
		TaskID:   comment.TaskID,
		AuthorID: comment.AuthorID,
		Created:  comment.Created,
	}
}

func (h *handlerImpl) HandleAddComment(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		abortUnauthorized(c, "not authenticated")
		return
	}

	taskID, ok := parseIDParam(c, "task_id")
	if !ok {
		return
	}

	var req commentRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind request body")
		abortBindingError(c, err)
		return
	}

	comment, err := h.comments.Add(c, services.AddCommentParams{
		Text:     req.Comment,
		TaskID:   taskID,
		AuthorID: identity.UserID,
	})
	if err != nil {
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newCommentResponse(comment))
}

func (h *handlerImpl) HandleListComments(c *gin.Context) {
	taskID, ok := parseIDParam(c, "task_id")
	if !ok {
		return
	}

	limit, offset, ok := parsePagination(c)
	if !ok {
		return
	}

	comments, err := h.comments.ListByTask(c, taskID, limit, offset)
	if err != nil {
		abortServiceError(c, err)
		return
	}

	response := make([]commentResponse, 0, len(comments))
	for i := range comments {
		response = append(response, newCommentResponse(&comments[i]))
	}
	c.JSON(http.StatusOK, response)
}

func (h *handlerImpl) HandleUpdateComment(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		abortUnauthorized(c, "not authenticated")
		return
	}

	taskID, ok := parseIDParam(c, "task_id")
	if !ok {
		return
	}

	commentID, ok := parseIDParam(c, "comment_id")
	if !ok {
		return
	}

	var req commentRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind request body")
		abortBindingError(c, err)
		return
	}

	err = h.comments.Update(c, services.ModifyCommentParams{
		CommentID: commentID,
		TaskID:    taskID,
		CallerID:  identity.UserID,
		Text:      req.Comment,
	})
	if err != nil {
		abortServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *handlerImpl) HandleDeleteComment(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		abortUnauthorized(c, "not authenticated")
		return
	}

	taskID, ok := parseIDParam(c, "task_id")
	if !ok {
		return
	}

	commentID, ok := parseIDParam(c, "comment_id")
	if !ok {
		return
	}

	err := h.comments.Delete(c, commentID, taskID, identity.UserID)
	if err != nil {
		abortServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
