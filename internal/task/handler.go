package task

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"NGOConnect/internal/apperr"
	"NGOConnect/internal/auth"
)

type TaskHandler struct {
	service *TaskService
}

func NewTaskHandler(service *TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

func currentUser(c echo.Context) (*auth.User, bool) {
	user, ok := c.Get("user").(*auth.User)
	return user, ok && user != nil
}

func fail(c echo.Context, err error) error {
	return c.JSON(apperr.Status(err), map[string]string{"message": apperr.Message(err)})
}

func taskID(c echo.Context) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Param("taskId"))
	if err != nil {
		return primitive.NilObjectID, apperr.NotFound("Task not found")
	}
	return id, nil
}

func (h *TaskHandler) Create(c echo.Context) error {
	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request"})
	}
	t, err := h.service.Create(c.Request().Context(), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Task created successfully",
		"task":    t,
	})
}

func (h *TaskHandler) ListByProject(c echo.Context) error {
	projectID, err := primitive.ObjectIDFromHex(c.Param("projectId"))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Project not found"})
	}
	tasks, err := h.service.ListByProject(c.Request().Context(), projectID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) Update(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return fail(c, err)
	}
	var req UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request"})
	}
	t, err := h.service.Update(c.Request().Context(), id, req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Task updated successfully",
		"task":    t,
	})
}

func (h *TaskHandler) Delete(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return fail(c, err)
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}

// Submit accepts a multipart `file` field from the task's assignee.
func (h *TaskHandler) Submit(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "User not authenticated"})
	}
	id, err := taskID(c)
	if err != nil {
		return fail(c, err)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "A file is required for submission. Use the 'file' field."})
	}
	src, err := fileHeader.Open()
	if err != nil {
		return fail(c, err)
	}
	defer src.Close()

	t, err := h.service.Submit(
		c.Request().Context(),
		user.ID,
		id,
		fileHeader.Filename,
		fileHeader.Header.Get(echo.HeaderContentType),
		fileHeader.Size,
		src,
	)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Task submitted successfully",
		"task":    t,
	})
}

// Frontliner routes.

func (h *TaskHandler) ListOwn(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "User not authenticated"})
	}
	tasks, err := h.service.ListByAssignee(c.Request().Context(), user.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Tasks retrieved successfully",
		"tasks":   tasks,
	})
}

func (h *TaskHandler) UpdateOwnStatus(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "User not authenticated"})
	}
	id, err := taskID(c)
	if err != nil {
		return fail(c, err)
	}
	var req StatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request"})
	}
	t, err := h.service.UpdateOwnStatus(c.Request().Context(), user.ID, id, req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Task status updated successfully",
		"task":    t,
	})
}
