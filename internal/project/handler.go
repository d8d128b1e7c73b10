package project

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"NGOConnect/internal/apperr"
	"NGOConnect/internal/auth"
)

type ProjectHandler struct {
	service *ProjectService
}

func NewProjectHandler(service *ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

func currentUser(c echo.Context) (*auth.User, bool) {
	user, ok := c.Get("user").(*auth.User)
	return user, ok && user != nil
}

func fail(c echo.Context, err error) error {
	return c.JSON(apperr.Status(err), map[string]string{"message": apperr.Message(err)})
}

func pathID(c echo.Context, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		return primitive.NilObjectID, apperr.NotFound("Project not found")
	}
	return id, nil
}

// Generic routes: any authenticated role.

func (h *ProjectHandler) Create(c echo.Context) error {
	var req CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request"})
	}
	p, err := h.service.CreateGeneric(c.Request().Context(), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Project created successfully",
		"project": p,
	})
}

func (h *ProjectHandler) List(c echo.Context) error {
	projects, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, projects)
}

func (h *ProjectHandler) Get(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "User not authenticated"})
	}
	id, err := pathID(c, "projectId")
	if err != nil {
		return fail(c, err)
	}
	p, err := h.service.GetFor(c.Request().Context(), user.ID, user.Role, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProjectHandler) Update(c echo.Context) error {
	id, err := pathID(c, "projectId")
	if err != nil {
		return fail(c, err)
	}
	var req UpdateProjectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request"})
	}
	p, err := h.service.Update(c.Request().Context(), id, req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Project updated successfully",
		"project": p,
	})
}

func (h *ProjectHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "projectId")
	if err != nil {
		return fail(c, err)
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Project deleted successfully"})
}

// NGO routes: caller is the owning PartnerNGO.

func (h *ProjectHandler) NGOList(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "User not authenticated"})
	}
	projects, err := h.service.ListOwned(c.Request().Context(), user.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "Projects retrieved successfully",
		"projects": projects,
	})
}

func (h *ProjectHandler) NGOCreate(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "User not authenticated"})
	}
	var req CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request"})
	}
	p, err := h.service.Create(c.Request().Context(), user.ID, req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Project created successfully",
		"project": p,
	})
}

func (h *ProjectHandler) NGOGet(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "User not authenticated"})
	}
	id, err := pathID(c, "projectId")
	if err != nil {
		return fail(c, err)
	}
	p, err := h.service.GetOwned(c.Request().Context(), user.ID, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Project details retrieved successfully",
		"project": p,
	})
}

func (h *ProjectHandler) NGOUpdate(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "User not authenticated"})
	}
	id, err := pathID(c, "projectId")
	if err != nil {
		return fail(c, err)
	}
	var req UpdateProjectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request"})
	}
	p, err := h.service.UpdateOwned(c.Request().Context(), user.ID, id, req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Project updated successfully",
		"project": p,
	})
}

func (h *ProjectHandler) NGODelete(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "User not authenticated"})
	}
	id, err := pathID(c, "projectId")
	if err != nil {
		return fail(c, err)
	}
	if err := h.service.DeleteOwned(c.Request().Context(), user.ID, id); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Project deleted successfully"})
}

func (h *ProjectHandler) FundingStatus(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "User not authenticated"})
	}
	summary, err := h.service.FundingSummary(c.Request().Context(), user.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Funding status retrieved successfully",
		"funding": summary,
	})
}

func (h *ProjectHandler) SubmitFundingRequest(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "User not authenticated"})
	}
	var input FundingRequestInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request"})
	}
	request, err := h.service.SubmitFundingRequest(c.Request().Context(), user.ID, input)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":        "Funding request submitted successfully",
		"fundingRequest": request,
	})
}

func (h *ProjectHandler) Reports(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "User not authenticated"})
	}
	reports, err := h.service.ListReports(c.Request().Context(), user.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Reports retrieved successfully",
		"reports": reports,
	})
}

func (h *ProjectHandler) GenerateReport(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "User not authenticated"})
	}
	var req GenerateReportRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request"})
	}
	report, err := h.service.GenerateReport(c.Request().Context(), user.ID, req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Report generated successfully",
		"report":  report,
	})
}

// Frontliner routes: caller is an assigned frontliner.

func (h *ProjectHandler) AssignedList(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "User not authenticated"})
	}
	projects, err := h.service.ListAssigned(c.Request().Context(), user.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "Assigned projects retrieved successfully",
		"projects": projects,
	})
}

func (h *ProjectHandler) AssignedGet(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "User not authenticated"})
	}
	id, err := pathID(c, "projectId")
	if err != nil {
		return fail(c, err)
	}
	p, err := h.service.GetAssigned(c.Request().Context(), user.ID, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Project details retrieved successfully",
		"project": p,
	})
}

func (h *ProjectHandler) UpdateProgress(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "User not authenticated"})
	}
	id, err := pathID(c, "projectId")
	if err != nil {
		return fail(c, err)
	}
	var req ProgressUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request"})
	}
	p, err := h.service.UpdateProgress(c.Request().Context(), user.ID, id, req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Project progress updated successfully",
		"project": p,
	})
}

func (h *ProjectHandler) SubmitReport(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "User not authenticated"})
	}
	id, err := pathID(c, "projectId")
	if err != nil {
		return fail(c, err)
	}
	var req SubmitReportRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request"})
	}
	report, err := h.service.SubmitReport(c.Request().Context(), user.ID, id, req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Project report submitted successfully",
		"report":  report,
	})
}
