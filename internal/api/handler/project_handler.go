package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskman/taskman-api/internal/core/ports"
)

type ProjectHandler struct {
	projects ports.ProjectService
}

func NewProjectHandler(projects ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// Create handles POST /projects/add-project.
//
// @Summary      Add a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        body  body      createProjectRequest  true  "Project"
// @Success      201   {object}  domain.Project
// @Failure      422   {object}  errorResponse
// @Router       /projects/add-project [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	var req createProjectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	project, err := h.projects.CreateProject(c.Request().Context(), ports.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, project)
}

// List handles GET /projects/projects-list.
//
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Success      200  {array}  domain.Project
// @Success      204
// @Router       /projects/projects-list [get]
func (h *ProjectHandler) List(c echo.Context) error {
	projects, err := h.projects.ListProjects(c.Request().Context())
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, projects)
}
