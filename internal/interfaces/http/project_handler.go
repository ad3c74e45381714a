package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestor-pruebas-api/internal/application/dto"
	"github.com/jhoicas/gestor-pruebas-api/internal/application/usecase"
	"github.com/jhoicas/gestor-pruebas-api/pkg/logger"
)

// ProjectHandler maneja los proyectos.
type ProjectHandler struct {
	uc  *usecase.ProjectUseCase
	log *logger.Logger
}

// NewProjectHandler construye el handler.
func NewProjectHandler(uc *usecase.ProjectUseCase, log *logger.Logger) *ProjectHandler {
	return &ProjectHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear proyecto
// @Tags         proyectos
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateProjectRequest  true  "Datos del proyecto"
// @Success      201   {object}  dto.APIResponse{data=dto.CreatedID}
// @Failure      400   {object}  dto.APIResponse
// @Failure      500   {object}  dto.APIResponse
// @Router       /api/createProject [post]
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProjectRequest
	if err := bindJSON(c, &in); err != nil {
		return invalidBody(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return handleError(c, h.log, err, errorMessages{Internal: "Ocurrió un error al crear el proyecto."})
	}
	return ok(c, fiber.StatusCreated, "Proyecto creado exitosamente.", out)
}

// Edit godoc
// @Summary      Editar proyecto
// @Description  Campos editables: nombre, descripcion, fechaInicio, fechaFin, estado, encargado, equipo, hitos.
// @Tags         proyectos
// @Accept       json
// @Produce      json
// @Param        body  body      dto.EditProjectRequest  true  "ID y campos a modificar"
// @Success      200   {object}  dto.APIResponse
// @Failure      400   {object}  dto.APIResponse
// @Failure      404   {object}  dto.APIResponse
// @Failure      500   {object}  dto.APIResponse
// @Router       /api/editProject [post]
func (h *ProjectHandler) Edit(c *fiber.Ctx) error {
	var in dto.EditProjectRequest
	if err := bindStrict(c, &in); err != nil {
		return invalidBody(c, err)
	}
	if err := h.uc.Edit(c.UserContext(), in); err != nil {
		return handleError(c, h.log, err, errorMessages{
			NotFound: "El proyecto no existe.",
			Internal: "Ocurrió un error al actualizar el proyecto.",
		})
	}
	return ok(c, fiber.StatusOK, "Proyecto actualizado exitosamente.", nil)
}

// List godoc
// @Summary      Listar proyectos
// @Tags         proyectos
// @Produce      json
// @Success      200  {object}  dto.APIResponse{data=[]dto.ProjectResponse}
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/getProjects [get]
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return handleError(c, h.log, err, errorMessages{
			NotFound: "No se encontraron proyectos.",
			Internal: "Ocurrió un error al obtener los proyectos.",
		})
	}
	return ok(c, fiber.StatusOK, "Proyectos obtenidos exitosamente.", out)
}

// GetByID godoc
// @Summary      Obtener proyecto por ID
// @Tags         proyectos
// @Accept       json
// @Produce      json
// @Param        body  body      dto.IDRequest  true  "ID del proyecto"
// @Success      200   {object}  dto.APIResponse{data=dto.ProjectResponse}
// @Failure      400   {object}  dto.APIResponse
// @Failure      404   {object}  dto.APIResponse
// @Router       /api/getProjectById [post]
func (h *ProjectHandler) GetByID(c *fiber.Ctx) error {
	var in dto.IDRequest
	if err := bindJSON(c, &in); err != nil {
		return invalidBody(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), in.ID)
	if err != nil {
		return handleError(c, h.log, err, errorMessages{
			NotFound: "No se encontró el proyecto con el ID proporcionado.",
			Internal: "Ocurrió un error al obtener el proyecto.",
		})
	}
	return ok(c, fiber.StatusOK, "Proyecto obtenido exitosamente.", out)
}
