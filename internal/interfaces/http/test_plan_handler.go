package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestor-pruebas-api/internal/application/dto"
	"github.com/jhoicas/gestor-pruebas-api/internal/application/usecase"
	"github.com/jhoicas/gestor-pruebas-api/pkg/logger"
)

// TestPlanHandler planes de pruebas, sus escenarios y casos.
type TestPlanHandler struct {
	uc  *usecase.TestPlanUseCase
	log *logger.Logger
}

// NewTestPlanHandler construye el handler.
func NewTestPlanHandler(uc *usecase.TestPlanUseCase, log *logger.Logger) *TestPlanHandler {
	return &TestPlanHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear plan de pruebas
// @Tags         planes
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateTestPlanRequest  true  "Proyecto, nombre y escenarios"
// @Success      201   {object}  dto.APIResponse{data=dto.CreatedPlan}
// @Failure      400   {object}  dto.APIResponse
// @Failure      500   {object}  dto.APIResponse
// @Router       /api/createTestPlan [post]
func (h *TestPlanHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTestPlanRequest
	if err := bindJSON(c, &in); err != nil {
		return invalidBody(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return handleError(c, h.log, err, errorMessages{Internal: "Ocurrió un error al crear el plan de pruebas."})
	}
	return ok(c, fiber.StatusCreated, "Plan de pruebas creado exitosamente.", out)
}

// AddScenario godoc
// @Summary      Agregar escenario a un plan
// @Tags         planes
// @Accept       json
// @Produce      json
// @Param        body  body      dto.AddScenarioRequest  true  "Plan y escenario"
// @Success      200   {object}  dto.APIResponse{data=dto.AppendedItem}
// @Failure      400   {object}  dto.APIResponse
// @Failure      404   {object}  dto.APIResponse
// @Failure      500   {object}  dto.APIResponse
// @Router       /api/addScenarioToTestPlan [post]
func (h *TestPlanHandler) AddScenario(c *fiber.Ctx) error {
	var in dto.AddScenarioRequest
	if err := bindJSON(c, &in); err != nil {
		return invalidBody(c, err)
	}
	out, err := h.uc.AddScenario(c.UserContext(), in)
	if err != nil {
		return handleError(c, h.log, err, errorMessages{
			NotFound: "El plan de pruebas no existe.",
			Internal: "Ocurrió un error al agregar el escenario.",
		})
	}
	return ok(c, fiber.StatusOK, "Escenario agregado exitosamente al plan de pruebas.", out)
}

// AddTestCase godoc
// @Summary      Agregar caso de prueba a un escenario
// @Description  Si el escenario no existe en el plan no se modifica nada y la respuesta no trae data.
// @Tags         planes
// @Accept       json
// @Produce      json
// @Param        body  body      dto.AddTestCaseRequest  true  "Plan, escenario y caso"
// @Success      200   {object}  dto.APIResponse{data=dto.AppendedItem}
// @Failure      400   {object}  dto.APIResponse
// @Failure      404   {object}  dto.APIResponse
// @Failure      500   {object}  dto.APIResponse
// @Router       /api/addTestCaseToScenario [post]
func (h *TestPlanHandler) AddTestCase(c *fiber.Ctx) error {
	var in dto.AddTestCaseRequest
	if err := bindJSON(c, &in); err != nil {
		return invalidBody(c, err)
	}
	out, err := h.uc.AddTestCase(c.UserContext(), in)
	if err != nil {
		return handleError(c, h.log, err, errorMessages{
			NotFound: "El plan de pruebas no existe.",
			Internal: "Ocurrió un error al agregar el caso de prueba.",
		})
	}
	var data any
	if out != nil {
		data = out
	}
	return ok(c, fiber.StatusOK, "Caso de prueba agregado exitosamente al escenario.", data)
}

// GetByID godoc
// @Summary      Obtener plan de pruebas por ID
// @Tags         planes
// @Accept       json
// @Produce      json
// @Param        body  body      dto.IDRequest  true  "ID del plan"
// @Success      200   {object}  dto.APIResponse{data=dto.TestPlanResponse}
// @Failure      400   {object}  dto.APIResponse
// @Failure      404   {object}  dto.APIResponse
// @Router       /api/getTestPlanById [post]
func (h *TestPlanHandler) GetByID(c *fiber.Ctx) error {
	var in dto.IDRequest
	if err := bindJSON(c, &in); err != nil {
		return invalidBody(c, err)
	}
	id, _ := in.ID.(string)
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return handleError(c, h.log, err, errorMessages{
			NotFound: "No se encontró el plan de pruebas con el ID proporcionado.",
			Internal: "Ocurrió un error al obtener el plan de pruebas.",
		})
	}
	return ok(c, fiber.StatusOK, "Plan de pruebas obtenido exitosamente.", out)
}

// List godoc
// @Summary      Listar planes de pruebas
// @Tags         planes
// @Produce      json
// @Success      200  {object}  dto.APIResponse{data=[]dto.TestPlanResponse}
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/getAllTestPlans [get]
func (h *TestPlanHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return handleError(c, h.log, err, errorMessages{
			NotFound: "No se encontraron planes de pruebas.",
			Internal: "Ocurrió un error al obtener los planes de pruebas.",
		})
	}
	return ok(c, fiber.StatusOK, "Planes de pruebas obtenidos exitosamente.", out)
}

// ListByProject godoc
// @Summary      Listar planes de un proyecto
// @Tags         planes
// @Produce      json
// @Param        proyectoId  query     string  true  "ID del proyecto"
// @Success      200         {object}  dto.APIResponse{data=[]dto.TestPlanResponse}
// @Failure      400         {object}  dto.APIResponse
// @Failure      404         {object}  dto.APIResponse
// @Router       /api/getTestPlansByProjectId [get]
func (h *TestPlanHandler) ListByProject(c *fiber.Ctx) error {
	proyectoID := c.Query("proyectoId")
	out, err := h.uc.ListByProject(c.UserContext(), proyectoID)
	if err != nil {
		return handleError(c, h.log, err, errorMessages{
			NotFound: fmt.Sprintf("No se encontraron planes de pruebas para el proyecto con ID %s.", proyectoID),
			Internal: "Ocurrió un error al obtener los planes de pruebas del proyecto.",
		})
	}
	return ok(c, fiber.StatusOK, fmt.Sprintf("Planes de pruebas obtenidos exitosamente para el proyecto %s.", proyectoID), out)
}

// ExportPDF godoc
// @Summary      Exportar plan de pruebas a PDF
// @Tags         planes
// @Accept       json
// @Produce      application/pdf
// @Param        body  body      dto.IDRequest  true  "ID del plan"
// @Success      200   {file}    binary
// @Failure      400   {object}  dto.APIResponse
// @Failure      404   {object}  dto.APIResponse
// @Failure      500   {object}  dto.APIResponse
// @Router       /api/exportTestPlanPDF [post]
func (h *TestPlanHandler) ExportPDF(c *fiber.Ctx) error {
	var in dto.IDRequest
	if err := bindJSON(c, &in); err != nil {
		return invalidBody(c, err)
	}
	id, _ := in.ID.(string)
	doc, err := h.uc.ExportPDF(c.UserContext(), id)
	if err != nil {
		return handleError(c, h.log, err, errorMessages{
			NotFound: "El plan de pruebas no existe.",
			Internal: "Ocurrió un error al generar el PDF del plan de pruebas.",
		})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="plan-%s.pdf"`, id))
	return c.Status(fiber.StatusOK).Send(doc)
}
