package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestor-pruebas-api/internal/application/dto"
	"github.com/jhoicas/gestor-pruebas-api/internal/application/usecase"
	"github.com/jhoicas/gestor-pruebas-api/pkg/logger"
)

// UserHandler administración de usuarios (cuenta + perfil).
type UserHandler struct {
	uc  *usecase.UserUseCase
	log *logger.Logger
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase, log *logger.Logger) *UserHandler {
	return &UserHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear usuario
// @Description  Crea la cuenta en el servicio de identidad y el perfil en la colección users.
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateUserRequest  true  "Datos del usuario"
// @Success      201   {object}  dto.APIResponse{data=dto.CreatedUser}
// @Failure      400   {object}  dto.APIResponse
// @Failure      500   {object}  dto.APIResponse
// @Router       /api/createUser [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := bindJSON(c, &in); err != nil {
		return invalidBody(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return handleError(c, h.log, err, errorMessages{Internal: "Ocurrió un error al crear el usuario."})
	}
	return ok(c, fiber.StatusCreated, "Usuario creado exitosamente", out)
}

// Deactivate godoc
// @Summary      Desactivar usuario
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        body  body      dto.UIDRequest  true  "UID del usuario"
// @Success      200   {object}  dto.APIResponse
// @Failure      400   {object}  dto.APIResponse
// @Failure      404   {object}  dto.APIResponse
// @Failure      500   {object}  dto.APIResponse
// @Router       /api/deactivateUser [post]
func (h *UserHandler) Deactivate(c *fiber.Ctx) error {
	var in dto.UIDRequest
	if err := bindJSON(c, &in); err != nil {
		return invalidBody(c, err)
	}
	if err := h.uc.Deactivate(c.UserContext(), in.UID); err != nil {
		return handleError(c, h.log, err, errorMessages{
			NotFound: "El usuario no existe en la colección.",
			Internal: "Ocurrió un error al desactivar el usuario.",
		})
	}
	return ok(c, fiber.StatusOK, "Usuario desactivado exitosamente.", nil)
}

// Reactivate godoc
// @Summary      Reactivar usuario
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        body  body      dto.UIDRequest  true  "UID del usuario"
// @Success      200   {object}  dto.APIResponse
// @Failure      400   {object}  dto.APIResponse
// @Failure      404   {object}  dto.APIResponse
// @Failure      500   {object}  dto.APIResponse
// @Router       /api/reactivateUser [post]
func (h *UserHandler) Reactivate(c *fiber.Ctx) error {
	var in dto.UIDRequest
	if err := bindJSON(c, &in); err != nil {
		return invalidBody(c, err)
	}
	if err := h.uc.Reactivate(c.UserContext(), in.UID); err != nil {
		return handleError(c, h.log, err, errorMessages{
			NotFound: "El usuario no existe en la colección.",
			Internal: "Ocurrió un error al reactivar el usuario.",
		})
	}
	return ok(c, fiber.StatusOK, "Usuario reactivado exitosamente.", nil)
}

// GetInfo godoc
// @Summary      Obtener perfil de usuario
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        body  body      dto.UIDRequest  true  "UID del usuario"
// @Success      200   {object}  dto.APIResponse{data=dto.UserResponse}
// @Failure      400   {object}  dto.APIResponse
// @Failure      404   {object}  dto.APIResponse
// @Router       /api/getUserInfo [post]
func (h *UserHandler) GetInfo(c *fiber.Ctx) error {
	var in dto.UIDRequest
	if err := bindJSON(c, &in); err != nil {
		return invalidBody(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), in.UID)
	if err != nil {
		return handleError(c, h.log, err, errorMessages{
			NotFound: "No se encontró información del usuario con el UID proporcionado.",
			Internal: "Ocurrió un error al obtener la información del usuario.",
		})
	}
	return ok(c, fiber.StatusOK, "Información del usuario obtenida exitosamente.", out)
}

// List godoc
// @Summary      Listar usuarios
// @Tags         usuarios
// @Produce      json
// @Success      200  {object}  dto.APIResponse{data=[]dto.UserResponse}
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/getAllUsers [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return handleError(c, h.log, err, errorMessages{
			NotFound: "No se encontraron usuarios en la colección.",
			Internal: "Ocurrió un error al obtener los usuarios.",
		})
	}
	return ok(c, fiber.StatusOK, "Usuarios obtenidos exitosamente.", out)
}

// Delete godoc
// @Summary      Eliminar usuario
// @Description  Elimina el perfil y la cuenta; si la cuenta no se puede eliminar el perfil se restaura.
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        body  body      dto.UIDRequest  true  "UID del usuario"
// @Success      200   {object}  dto.APIResponse
// @Failure      400   {object}  dto.APIResponse
// @Failure      404   {object}  dto.APIResponse
// @Failure      500   {object}  dto.APIResponse
// @Router       /api/deleteUser [post]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	var in dto.UIDRequest
	if err := bindJSON(c, &in); err != nil {
		return invalidBody(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), in.UID); err != nil {
		return handleError(c, h.log, err, errorMessages{
			NotFound: "El usuario no existe en la colección.",
			Internal: "Ocurrió un error al eliminar el usuario.",
		})
	}
	return ok(c, fiber.StatusOK, "Usuario eliminado exitosamente.", nil)
}

// Edit godoc
// @Summary      Editar usuario
// @Description  Solo acepta nombre, apellido, email, rol y displayName; cualquier otro campo es 400.
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        body  body      dto.EditUserRequest  true  "UID y campos a modificar"
// @Success      200   {object}  dto.APIResponse
// @Failure      400   {object}  dto.APIResponse
// @Failure      404   {object}  dto.APIResponse
// @Failure      500   {object}  dto.APIResponse
// @Router       /api/editUser [post]
func (h *UserHandler) Edit(c *fiber.Ctx) error {
	var in dto.EditUserRequest
	if err := bindStrict(c, &in); err != nil {
		return invalidBody(c, err)
	}
	if err := h.uc.Edit(c.UserContext(), in); err != nil {
		return handleError(c, h.log, err, errorMessages{
			NotFound: "El usuario no existe en la colección.",
			Internal: "Ocurrió un error al actualizar el usuario.",
		})
	}
	return ok(c, fiber.StatusOK, "Usuario actualizado exitosamente.", nil)
}
