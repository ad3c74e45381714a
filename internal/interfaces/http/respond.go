package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestor-pruebas-api/internal/application/dto"
	"github.com/jhoicas/gestor-pruebas-api/internal/domain"
	"github.com/jhoicas/gestor-pruebas-api/pkg/logger"
)

const msgCuerpoInvalido = "El cuerpo de la petición no es un JSON válido."

// ok responde con el sobre estándar.
func ok(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(dto.APIResponse{Message: message, Data: data})
}

func fail(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.APIResponse{Message: message, Error: code})
}

// errorMessages mensajes propios de cada handler para 404 y 500.
type errorMessages struct {
	NotFound string
	Internal string
}

// handleError traduce errores del dominio a HTTP. El detalle de un error
// interno solo va al log, nunca a la respuesta.
func handleError(c *fiber.Ctx, log *logger.Logger, err error, msgs errorMessages) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return fail(c, fiber.StatusBadRequest, dto.CodeValidation, verr.Message)
	case errors.Is(err, domain.ErrInvalidInput):
		return fail(c, fiber.StatusBadRequest, dto.CodeValidation, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return fail(c, fiber.StatusNotFound, dto.CodeNotFound, msgs.NotFound)
	default:
		log.Error().Err(err).
			Str("path", c.Path()).
			Str("requestId", requestID(c)).
			Msg(msgs.Internal)
		return fail(c, fiber.StatusInternalServerError, dto.CodeInternal, msgs.Internal)
	}
}

// unknownFieldError campo fuera de la lista permitida en una edición.
type unknownFieldError struct {
	field string
}

func (e *unknownFieldError) Error() string { return "campo no permitido " + e.field }

// bindJSON decodifica el cuerpo si existe. Un cuerpo vacío deja dst en cero
// y la validación del caso de uso decide.
func bindJSON(c *fiber.Ctx, dst any) error {
	if len(bytes.TrimSpace(c.Body())) == 0 {
		return nil
	}
	return c.App().Config().JSONDecoder(c.Body(), dst)
}

// bindStrict como bindJSON pero rechaza campos que dst no declara.
func bindStrict(c *fiber.Ctx, dst any) error {
	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if field, found := strings.CutPrefix(err.Error(), "json: unknown field "); found {
			return &unknownFieldError{field: field}
		}
		return err
	}
	return nil
}

// invalidBody responde 400 por un cuerpo que no se pudo decodificar.
func invalidBody(c *fiber.Ctx, err error) error {
	var uf *unknownFieldError
	if errors.As(err, &uf) {
		return fail(c, fiber.StatusBadRequest, dto.CodeValidation, "Campo no permitido: "+uf.field)
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return fail(c, fiber.StatusBadRequest, dto.CodeValidation, ve.Error())
	}
	return fail(c, fiber.StatusBadRequest, dto.CodeInvalidBody, msgCuerpoInvalido)
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return c.GetRespHeader(fiber.HeaderXRequestID)
}
