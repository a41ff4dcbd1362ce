package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/Marga-Ghale/creativa-crm/internal/logger"
	"github.com/Marga-Ghale/creativa-crm/internal/models"
	"github.com/Marga-Ghale/creativa-crm/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const msgValidation = "Error de validación"

// bindError marks a body that could not be decoded.
type bindError struct{ err error }

func (e *bindError) Error() string { return e.err.Error() }
func (e *bindError) Unwrap() error { return e.err }

// bindJSON decodes and validates the body. On failure it has already
// written the response.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			respondError(c, err)
		} else {
			respondError(c, &bindError{err: err})
		}
		return false
	}
	return true
}

// pathID returns the :name parameter when it is a UUID. Anything else
// cannot name a row, so it is answered with 404.
func pathID(c *gin.Context, name, notFoundMsg string) (string, bool) {
	id := c.Param(name)
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
		return "", false
	}
	return id, true
}

// respondError maps every service and binding error onto one response shape.
func respondError(c *gin.Context, err error) {
	var (
		verrs    validator.ValidationErrors
		verr     *service.ValidationError
		berr     *bindError
		nfErr    *service.NotFoundError
		conflict *service.ConflictError
	)

	switch {
	case errors.As(err, &verrs):
		details := make([]models.FieldError, len(verrs))
		for i, fe := range verrs {
			details[i] = models.FieldError{Field: fe.Field(), Message: fieldMessage(fe)}
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: msgValidation, Details: details})

	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   msgValidation,
			Details: []models.FieldError{{Field: verr.Field, Message: verr.Message}},
		})

	case errors.As(err, &berr):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   msgValidation,
			Details: []models.FieldError{{Field: "body", Message: berr.Error()}},
		})

	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciales inválidas"})

	case errors.Is(err, service.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token inválido o expirado"})

	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "No tienes permisos para realizar esta acción"})

	case errors.As(err, &nfErr):
		c.JSON(http.StatusNotFound, gin.H{"error": nfErr.Message})

	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Recurso no encontrado"})

	case errors.As(err, &conflict):
		c.JSON(http.StatusBadRequest, gin.H{"error": conflict.Message})

	case errors.Is(err, service.ErrCannotDeleteSelf):
		c.JSON(http.StatusBadRequest, gin.H{"error": "No puedes eliminar tu propia cuenta"})

	case errors.Is(err, service.ErrClientEmailMissing):
		c.JSON(http.StatusBadRequest, gin.H{"error": "El cliente no tiene un email registrado"})

	case errors.Is(err, service.ErrEmailNotConfigured):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "El envío de correo no está configurado"})

	case errors.Is(err, service.ErrDeliveryFailed):
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al enviar el correo"})

	default:
		_ = c.Error(err)
		l := logger.With("http")
		l.Error().Err(err).Str("path", c.Request.URL.Path).Msg("unhandled error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Es requerido"
	case "email":
		return "Email inválido"
	case "uuid":
		return "ID inválido"
	case "oneof":
		return "Debe ser uno de: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Debe tener al menos %s caracteres", fe.Param())
		}
		return "Debe ser al menos " + fe.Param()
	case "max":
		return "Debe ser como máximo " + fe.Param()
	case "len=0|email":
		return "Email inválido"
	}
	return "Valor inválido"
}

var registerOnce sync.Once

// registerJSONFieldNames makes validation errors report JSON keys instead of
// Go field names.
func registerJSONFieldNames() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
	})
}
