package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Marga-Ghale/creativa-crm/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func errorResponse(t *testing.T, err error) (int, map[string]interface{}) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/projects", nil)

	respondError(c, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestRespondErrorUnhandled(t *testing.T) {
	code, body := errorResponse(t, errors.New("connection reset"))

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Error interno del servidor", body["error"])
}

func TestRespondErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"forbidden", service.ErrForbidden, http.StatusForbidden, "No tienes permisos para realizar esta acción"},
		{"wrapped credentials", fmt.Errorf("login: %w", service.ErrInvalidCredentials), http.StatusUnauthorized, "Credenciales inválidas"},
		{"not found", &service.NotFoundError{Message: "Proyecto no encontrado"}, http.StatusNotFound, "Proyecto no encontrado"},
		{"conflict", &service.ConflictError{Message: "El email ya está registrado"}, http.StatusBadRequest, "El email ya está registrado"},
		{"delivery", fmt.Errorf("smtp: %w", service.ErrDeliveryFailed), http.StatusInternalServerError, "Error al enviar el correo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := errorResponse(t, tt.err)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.msg, body["error"])
		})
	}
}

func TestRespondErrorValidationDetails(t *testing.T) {
	code, body := errorResponse(t, &service.ValidationError{Field: "name", Message: "El nombre es requerido"})

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, msgValidation, body["error"])
	details, ok := body["details"].([]interface{})
	require.True(t, ok)
	require.Len(t, details, 1)
	assert.Equal(t, "name", details[0].(map[string]interface{})["field"])
}
