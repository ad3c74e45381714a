package http_test

import (
	"context"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestor-pruebas-api/internal/application/dto"
	"github.com/jhoicas/gestor-pruebas-api/internal/application/ports"
)

func getUser(t *testing.T, e *testEnv, uid string) dto.UserResponse {
	t.Helper()
	status, env := e.do(t, fiber.MethodPost, "/api/getUserInfo", map[string]string{"uid": uid})
	require.Equal(t, fiber.StatusOK, status, env.Message)
	var out dto.UserResponse
	decodeData(t, env, &out)
	return out
}

func TestCreateUser_IDCoincideConLaCuenta(t *testing.T) {
	for _, estado := range []bool{true, false} {
		e := newTestEnv(t)
		uid := e.createUser(t, "ana@qa.co", estado)

		acc := e.identity.Account(uid)
		require.NotNil(t, acc, "la cuenta debe existir con el mismo id")
		assert.Equal(t, "Ana Ruiz", acc.DisplayName)
		assert.Equal(t, !estado, acc.Disabled)

		u := getUser(t, e, uid)
		assert.Equal(t, uid, u.ID)
		assert.Equal(t, uid, u.UID)
		assert.Equal(t, estado, u.Estado)
	}
}

func TestCreateUser_CamposRequeridos(t *testing.T) {
	e := newTestEnv(t)
	bodies := []any{
		nil,
		map[string]any{"email": "a@qa.co", "password": "secreta1", "nombre": "A", "apellido": "B", "rol": "tester"},
		map[string]any{"email": "a@qa.co", "nombre": "A", "apellido": "B", "rol": "tester", "estado": true},
	}
	for _, body := range bodies {
		status, env := e.do(t, fiber.MethodPost, "/api/createUser", body)
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, dto.CodeValidation, env.Error)
	}
}

func TestCreateUser_ErrorDelProveedorEs500(t *testing.T) {
	e := newTestEnv(t)
	e.createUser(t, "ana@qa.co", true)

	// email repetido: el proveedor rechaza la cuenta
	status, env := e.do(t, fiber.MethodPost, "/api/createUser", map[string]any{
		"email": "ana@qa.co", "password": "secreta1", "nombre": "A", "apellido": "B", "rol": "tester", "estado": true,
	})
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, dto.CodeInternal, env.Error)
	assert.Equal(t, "Ocurrió un error al crear el usuario.", env.Message)
}

func TestCreateUser_CuerpoInvalido(t *testing.T) {
	e := newTestEnv(t)
	status, env := e.do(t, fiber.MethodPost, "/api/createUser", `{"email":`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, dto.CodeInvalidBody, env.Error)
}

func TestDeactivateReactivate(t *testing.T) {
	e := newTestEnv(t)
	uid := e.createUser(t, "ana@qa.co", true)

	status, env := e.do(t, fiber.MethodPost, "/api/deactivateUser", map[string]string{"uid": uid})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Usuario desactivado exitosamente.", env.Message)
	assert.False(t, getUser(t, e, uid).Estado)
	assert.True(t, e.identity.Account(uid).Disabled)

	status, env = e.do(t, fiber.MethodPost, "/api/reactivateUser", map[string]string{"uid": uid})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Usuario reactivado exitosamente.", env.Message)
	assert.True(t, getUser(t, e, uid).Estado)
	assert.False(t, e.identity.Account(uid).Disabled)
}

func TestDeactivate_Errores(t *testing.T) {
	e := newTestEnv(t)

	status, env := e.do(t, fiber.MethodPost, "/api/deactivateUser", map[string]string{})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, dto.CodeValidation, env.Error)

	status, env = e.do(t, fiber.MethodPost, "/api/deactivateUser", map[string]string{"uid": "fantasma"})
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "El usuario no existe en la colección.", env.Message)
}

func TestGetUserInfo_Errores(t *testing.T) {
	e := newTestEnv(t)

	status, _ := e.do(t, fiber.MethodPost, "/api/getUserInfo", map[string]string{})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, env := e.do(t, fiber.MethodPost, "/api/getUserInfo", map[string]string{"uid": "fantasma"})
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, dto.CodeNotFound, env.Error)
	assert.Equal(t, "No se encontró información del usuario con el UID proporcionado.", env.Message)
}

func TestGetAllUsers(t *testing.T) {
	e := newTestEnv(t)

	status, env := e.do(t, fiber.MethodGet, "/api/getAllUsers", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "No se encontraron usuarios en la colección.", env.Message)

	uid := e.createUser(t, "ana@qa.co", true)
	for _, method := range []string{fiber.MethodGet, fiber.MethodPost} {
		status, env = e.do(t, method, "/api/getAllUsers", nil)
		require.Equal(t, fiber.StatusOK, status)
		var users []dto.UserResponse
		decodeData(t, env, &users)
		require.Len(t, users, 1)
		assert.Equal(t, uid, users[0].ID)
	}
}

func TestDeleteUser(t *testing.T) {
	e := newTestEnv(t)
	uid := e.createUser(t, "ana@qa.co", true)

	status, env := e.do(t, fiber.MethodDelete, "/api/deleteUser", map[string]string{"uid": uid})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Usuario eliminado exitosamente.", env.Message)
	assert.Nil(t, e.identity.Account(uid))

	status, _ = e.do(t, fiber.MethodPost, "/api/getUserInfo", map[string]string{"uid": uid})
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = e.do(t, fiber.MethodPost, "/api/deleteUser", map[string]string{"uid": uid})
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestDeleteUser_CuentaSinPerfil(t *testing.T) {
	e := newTestEnv(t)
	uid, err := e.identity.CreateAccount(context.Background(), ports.NewAccount{Email: "huerfana@qa.co", Password: "secreta1"})
	require.NoError(t, err)

	status, env := e.do(t, fiber.MethodPost, "/api/deleteUser", map[string]string{"uid": uid})
	require.Equal(t, fiber.StatusOK, status, env.Message)
	assert.Nil(t, e.identity.Account(uid))
}

func TestEditUser_ReplicaEmailEnLaCuenta(t *testing.T) {
	e := newTestEnv(t)
	uid := e.createUser(t, "ana@qa.co", true)

	status, env := e.do(t, fiber.MethodPut, "/api/editUser", map[string]any{
		"uid":   uid,
		"email": "ana.ruiz@qa.co",
		"rol":   "lider",
	})
	require.Equal(t, fiber.StatusOK, status, env.Message)
	assert.Equal(t, "Usuario actualizado exitosamente.", env.Message)

	u := getUser(t, e, uid)
	assert.Equal(t, "ana.ruiz@qa.co", u.Email)
	assert.Equal(t, "lider", u.Rol)
	assert.Equal(t, "ana.ruiz@qa.co", e.identity.Account(uid).Email)
}

func TestEditUser_RechazaCamposFueraDeLaLista(t *testing.T) {
	e := newTestEnv(t)
	uid := e.createUser(t, "ana@qa.co", true)

	for _, field := range []string{"estado", "password", "esAdmin"} {
		status, env := e.do(t, fiber.MethodPost, "/api/editUser", map[string]any{"uid": uid, field: "x"})
		assert.Equal(t, fiber.StatusBadRequest, status, field)
		assert.Equal(t, dto.CodeValidation, env.Error)
		assert.Contains(t, env.Message, field)
	}
	assert.True(t, getUser(t, e, uid).Estado)
}

func TestEditUser_Inexistente(t *testing.T) {
	e := newTestEnv(t)
	status, env := e.do(t, fiber.MethodPost, "/api/editUser", map[string]any{"uid": "fantasma", "nombre": "X"})
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, dto.CodeNotFound, env.Error)
}
