package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserContext(t *testing.T) {
	t.Run("SetUserContext and GetUserIDFromContext", func(t *testing.T) {
		ctx := context.Background()
		userID := uint(100)
		email := "user@example.com"
		role := "USER"

		ctx = SetUserContext(ctx, userID, email, role)
		assert.NotNil(t, ctx)

		id, ok := GetUserIDFromContext(ctx)
		assert.True(t, ok)
		assert.Equal(t, userID, id)

		assert.Equal(t, email, GetUserEmailFromContext(ctx))
		assert.Equal(t, role, GetUserRoleFromContext(ctx))
	})

	t.Run("GetUserIDFromContext with empty context", func(t *testing.T) {
		ctx := context.Background()
		_, ok := GetUserIDFromContext(ctx)
		assert.False(t, ok)
	})
}

func TestStrPtr(t *testing.T) {
	input := "test string"
	ptr := StrPtr(input)

	assert.NotNil(t, ptr)
	assert.Equal(t, input, *ptr)
}

func TestPtrString(t *testing.T) {
	str := "test"
	assert.Equal(t, "test", PtrString(&str))
	assert.Equal(t, "", PtrString(nil))
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSON(w, http.StatusCreated, map[string]string{"message": "created"})

	resp := w.Result()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var body map[string]string
	_ = json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, "created", body["message"])
}

func TestWriteJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSONError(w, "error message", http.StatusBadRequest)

	resp := w.Result()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var body map[string]string
	_ = json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, "error message", body["error"])
}
