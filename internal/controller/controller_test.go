package controller

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Compass/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: token", service.ErrAuthenticationRequired), http.StatusUnauthorized},
		{service.ErrForbidden, http.StatusForbidden},
		{fmt.Errorf("%w: attempt 3", service.ErrNotFound), http.StatusNotFound},
		{service.ErrInvalidState, http.StatusConflict},
		{service.ErrConflict, http.StatusConflict},
		{fmt.Errorf("%w: bad value", service.ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("%w: save", service.ErrStorage), http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, StatusFor(tc.err), tc.err.Error())
	}
}

func TestRespondError_HidesInternalDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RespondError(ctx, "Failed to load", fmt.Errorf("%w: connection refused", service.ErrStorage))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"Failed to load"}`, w.Body.String())
}

func TestUintParam(t *testing.T) {
	gin.SetMode(gin.TestMode)
	for raw, ok := range map[string]bool{"7": true, "0": false, "abc": false, "-1": false} {
		w := httptest.NewRecorder()
		ctx, _ := gin.CreateTestContext(w)
		ctx.Params = gin.Params{{Key: "attempt_id", Value: raw}}
		value, got := UintParam(ctx, "attempt_id")
		assert.Equal(t, ok, got, raw)
		if ok {
			assert.Equal(t, uint(7), value)
		} else {
			assert.Equal(t, http.StatusBadRequest, w.Code)
		}
	}
}
