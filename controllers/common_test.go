package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"go-restaurant-pos/models"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "not found", err: models.NewNotFoundError("order", 9), wantStatus: http.StatusNotFound},
		{name: "validation", err: models.NewValidationError("table is required"), wantStatus: http.StatusBadRequest},
		{name: "conflict", err: models.NewConflictError("table 3 is not available"), wantStatus: http.StatusConflict},
		{name: "access denied", err: models.NewAccessDeniedError("access denied"), wantStatus: http.StatusForbidden},
		{name: "unclassified", err: errors.New("connection reset"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(recorder)

			respondError(c, tt.err)

			if recorder.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", recorder.Code, tt.wantStatus)
			}
		})
	}
}
