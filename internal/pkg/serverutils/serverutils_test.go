package serverutils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name string `json:"name" validate:"required,max=5"`
	Id   string `json:"id" validate:"omitempty,uuid"`
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(sampleRequest{Name: "abc"}))

	err := ValidateRequest(sampleRequest{Name: "", Id: "nope"})
	var fe *fiber.Error
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)
	assert.Contains(t, fe.Message, "Name is required")
	assert.Contains(t, fe.Message, "Id must be a valid UUID")
}

func TestErrorHandlerMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/bad", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusBadRequest, "bad input") })
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("db password is hunter2") })
	app.Get("/ok", func(c *fiber.Ctx) error { return c.JSON(SuccessResponse("fine", 1)) })

	tests := []struct {
		path        string
		wantStatus  int
		wantMessage string
	}{
		{"/bad", fiber.StatusBadRequest, "bad input"},
		{"/boom", fiber.StatusInternalServerError, "Internal server error"},
		{"/missing", fiber.StatusNotFound, "Cannot GET /missing"},
		{"/ok", fiber.StatusOK, "fine"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			body, _ := io.ReadAll(resp.Body)
			var envelope Response[any]
			require.NoError(t, json.Unmarshal(body, &envelope))
			assert.Equal(t, tt.wantMessage, envelope.Message)
			assert.Equal(t, tt.wantStatus == fiber.StatusOK, envelope.Success)
		})
	}
}
