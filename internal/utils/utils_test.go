package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	apiError "cms-admin/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paramID(t *testing.T, raw string) (uint64, error) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Params = gin.Params{{Key: "id", Value: raw}}
	return ParamID(c, "id")
}

func TestParamID(t *testing.T) {
	id, err := paramID(t, "42")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)
}

func TestParamID_Invalid(t *testing.T) {
	for _, raw := range []string{"", "abc", "-1", "0"} {
		_, err := paramID(t, raw)

		var apiErr *apiError.APIError
		require.ErrorAs(t, err, &apiErr, raw)
		assert.Equal(t, http.StatusBadRequest, apiErr.Status)
		assert.Equal(t, "Invalid id", apiErr.Message)
	}
}
