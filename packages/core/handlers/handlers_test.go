package handlers

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"core/models"
	"core/services"
	"core/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	SetupValidator()
}

func TestBindBodyReportsJSONFieldNames(t *testing.T) {
	r := gin.New()
	var bindErr error
	r.POST("/", func(c *gin.Context) {
		var req models.CreateGameRequest
		bindErr = bindBody(c, &req)
	})

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"winner_score": 21}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(httptest.NewRecorder(), req)

	var verr *services.ValidationError
	require.True(t, errors.As(bindErr, &verr))
	assert.Equal(t, map[string][]string{
		"winner":      {services.MsgMissingRequired},
		"loser":       {services.MsgMissingRequired},
		"loser_score": {services.MsgMissingRequired},
	}, verr.Messages())
	assert.ErrorIs(t, bindErr, models.ErrMissingRequiredField)
}

func TestBindBodyMalformedJSON(t *testing.T) {
	r := gin.New()
	var bindErr error
	r.POST("/", func(c *gin.Context) {
		var req models.CreatePlayerRequest
		bindErr = bindBody(c, &req)
	})

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"name": `))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.ErrorIs(t, bindErr, models.ErrInvalidValue)
	var verr *services.ValidationError
	require.True(t, errors.As(bindErr, &verr))
	assert.Contains(t, verr.Messages(), services.SchemaField)
}

func TestParseTimestamp(t *testing.T) {
	verr := &services.ValidationError{}

	assert.Nil(t, parseTimestamp(verr, "time_created", nil))

	raw := "2015-12-06T00:27:30"
	parsed := parseTimestamp(verr, "time_created", &raw)
	require.NotNil(t, parsed)
	assert.True(t, testutil.Epoch.Equal(*parsed))
	assert.True(t, verr.Empty())

	bad := "2015-12-06 00:27"
	assert.Nil(t, parseTimestamp(verr, "time_created", &bad))
	assert.ErrorIs(t, verr.Err(), models.ErrInvalidValue)
}

func TestWriteErrorStatusCodes(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{services.NewValidationError("name", models.ErrDuplicateName, "taken"), http.StatusUnprocessableEntity},
		{models.ErrPlayerNotFound, http.StatusNotFound},
		{models.ErrGameNotFound, http.StatusNotFound},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		r := gin.New()
		r.GET("/", func(c *gin.Context) { writeError(c, testutil.NopLogger(), tc.err) })

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, tc.status, rec.Code, tc.err.Error())
	}
}

func TestRequestIDPropagates(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(requestIDKey)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Body.String())
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)
}

func TestLoggingAndRecovery(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	r := gin.New()
	r.Use(RequestID(), Logging(logger), Recovery(logger))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error": "Internal server error"}`, rec.Body.String())
	assert.Contains(t, buf.String(), `"msg":"panic recovered"`)
	assert.Contains(t, buf.String(), `"msg":"http request"`)
	assert.Contains(t, buf.String(), `"status":500`)
}
