package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"go-gin-gorm-library/internal/domain"
)

func TestErrorUsesDefaultMessage(t *testing.T) {
	r := Error(CodeConflict, "")
	assert.Equal(t, 409, r.Code)
	assert.Equal(t, "Conflict", r.Msg)
	assert.Equal(t, struct{}{}, r.Data)

	assert.Equal(t, "custom", Error(CodeNotFound, "custom").Msg)
	assert.Equal(t, struct{}{}, OK(nil).Data)
}

func TestAbortWritesStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Abort(c, CodeTooManyRequests, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"code":429,"msg":"Too Many Requests","data":{}}`, w.Body.String())

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	Abort(c, 7, "odd")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

type statusErr struct{ code int }

func (e statusErr) Error() string   { return "status error" }
func (e statusErr) StatusCode() int { return e.code }

func TestFailMapsErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"validation", domain.Validation("Title is required"), 400, "Title is required"},
		{"not found", domain.NotFound("Book", 9), 404, "Book with id 9 not found"},
		{"conflict", domain.Conflict("Book is not available for loan"), 409, "Book is not available for loan"},
		{"unauthorized", domain.Unauthorized(), 401, "Invalid credentials"},
		{"wrapped", fmt.Errorf("loan: %w", domain.Conflict("dup")), 409, "loan: dup"},
		{"status coder", statusErr{code: 403}, 403, "status error"},
		{"status coder 5xx hides detail", statusErr{code: 500}, 500, "Internal Server Error"},
		{"unknown", errors.New("db down"), 500, "Internal Server Error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.ErrorLevel)
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

			Fail(c, zap.New(core), tc.err)

			assert.Equal(t, tc.code, w.Code)
			var body Resp
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.code, body.Code)
			assert.Equal(t, tc.msg, body.Msg)
			if tc.code >= 500 {
				assert.Equal(t, 1, logs.Len())
			} else {
				assert.Zero(t, logs.Len())
			}
		})
	}
}
