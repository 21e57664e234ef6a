package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, 200, HTTPStatus(CodeOK))
	assert.Equal(t, 400, HTTPStatus(CodeBadRequest))
	assert.Equal(t, 409, HTTPStatus(CodeConflict))
	assert.Equal(t, 429, HTTPStatus(CodeTooMany))
	assert.Equal(t, 500, HTTPStatus(CodeServerError))
}

func TestEnvelope(t *testing.T) {
	ok := OK(map[string]int{"n": 1})
	assert.Equal(t, CodeOK, ok.Code)
	assert.Equal(t, "OK", ok.Msg)
	assert.NotNil(t, ok.Data)

	e := Error(CodeNotFound, "missing")
	assert.Equal(t, CodeNotFound, e.Code)
	assert.Equal(t, "missing", e.Msg)
	// data 恒为对象，不输出 null
	assert.Equal(t, struct{}{}, e.Data)

	d := Error(CodeNotFound, "")
	assert.Equal(t, "Not Found", d.Msg)

	n := New(CodeOK, "OK", nil)
	assert.Equal(t, struct{}{}, n.Data)
}
