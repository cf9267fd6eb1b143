package bapi_test

import (
	"fmt"
	"testing"

	"github.com/advdv/bapi"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCode(t *testing.T) {
	err1 := bapi.NewError(bapi.CodeBadRequest, errors.New("foo"))
	require.Equal(t, bapi.Code(400), err1.Code())
	require.Equal(t, bapi.CodeBadRequest, bapi.CodeOf(err1))
	require.Equal(t, "Bad Request: foo", err1.Error())
	require.Equal(t, "foo", err1.Detail())

	require.Equal(t, bapi.CodeUnknown, bapi.CodeOf(errors.New("bar")))
	require.Equal(t, "Unknown: rab", bapi.NewError(900, errors.New("rab")).Error())
	require.Equal(t, bapi.CodeNotFound, bapi.CodeOf(fmt.Errorf("wrapped: %w", bapi.NewStatusError(bapi.CodeNotFound))))
	require.Equal(t, "Method Not Allowed", bapi.NewStatusError(bapi.CodeMethodNotAllowed).Detail())
}

func TestAPIErrors(t *testing.T) {
	for _, tt := range []struct {
		err     *bapi.APIError
		code    int
		message string
	}{
		{bapi.BadRequest(""), 400, bapi.MsgBadRequest},
		{bapi.NotFound(""), 404, bapi.MsgNotFound},
		{bapi.Unauthorized(""), 401, bapi.MsgUnauthorized},
		{bapi.Forbidden(""), 403, bapi.MsgForbidden},
		{bapi.NotFound("用户 999 不存在"), 404, "用户 999 不存在"},
		{bapi.NewAPIError(409, "conflict"), 409, "conflict"},
	} {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code())
			assert.Equal(t, tt.message, tt.err.Message())
			assert.Equal(t, tt.message, tt.err.Error())
			assert.Nil(t, tt.err.Data())
		})
	}

	t.Run("with data copies", func(t *testing.T) {
		base := bapi.Forbidden("")
		withData := base.WithData(map[string]int{"id": 1})
		assert.Nil(t, base.Data())
		assert.Equal(t, bapi.Envelope[any]{Code: 403, Message: bapi.MsgForbidden, Data: map[string]int{"id": 1}},
			withData.Envelope())
	})

	t.Run("found through wrapping", func(t *testing.T) {
		aerr, ok := bapi.AsAPIError(errors.Wrap(bapi.BadRequest("x"), "handler"))
		require.True(t, ok)
		assert.Equal(t, 400, aerr.Code())

		_, ok = bapi.AsAPIError(errors.New("plain"))
		assert.False(t, ok)
	})
}
