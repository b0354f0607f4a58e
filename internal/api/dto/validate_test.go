package dto

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/auth-service/pkg/util/errorutil"
)

func TestValidateUserRequest(t *testing.T) {
	valid := UserRequest{Username: "testuser", Password: "password", Email: "test@example.com"}
	require.NoError(t, Validate(valid))

	longest := valid
	longest.Password = strings.Repeat("p", 72)
	require.NoError(t, Validate(longest))

	withRoles := valid
	withRoles.Roles = []string{"USER", "admin"}
	require.NoError(t, Validate(withRoles))

	cases := map[string]struct {
		req    UserRequest
		fields []string
	}{
		"empty":         {req: UserRequest{}, fields: []string{"username", "password", "email"}},
		"bad email":     {req: UserRequest{Username: "u", Password: "p", Email: "nope"}, fields: []string{"email"}},
		"long password": {req: UserRequest{Username: "u", Password: strings.Repeat("p", 73), Email: "a@b.co"}, fields: []string{"password"}},
		"unknown role":  {req: UserRequest{Username: "u", Password: "p", Email: "a@b.co", Roles: []string{"ROOT"}}, fields: []string{"roles[0]"}},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := Validate(tc.req)
			require.Error(t, err)

			de := apperrors.ToDomainError(err)
			assert.Equal(t, http.StatusBadRequest, de.HTTPStatus)
			assert.Equal(t, "VALIDATION_FAILED", de.Code)

			fields, ok := de.Details["fields"].([]FieldError)
			require.True(t, ok)
			got := make([]string, 0, len(fields))
			for _, f := range fields {
				got = append(got, f.Field)
			}
			assert.ElementsMatch(t, tc.fields, got)
		})
	}
}

func TestValidateLoginRequest(t *testing.T) {
	require.NoError(t, Validate(UserLoginRequest{Email: "test@example.com", Password: "password"}))
	require.Error(t, Validate(UserLoginRequest{Email: "test@example.com"}))
}
