package placeholder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zanyuzhao/spec-coding/pkg/errors"
	"github.com/zanyuzhao/spec-coding/pkg/placeholder"
)

func TestToPlaceholders(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "backend and frontend globs",
			in:   "globs: backend/**/*.py, frontend/src/**",
			want: "globs: {{BACKEND_DIR}}/**/*.py, {{FRONTEND_DIR}}/src/**",
		},
		{
			name: "app as path segment",
			in:   "see backend/app/api/routes.py",
			want: "see {{BACKEND_DIR}}/{{APP_PACKAGE}}/api/routes.py",
		},
		{
			name: "app as member access",
			in:   "from app.core.response import ok",
			want: "from {{APP_PACKAGE}}.core.response import ok",
		},
		{
			name: "app inside words is untouched",
			in:   "application webapp/ happ. apps/",
			want: "application webapp/ happ. apps/",
		},
		{
			name: "bare app word is untouched",
			in:   "the app starts",
			want: "the app starts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, placeholder.ToPlaceholders(tt.in))
		})
	}
}

func TestFromPlaceholders(t *testing.T) {
	params := placeholder.Params{BackendDir: "server", FrontendDir: "web", AppPackage: "core"}
	in := "{{BACKEND_DIR}}/{{APP_PACKAGE}}/main.py and {{FRONTEND_DIR}}/ and {{APP_PACKAGE}}.settings"

	got := placeholder.FromPlaceholders(in, params)

	assert.Equal(t, "server/core/main.py and web/ and core.settings", got)
}

func TestRoundTrip(t *testing.T) {
	texts := []string{
		"",
		"# Rules\n\nglobs: backend/**/*.py\n",
		"Run `uvicorn app.main:app` from backend/ and `npm run dev` in frontend/.",
		"import { SpecList } from '@/components/spec_list'\nfetch('/api/spec/list')",
		"application-level notes about webapp/ stay put",
		"中文说明：backend/app/api 下的路由",
	}

	for _, text := range texts {
		staged := placeholder.ToPlaceholders(text)
		assert.Equal(t, text, placeholder.FromPlaceholders(staged, placeholder.DefaultParams()))
	}
}

func TestParamsValidate(t *testing.T) {
	require.NoError(t, placeholder.DefaultParams().Validate())
	require.NoError(t, placeholder.Params{BackendDir: "server", FrontendDir: "web-ui", AppPackage: "my_app"}.Validate())

	bad := []placeholder.Params{
		{BackendDir: "", FrontendDir: "web", AppPackage: "app"},
		{BackendDir: "a/b", FrontendDir: "web", AppPackage: "app"},
		{BackendDir: "server", FrontendDir: "..", AppPackage: "app"},
		{BackendDir: "server", FrontendDir: "web", AppPackage: "my app"},
		{BackendDir: "server", FrontendDir: "web", AppPackage: "{{APP_PACKAGE}}"},
	}
	for _, p := range bad {
		err := p.Validate()
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput), "expected INVALID_INPUT for %+v, got %v", p, err)
	}
}
