package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"forgekit/internal/pkg/jwt"
	pkgErrors "forgekit/pkg/errors"
	"forgekit/pkg/utils"
)

const aesKey = "0123456789abcdef0123456789abcdef"

// writeConfig CNB 指向测试服务的配置文件
func writeConfig(t *testing.T) (string, string) {
	t.Helper()
	routes := map[string]string{
		"/cnb/docs/-/releases/latest": `{"tag_name": "v1.2.0", "author": {"username": "alice"}, "created_at": "2024-01-01T00:00:00Z"}`,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	content := fmt.Sprintf(`
log:
  level: error
auth:
  jwt:
    secret: cli-secret
    access_token_expire: 600
crypto:
  aes_key: %s
providers:
  cnb:
    token: tkn
    api_url: %s
    base_url: %s
watch:
  jobs:
    - name: docs
      platform: cnb
      kind: release
      target: cnb/docs
      cron: "0 */5 * * * *"
`, aesKey, srv.URL, srv.URL)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path, srv.URL
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "forgekit version 1.0.0\n", out)
}

func TestUserAvatarJSON(t *testing.T) {
	cfg, base := writeConfig(t)
	out, err := run(t, "--config", cfg, "-p", "cnb", "user", "avatar", "alice")
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, base+"/users/alice/avatar/l", got["avatar_url"])
}

func TestReleaseInfoYAML(t *testing.T) {
	cfg, _ := writeConfig(t)
	out, err := run(t, "--config", cfg, "-p", "cnb", "-o", "yaml", "release", "info", "cnb/docs")
	require.NoError(t, err)

	var got struct {
		TagName string `yaml:"tag_name"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, "v1.2.0", got.TagName)
}

func TestErrors(t *testing.T) {
	cfg, _ := writeConfig(t)

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"bad output", []string{"-o", "xml", "version"}, 0},
		{"output validated", []string{"--config", cfg, "-o", "xml", "user", "info", "alice"}, pkgErrors.CodeBadRequest},
		{"bad repo path", []string{"--config", cfg, "-p", "cnb", "repo", "info", "docs"}, pkgErrors.CodeBadRequest},
		{"bad platform", []string{"--config", cfg, "-p", "gitea", "user", "info", "alice"}, pkgErrors.CodeNotFound},
		{"bad state", []string{"--config", cfg, "-p", "cnb", "issue", "list", "cnb/docs", "--state", "merged"}, pkgErrors.CodeBadRequest},
		{"bad since", []string{"--config", cfg, "-p", "cnb", "commit", "list", "cnb/docs", "--since", "yesterday"}, pkgErrors.CodeBadRequest},
		{"bad permission", []string{"--config", cfg, "-p", "cnb", "repo", "add-collaborator", "cnb/docs", "bob", "--permission", "owner"}, pkgErrors.CodeBadRequest},
		{"not found", []string{"--config", cfg, "-p", "cnb", "release", "info", "cnb/docs", "v0"}, pkgErrors.CodeNotFound},
		{"missing config", []string{"--config", filepath.Join(t.TempDir(), "none.yaml"), "user", "info", "alice"}, pkgErrors.CodeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			if tt.code == 0 {
				// version 不加载配置, 也不校验输出格式
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.code, pkgErrors.Kind(err))
		})
	}
}

func TestWatchOnce(t *testing.T) {
	cfg, _ := writeConfig(t)
	out, err := run(t, "--config", cfg, "watch", "--once")
	require.NoError(t, err)
	assert.JSONEq(t, `{"docs": "v1.2.0"}`, out)
}

func TestTokenAndSecret(t *testing.T) {
	cfg, _ := writeConfig(t)

	out, err := run(t, "--config", cfg, "token", "ci")
	require.NoError(t, err)
	var tok map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &tok))
	claims, err := jwt.ValidateToken("cli-secret", tok["access_token"])
	require.NoError(t, err)
	assert.Equal(t, "ci", claims.Subject)

	out, err = run(t, "--config", cfg, "secret", "encrypt", "ghp_token")
	require.NoError(t, err)
	var sec map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &sec))
	require.True(t, strings.HasPrefix(sec["token"], "enc:"))
	plain, err := utils.OpenToken(aesKey, sec["token"])
	require.NoError(t, err)
	assert.Equal(t, "ghp_token", plain)
}
