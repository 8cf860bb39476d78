package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forgekit/internal/pkg/git/api"
	"forgekit/pkg/utils"
)

const aesKey = "0123456789abcdef0123456789abcdef"

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, env := range TokenEnv {
		t.Setenv(env, "")
	}

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, "forgekit", cfg.HTTP.UserAgent)
	assert.Equal(t, 1024, cfg.Cache.AvatarSize)
	assert.Equal(t, "stderr", cfg.Log.Output)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Empty(t, cfg.Providers)
	assert.Same(t, cfg, GlobalConfig)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := writeConfig(t, `
http:
  timeout: 5s
  rate_limit: 2.5
providers:
  gitee:
    token: file-token
    api_url: https://gitee.example.com/api/v5
watch:
  jobs:
    - name: gin-release
      platform: github
      kind: release
      target: gin-gonic/gin
      cron: "0 */5 * * * *"
`)
	t.Setenv("FORGEKIT_HTTP_PROXY", "http://127.0.0.1:7890")
	t.Setenv("GITHUB_TOKEN", "env-token")
	t.Setenv("GITEE_TOKEN", "ignored")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, 2.5, cfg.HTTP.RateLimit)
	assert.Equal(t, "http://127.0.0.1:7890", cfg.HTTP.Proxy)
	require.Len(t, cfg.Watch.Jobs, 1)
	assert.Equal(t, "release", cfg.Watch.Jobs[0].Kind)

	gitee, err := cfg.Provider(api.PlatformGitee)
	require.NoError(t, err)
	assert.Equal(t, "file-token", gitee.Token)
	assert.Equal(t, "https://gitee.example.com/api/v5", gitee.APIURL)

	github, err := cfg.Provider(api.PlatformGitHub)
	require.NoError(t, err)
	assert.Equal(t, "env-token", github.Token)

	cnb, err := cfg.Provider(api.PlatformCnb)
	require.NoError(t, err)
	assert.Empty(t, cnb.Token)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown provider", "providers:\n  gitea:\n    token: x\n"},
		{"bad job kind", "watch:\n  jobs:\n    - {name: a, platform: github, kind: star, target: o/r, cron: '@hourly'}\n"},
		{"missing cron", "watch:\n  jobs:\n    - {name: a, platform: cnb, kind: commit, target: o/r}\n"},
		{"short aes key", "crypto:\n  aes_key: short\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "配置校验失败")
		})
	}
}

func TestProviderDecryptsToken(t *testing.T) {
	sealed, err := utils.SealToken(aesKey, "real-token")
	require.NoError(t, err)

	cfg := &Config{
		Crypto: CryptoConfig{AESKey: aesKey},
		Providers: map[string]ProviderConfig{
			"cnb":    {Token: sealed},
			"github": {Token: " plain-token "},
		},
	}
	gh, err := cfg.Provider(api.PlatformGitHub)
	require.NoError(t, err)
	assert.Equal(t, "plain-token", gh.Token)

	p, err := cfg.Provider(api.PlatformCnb)
	require.NoError(t, err)
	assert.Equal(t, "real-token", p.Token)

	cfg.Crypto.AESKey = "ffffffffffffffffffffffffffffffff"
	_, err = cfg.Provider(api.PlatformCnb)
	assert.Error(t, err)
}
