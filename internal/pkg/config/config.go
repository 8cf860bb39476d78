package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"forgekit/internal/pkg/git/api"
	"forgekit/pkg/utils"
)

var GlobalConfig *Config

// EnvPrefix 环境变量前缀, 例如 FORGEKIT_HTTP_PROXY
const EnvPrefix = "FORGEKIT"


// TokenEnv 未配置令牌时读取的环境变量
var TokenEnv = map[api.PlatformType]string{
	api.PlatformGitHub:  "GITHUB_TOKEN",
	api.PlatformGitee:   "GITEE_TOKEN",
	api.PlatformGitCode: "GITCODE_TOKEN",
	api.PlatformCnb:     "CNB_TOKEN",
}

// Config 全局配置
type Config struct {
	Server    ServerConfig              `mapstructure:"server"`
	Auth      AuthConfig                `mapstructure:"auth"`
	Crypto    CryptoConfig              `mapstructure:"crypto"`
	Log       LogConfig                 `mapstructure:"log"`
	HTTP      HTTPConfig                `mapstructure:"http"`
	Cache     CacheConfig               `mapstructure:"cache"`
	Providers map[string]ProviderConfig `mapstructure:"providers" validate:"dive,keys,oneof=github gitee gitcode cnb,endkeys"`
	Watch     WatchConfig               `mapstructure:"watch"`
}

// ServerConfig 网关服务配置
type ServerConfig struct {
	Name string `mapstructure:"name"`
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port" validate:"gte=0,lte=65535"`
	Mode string `mapstructure:"mode" validate:"omitempty,oneof=debug release test"`
}

// AuthConfig 网关认证配置
type AuthConfig struct {
	JWT JWTConfig `mapstructure:"jwt"`
}

// JWTConfig JWT配置, Secret 为空时网关不做认证
type JWTConfig struct {
	Secret            string `mapstructure:"secret"`
	AccessTokenExpire int    `mapstructure:"access_token_expire"` // 秒
}

// CryptoConfig 加密配置
type CryptoConfig struct {
	AESKey string `mapstructure:"aes_key" validate:"omitempty,len=32"` // 32字节
}

// LogConfig 日志配置
type LogConfig struct {
	Level    string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
	Format   string `mapstructure:"format" validate:"omitempty,oneof=json console"`
	Output   string `mapstructure:"output" validate:"omitempty,oneof=stdout stderr file"`
	FilePath string `mapstructure:"file_path"`
}

// HTTPConfig 访问平台接口的 HTTP 配置
type HTTPConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	Proxy     string        `mapstructure:"proxy"`
	UserAgent string        `mapstructure:"user_agent"`
	RateLimit float64       `mapstructure:"rate_limit" validate:"gte=0"` // 每秒请求数, 0 不限制
	Burst     int           `mapstructure:"burst" validate:"gte=0"`
}

// CacheConfig 缓存配置
type CacheConfig struct {
	AvatarSize int `mapstructure:"avatar_size" validate:"gte=0"` // 头像缓存条目数, 0 关闭
}

// ProviderConfig 单个平台配置, 地址为空时使用平台默认值
type ProviderConfig struct {
	Token     string `mapstructure:"token"`
	APIURL    string `mapstructure:"api_url" validate:"omitempty,url"`
	BaseURL   string `mapstructure:"base_url" validate:"omitempty,url"`
	WebAPIURL string `mapstructure:"web_api_url" validate:"omitempty,url"`
}

// WatchConfig 定时观察配置
type WatchConfig struct {
	Jobs []WatchJob `mapstructure:"jobs" validate:"dive"`
}

// WatchJob 观察任务
// Kind 为 release/commit 时 Target 是 owner/repo, 为 contribution 时是用户名
type WatchJob struct {
	Name     string `mapstructure:"name" validate:"required"`
	Platform string `mapstructure:"platform" validate:"required,oneof=github gitee gitcode cnb"`
	Kind     string `mapstructure:"kind" validate:"required,oneof=release commit contribution"`
	Target   string `mapstructure:"target" validate:"required"`
	Cron     string `mapstructure:"cron" validate:"required"`
}

// setDefaults 环境变量只覆盖 viper 已知的键, 可被覆盖的键都需要默认值
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.name", "forgekit")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")

	v.SetDefault("auth.jwt.secret", "")
	v.SetDefault("auth.jwt.access_token_expire", 7200)
	v.SetDefault("crypto.aes_key", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stderr")
	v.SetDefault("log.file_path", "")

	v.SetDefault("http.timeout", 30*time.Second)
	v.SetDefault("http.proxy", "")
	v.SetDefault("http.user_agent", "forgekit")
	v.SetDefault("http.rate_limit", 0)
	v.SetDefault("http.burst", 1)

	v.SetDefault("cache.avatar_size", 1024)
}

// Load 加载配置
// configPath 为空时在 ./configs 与 . 下查找 config.yaml, 找不到则只使用默认值与环境变量
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	config.applyTokenEnv()

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("配置校验失败: %s", utils.FormatValidationError(err))
	}

	GlobalConfig = config
	return config, nil
}

// applyTokenEnv 未配置令牌的平台从 <PLATFORM>_TOKEN 读取
func (c *Config) applyTokenEnv() {
	if c.Providers == nil {
		c.Providers = map[string]ProviderConfig{}
	}
	for platform, env := range TokenEnv {
		token := os.Getenv(env)
		if token == "" {
			continue
		}
		p := c.Providers[string(platform)]
		if p.Token == "" {
			p.Token = token
			c.Providers[string(platform)] = p
		}
	}
}

// Provider 返回平台配置, enc: 前缀的令牌使用 crypto.aes_key 解密
func (c *Config) Provider(platform api.PlatformType) (api.ProviderConfig, error) {
	p := c.Providers[string(platform)]
	token, err := utils.OpenToken(c.Crypto.AESKey, p.Token)
	if err != nil {
		return api.ProviderConfig{}, fmt.Errorf("解密 %s 令牌失败: %w", platform, err)
	}
	return api.ProviderConfig{
		Token:     token,
		APIURL:    p.APIURL,
		BaseURL:   p.BaseURL,
		WebAPIURL: p.WebAPIURL,
	}, nil
}
