package Config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	DBPath   string `mapstructure:"MINTMEMO_DB_PATH"`
	Host     string `mapstructure:"MINTMEMO_HOST"`
	Port     string `mapstructure:"MINTMEMO_PORT"`
	AuthUser string `mapstructure:"MINTMEMO_AUTH_USER"`
	AuthPass string `mapstructure:"MINTMEMO_AUTH_PASS"`
}

// AuthEnabled 只有用户名和密码都配置了才启用 Basic Auth
func (c *Config) AuthEnabled() bool {
	return c.AuthUser != "" && c.AuthPass != ""
}

// Addr 服务器监听地址
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

var Cfg Config

func InitConfig() error {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// 设置默认值
	viper.SetDefault("MINTMEMO_DB_PATH", "./mintmemo.db")
	viper.SetDefault("MINTMEMO_HOST", "127.0.0.1")
	viper.SetDefault("MINTMEMO_PORT", "8000")
	viper.SetDefault("MINTMEMO_AUTH_USER", "")
	viper.SetDefault("MINTMEMO_AUTH_PASS", "")

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("读取配置文件失败: %w", err)
		}
		// 没有 .env 文件时直接使用环境变量
	}

	if err := viper.Unmarshal(&Cfg); err != nil {
		return fmt.Errorf("解析配置失败: %w", err)
	}

	// 认证配置必须成对出现
	if (Cfg.AuthUser == "") != (Cfg.AuthPass == "") {
		return fmt.Errorf("MINTMEMO_AUTH_USER 和 MINTMEMO_AUTH_PASS 必须同时配置")
	}
	return nil
}
