package configs

import (
	"log/slog"
	"net/url"
	"strings"
	"time"
)

type Config struct {
	// 报告参数
	PageSize int `json:"page_size" yaml:"page_size"` // 拉取的币种数量 (per_page)
	TopN     int `json:"top_n" yaml:"top_n"`         // 涨幅榜长度

	Source SourceConfig `json:"source" yaml:"source"`
	Store  StoreConfig  `json:"store" yaml:"store"`
	Log    LogConfig    `json:"log" yaml:"log"`
}

type SourceConfig struct {
	Name      string        `json:"name" yaml:"name"`             // coingecko | binance
	BaseURL   string        `json:"base_url" yaml:"base_url"`     // 行情接口地址
	UserAgent string        `json:"user_agent" yaml:"user_agent"` // 客户端标识
	Timeout   time.Duration `json:"timeout" yaml:"timeout"`       // 0 表示使用 transport 默认值
}

type StoreConfig struct {
	Backend string `json:"backend" yaml:"backend"` // file | postgres | sqlite
	Dir     string `json:"dir" yaml:"dir"`         // file 后端根目录
	DSN     string `json:"dsn" yaml:"dsn"`         // postgres 连接串或 sqlite 文件路径
}

type LogConfig struct {
	Level  string `json:"level" yaml:"level"`   // debug | info | warn | error
	Format string `json:"format" yaml:"format"` // text | json
}

// SlogLevel returns the configured level, or info when it does not parse.
func (c LogConfig) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// LogValue keeps store credentials out of logs.
func (c Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("page_size", c.PageSize),
		slog.Int("top_n", c.TopN),
		slog.Any("source", c.Source),
		slog.Any("store", c.Store),
		slog.Any("log", c.Log),
	)
}

func (c StoreConfig) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("backend", c.Backend),
		slog.String("dir", c.Dir),
		slog.String("dsn", RedactDSN(c.DSN)),
	)
}

// RedactDSN hides the password of a URL or key=value connection string.
// Plain file paths are returned as-is.
func RedactDSN(dsn string) string {
	if u, err := url.Parse(dsn); err == nil && u.Scheme != "" && u.Host != "" {
		if _, ok := u.User.Password(); ok {
			return u.Redacted()
		}
		if u.Query().Has("password") {
			q := u.Query()
			q.Set("password", "xxxxx")
			u.RawQuery = q.Encode()
		}
		return u.String()
	}

	fields := strings.Fields(dsn)
	for i, f := range fields {
		if k, _, ok := strings.Cut(f, "="); ok && strings.EqualFold(k, "password") {
			fields[i] = k + "=xxxxx"
		}
	}
	if !strings.Contains(dsn, "=") {
		return dsn
	}
	return strings.Join(fields, " ")
}
