package config

import (
	"fmt"
	"github.com/pkg/errors"
	"github.com/treeforest/basex"
	"gopkg.in/yaml.v3"
	"io/ioutil"
	"os"
	"sort"
)

type Config struct {
	// 对外服务配置
	HttpServerPort int    `yaml:"http_server_port"` // web监听端口
	BaseUrl        string `yaml:"base_url"`         // 远端服务地址，非空时命令行通过 http 调用

	// 字符表配置
	DBPath    string            `yaml:"db_path"`   // 自定义字符表数据库路径
	Alphabet  string            `yaml:"alphabet"`  // 默认字符表名称
	Alphabets map[string]string `yaml:"alphabets"` // 启动时注册的字符表 name => symbols

	LogLevel string `yaml:"log_level"` // debug 时输出调试日志
}

func DefaultConfig() *Config {
	return &Config{
		HttpServerPort: 8080,
		BaseUrl:        "",
		DBPath:         ".",
		Alphabet:       "base58",
		Alphabets:      map[string]string{},
		LogLevel:       "info",
	}
}

func (c *Config) Unmarshal(b []byte) error {
	return yaml.Unmarshal(b, c)
}

func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate checks the port and every configured alphabet. Configured
// alphabets must be ASCII.
func (c *Config) Validate() error {
	if c.HttpServerPort <= 0 || c.HttpServerPort > 65535 {
		return fmt.Errorf("invalid http_server_port %d", c.HttpServerPort)
	}
	if c.Alphabet == "" {
		return errors.New("empty default alphabet")
	}

	names := make([]string, 0, len(c.Alphabets))
	for name := range c.Alphabets {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		a, err := basex.NewAlphabet(c.Alphabets[name])
		if err != nil {
			return fmt.Errorf("alphabet %s: %v", name, err)
		}
		// 配置的字符表会经 http 服务以 JSON 文本传输
		if !a.IsASCII() {
			return fmt.Errorf("alphabet %s: %w", name, basex.ErrAlphabetNotASCII)
		}
	}
	return nil
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	conf := DefaultConfig()

	data, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return conf, nil
		}
		return nil, errors.WithStack(err)
	}

	if err = conf.Unmarshal(data); err != nil {
		return nil, errors.WithStack(err)
	}
	if err = conf.Validate(); err != nil {
		return nil, errors.WithStack(err)
	}

	return conf, nil
}
