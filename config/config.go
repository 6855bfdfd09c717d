package config

import (
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host      string `yaml:"host" json:"host"`
	Port      int    `yaml:"port" json:"port"`
	Secret    string `yaml:"secret" json:"secret"`
	PublicDir string `yaml:"public_dir" json:"public_dir"`
}

type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

// OrdersConfig holds the business knobs of the ordering workflow.
type OrdersConfig struct {
	LogoSurcharge float64        `yaml:"logo_surcharge" json:"logo_surcharge"`
	DeliveryDays  map[string]int `yaml:"delivery_days" json:"delivery_days"`
}

type AppConfig struct {
	System   SysConfig    `yaml:"system" json:"system"`
	Web      WebConfig    `yaml:"web" json:"web"`
	Database DBConfig     `yaml:"database" json:"database"`
	Logger   LogConfig    `yaml:"logger" json:"logger"`
	Orders   OrdersConfig `yaml:"orders" json:"orders"`
}

func (c *AppConfig) GetLogDir() string {
	return filepath.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetPublicDir() string {
	if c.Web.PublicDir != "" {
		return c.Web.PublicDir
	}
	return filepath.Join(c.System.Workdir, "public")
}

func (c *AppConfig) initDirs() {
	_ = os.MkdirAll(c.System.Workdir, 0755)
	_ = os.MkdirAll(c.GetLogDir(), 0755)
	_ = os.MkdirAll(c.GetPublicDir(), 0755)
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "linkit",
		Location: "Asia/Amman",
		Workdir:  "/var/linkit",
		Debug:    true,
	},
	Web: WebConfig{
		Host:   "0.0.0.0",
		Port:   1816,
		Secret: "9b6de5cc-linkit-1816-9e32-98ae768aa6a2",
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "linkit_v1",
		User:     "postgres",
		Passwd:   "root",
		MaxConn:  100,
		IdleConn: 10,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/linkit/linkit.log",
	},
	Orders: OrdersConfig{
		LogoSurcharge: 5,
		DeliveryDays:  map[string]int{"JO": 3, "UK": 7},
	},
}

func setEnvValue(name string, val *string) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		*val = evalue
	}
}

func setEnvBoolValue(name string, val *bool) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		*val = evalue == "true" || evalue == "1" || evalue == "on"
	}
}

func setEnvIntValue(name string, val *int) {
	var evalue = os.Getenv(name)
	if evalue == "" {
		return
	}
	p, err := strconv.ParseInt(evalue, 10, 64)
	if err == nil {
		*val = int(p)
	}
}

// LoadConfig loads YAML configuration from path, falling back to the
// defaults, then applies LINKIT_* environment overrides.
func LoadConfig(cfile string) *AppConfig {
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig
	// the defaults hold a map, give this config its own copy
	cfg.Orders.DeliveryDays = make(map[string]int, len(DefaultAppConfig.Orders.DeliveryDays))
	for k, v := range DefaultAppConfig.Orders.DeliveryDays {
		cfg.Orders.DeliveryDays[k] = v
	}
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				panic(err)
			}
		}
	}

	setEnvValue("LINKIT_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvBoolValue("LINKIT_SYSTEM_DEBUG", &cfg.System.Debug)

	setEnvValue("LINKIT_WEB_HOST", &cfg.Web.Host)
	setEnvValue("LINKIT_WEB_SECRET", &cfg.Web.Secret)
	setEnvValue("LINKIT_WEB_PUBLIC_DIR", &cfg.Web.PublicDir)
	setEnvIntValue("LINKIT_WEB_PORT", &cfg.Web.Port)

	setEnvValue("LINKIT_DB_TYPE", &cfg.Database.Type)
	setEnvValue("LINKIT_DB_HOST", &cfg.Database.Host)
	setEnvIntValue("LINKIT_DB_PORT", &cfg.Database.Port)
	setEnvValue("LINKIT_DB_NAME", &cfg.Database.Name)
	setEnvValue("LINKIT_DB_USER", &cfg.Database.User)
	setEnvValue("LINKIT_DB_PWD", &cfg.Database.Passwd)

	setEnvValue("LINKIT_LOGGER_MODE", &cfg.Logger.Mode)
	setEnvBoolValue("LINKIT_LOGGER_FILE_ENABLE", &cfg.Logger.FileEnable)

	cfg.initDirs()
	return cfg
}
