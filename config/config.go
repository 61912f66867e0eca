package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type SystemConfig struct {
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
}

type LoggerConfig struct {
	Mode       string `yaml:"mode" json:"mode"` // development or production
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type DatabaseConfig struct {
	Type   string `yaml:"type" json:"type"` // sqlite or postgres
	Host   string `yaml:"host" json:"host"`
	Port   int    `yaml:"port" json:"port"`
	Name   string `yaml:"name" json:"name"`
	User   string `yaml:"user" json:"user"`
	Passwd string `yaml:"passwd" json:"passwd"`
	Debug  bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host string `yaml:"host" json:"host"`
	Port int    `yaml:"port" json:"port"`
}

type AppConfig struct {
	System   SystemConfig   `yaml:"system" json:"system"`
	Logger   LoggerConfig   `yaml:"logger" json:"logger"`
	Database DatabaseConfig `yaml:"database" json:"database"`
	Web      WebConfig      `yaml:"web" json:"web"`
}

// Default returns the configuration used when no file is present:
// a sqlite store in the working directory, suitable for a single terminal.
func Default() *AppConfig {
	return &AppConfig{
		System: SystemConfig{
			Location: "Europe/Zurich",
			Workdir:  ".",
		},
		Logger: LoggerConfig{
			Mode:       "development",
			FileEnable: false,
			Filename:   "cashierd.log",
		},
		Database: DatabaseConfig{
			Type: "sqlite",
			Name: "cashier.db",
		},
		Web: WebConfig{
			Host: "127.0.0.1",
			Port: 8090,
		},
	}
}

// Load reads a YAML config file over the defaults. A missing file is not an
// error; the defaults are returned as-is.
func Load(path string) (*AppConfig, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
