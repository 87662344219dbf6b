package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DBUsername string `yaml:"db_username"`
	DBPassword string `yaml:"db_password"`
	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"port"`
	DBName     string `yaml:"db_name"`
	DisableTLS bool   `yaml:"disable_tls"`
	RedisAddr  string `yaml:"redis_addr"`
	BaseUrl    string `yaml:"base_url"`
	JWTKeyFile string `yaml:"jwt_key_file"`

	// Scan window policy. A scan within late_after_minutes of the session
	// start is PRESENT, within grace_minutes after that cutoff it is LATE,
	// anything later is rejected even while the session is still unexpired.
	LateAfterMinutes int `yaml:"late_after_minutes"`
	GraceMinutes     int `yaml:"grace_minutes"`
}

func NewConfig() (*Config, error) {
	var c Config

	yamlFile, err := os.ReadFile("config.yaml")
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(yamlFile, &c)
	if err != nil {
		return nil, err
	}

	if c.DBUsername == "" || c.DBPassword == "" || c.DBHost == "" || c.DBName == "" {
		return nil, errors.New("missing required database configuration")
	}

	if c.JWTKeyFile == "" {
		c.JWTKeyFile = "./private.pem"
	}
	if c.LateAfterMinutes <= 0 {
		c.LateAfterMinutes = 10
	}
	if c.GraceMinutes <= 0 {
		c.GraceMinutes = 15
	}

	return &c, nil
}
