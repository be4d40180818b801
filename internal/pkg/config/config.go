package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"

	"hrms/backend/internal/payroll"
)

type Config struct {
	DBUsername string `yaml:"db_username"`
	DBPassword string `yaml:"db_password"`
	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"db_port"`
	DBName     string `yaml:"db_name"`
	DisableTLS bool   `yaml:"disable_tls"`

	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`

	BaseUrl        string `yaml:"base_url"`
	PrivateKeyPath string `yaml:"private_key_path"`

	Policy *payroll.Policy `yaml:"policy"`
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

	if c.RedisAddr == "" {
		c.RedisAddr = "localhost:6379"
	}
	if c.PrivateKeyPath == "" {
		c.PrivateKeyPath = "./private.pem"
	}
	defaults := payroll.DefaultPolicy()
	if c.Policy == nil {
		c.Policy = &defaults
	}

	// A partially filled policy block must not leave zero divisors behind.
	if c.Policy.WorkHoursPerDay <= 0 {
		c.Policy.WorkHoursPerDay = defaults.WorkHoursPerDay
	}
	if c.Policy.WorkDaysPerMonth <= 0 {
		c.Policy.WorkDaysPerMonth = defaults.WorkDaysPerMonth
	}
	if c.Policy.OvertimeMultiplier <= 0 {
		c.Policy.OvertimeMultiplier = defaults.OvertimeMultiplier
	}
	if c.Policy.StandardCheckIn == "" {
		c.Policy.StandardCheckIn = defaults.StandardCheckIn
	}

	return &c, nil
}
