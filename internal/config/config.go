/**
 * @description
 * This file handles configuration management for the billing service.
 * It loads settings from environment variables, providing defaults for the
 * cron schedules and server port.
 */
package config

import (
	"errors"

	"github.com/spf13/viper"
)

// Config holds all configuration for the billing service.
type Config struct {
	DatabaseURL              string `mapstructure:"DATABASE_URL"`
	RabbitMQURL              string `mapstructure:"RABBITMQ_URL"`
	ServerPort               string `mapstructure:"SERVER_PORT"`
	ReminderJobSchedule      string `mapstructure:"REMINDER_JOB_SCHEDULE"`
	StatusRefreshJobSchedule string `mapstructure:"STATUS_REFRESH_JOB_SCHEDULE"`
	EventsExchange           string `mapstructure:"EVENTS_EXCHANGE"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	viper.SetDefault("SERVER_PORT", "8087")
	viper.SetDefault("REMINDER_JOB_SCHEDULE", "0 8 * * *")        // At 08:00 every day.
	viper.SetDefault("STATUS_REFRESH_JOB_SCHEDULE", "30 7 * * *") // At 07:30 every day.
	viper.SetDefault("EVENTS_EXCHANGE", "billing.events")
	viper.AutomaticEnv()

	// Bind environment variables explicitly to ensure they appear in Unmarshal
	_ = viper.BindEnv("DATABASE_URL")
	_ = viper.BindEnv("RABBITMQ_URL")
	_ = viper.BindEnv("SERVER_PORT")
	_ = viper.BindEnv("REMINDER_JOB_SCHEDULE")
	_ = viper.BindEnv("STATUS_REFRESH_JOB_SCHEDULE")
	_ = viper.BindEnv("EVENTS_EXCHANGE")

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL must be set")
	}

	return &config, nil
}
