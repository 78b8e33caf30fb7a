package config

import (
	"fmt"
	"os"
)

// Config содержит настройки приложения
type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Organization OrganizationConfig
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Port string
}

// DatabaseConfig - настройки подключения к БД
type DatabaseConfig struct {
	Driver     string
	Host       string
	Port       string
	User       string
	Password   string
	DBName     string
	SSLMode    string
	SQLitePath string
}

// OrganizationConfig - откуда брать оргструктуру
type OrganizationConfig struct {
	// LayoutFile - путь к YAML-файлу; пустое значение - встроенная структура
	LayoutFile string
}

// DSN возвращает строку подключения к PostgreSQL
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Dialect возвращает имя диалекта goose для выбранного драйвера
func (c *DatabaseConfig) Dialect() string {
	if c.Driver == "postgres" {
		return "postgres"
	}
	return "sqlite3"
}

// Load загружает конфигурацию из переменных окружения
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Database: DatabaseConfig{
			Driver:     getEnv("DB_DRIVER", "sqlite"),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnv("DB_PORT", "5432"),
			User:       getEnv("DB_USER", "postgres"),
			Password:   getEnv("DB_PASSWORD", "postgres"),
			DBName:     getEnv("DB_NAME", "orghierarchy"),
			SSLMode:    getEnv("DB_SSLMODE", "disable"),
			SQLitePath: getEnv("SQLITE_PATH", "orghierarchy.db"),
		},
		Organization: OrganizationConfig{
			LayoutFile: getEnv("ORG_LAYOUT_FILE", ""),
		},
	}
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
