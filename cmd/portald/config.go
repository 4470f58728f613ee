package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the portal daemon configuration
type Config struct {
	// Core server settings
	ListenAddr    string `json:"listen_addr"`
	Port          int    `json:"port"`
	SessionSecret string `json:"session_secret"`

	// Identity settings
	Domain  string            `json:"domain"`
	Aliases map[string]string `json:"aliases,omitempty"`

	// Access configuration files
	TierFilePath      string `json:"tier_file_path"`
	TitleRulesPath    string `json:"title_rules_path"`
	WorkflowRolesPath string `json:"workflow_roles_path"`
	ACLFilePath       string `json:"acl_file_path,omitempty"` // used when acl_table is empty

	// Site data
	SchoolsByLocation map[string]string `json:"schools_by_location"`

	// Warehouse settings
	PostgresDSN string `json:"postgres_dsn"`
	StaffTable  string `json:"staff_table,omitempty"`
	ACLTable    string `json:"acl_table,omitempty"`

	// Shared cache settings
	RedisAddr     string `json:"redis_addr,omitempty"`
	RedisPassword string `json:"redis_password,omitempty"`
	RedisDB       int    `json:"redis_db,omitempty"`

	// Cache and timeout settings (seconds)
	StaffCacheTime     int `json:"staff_cache_time"`
	HierarchyCacheTime int `json:"hierarchy_cache_time"`
	ResolveTimeout     int `json:"resolve_timeout"`

	// Logging settings
	AppLogPath    string `json:"app_log_path,omitempty"`
	AccessLogPath string `json:"access_log_path,omitempty"`
	LogLevel      string `json:"log_level,omitempty"`
}

// LoadConfig loads configuration from a JSON file
func LoadConfig(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	// Convert relative paths to absolute paths based on config file location
	configDir := filepath.Dir(path)
	for _, p := range []*string{
		&config.TierFilePath,
		&config.TitleRulesPath,
		&config.WorkflowRolesPath,
		&config.ACLFilePath,
		&config.AppLogPath,
		&config.AccessLogPath,
	} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(configDir, *p)
		}
	}

	// Set defaults for optional settings
	if config.ListenAddr == "" {
		config.ListenAddr = "0.0.0.0"
	}
	if config.Port == 0 {
		config.Port = 8080
	}
	if config.StaffCacheTime == 0 {
		config.StaffCacheTime = 60 // 1 minute
	}
	if config.HierarchyCacheTime == 0 {
		config.HierarchyCacheTime = 300 // 5 minutes
	}
	if config.ResolveTimeout == 0 {
		config.ResolveTimeout = 10
	}

	if config.Domain == "" {
		return fmt.Errorf("domain is required")
	}
	if config.SessionSecret == "" {
		return fmt.Errorf("session_secret is required")
	}
	if config.TierFilePath == "" || config.TitleRulesPath == "" {
		return fmt.Errorf("tier_file_path and title_rules_path are required")
	}

	return nil
}
