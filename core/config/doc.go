// Package config provides configuration management for the reconciliation
// service.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: MySQL connection details
//   - Storage: S3/MinIO credentials and bucket settings
//   - Docstore: document store backend selection and cache TTL
//   - Log: Logging level and format
//   - Rules: rule file preloaded at startup
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
