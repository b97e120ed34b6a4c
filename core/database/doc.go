// Package database handles the relational database connection.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to properly
// configure MySQL connections based on the application's configuration.
//
// # Connect
//
// The Connect function establishes a connection with sane pool settings and
// verifies it with a ping before returning. The connection backs the
// database document store; when it is unavailable, the service falls back to
// the object-storage store.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("Database connection failed", err)
//	}
package database
