package config

const (
	// DefaultDatabaseDriver is the database/sql driver used by the relational backends
	DefaultDatabaseDriver = "sqlite3"

	// DefaultDatabasePath is the default SQLite file for the orm and sql backends
	DefaultDatabasePath = "./userbooks.db"

	// DefaultRedisKeyPrefix namespaces every key written by the redis backend
	DefaultRedisKeyPrefix = "userbooks"
)
