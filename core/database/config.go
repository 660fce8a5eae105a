package database

// Config holds configuration for a database connection.
type Config struct {
	// Driver is the database driver (mysql, sqlite).
	Driver string `mapstructure:"driver" default:"mysql"`
	// Host is the database host.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port.
	Port int `mapstructure:"port" default:"3306"`
	// User is the database user.
	User string `mapstructure:"user" default:"root"`
	// Password is the database password.
	Password string `mapstructure:"password" default:""`
	// Name is the database name, or the file path for sqlite.
	Name string `mapstructure:"name" default:""`
	// TimeoutSeconds bounds connection setup and each read or write.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// MaxIdleConns is the idle pool size outside of comparison batches.
	MaxIdleConns int `mapstructure:"max_idle_conns" default:"2"`
	// MaxOpenConns caps concurrent connections.
	MaxOpenConns int `mapstructure:"max_open_conns" default:"100"`
}
