package logger

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum level: debug, info, warn or error.
	Level string `mapstructure:"level" default:"info"`
	// Format is the encoding: json or console.
	Format string `mapstructure:"format" default:"console"`
	// Output is stderr, stdout or a file path. Comparison reports go to stdout, so logs
	// default to stderr.
	Output string `mapstructure:"output" default:"stderr"`
}
