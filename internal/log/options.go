package log

// Config is a type manipulated by Option functions.
type Config struct {
	// Level is the minimum level to log at: debug, info, warn or error.
	Level string
	// Format is the format to write logs in: json or text.
	Format string
	// GlobalFields are key/value pairs that show up on every log message.
	GlobalFields map[string]string
	// OutputPaths are file paths or standard streams to write logs to.
	OutputPaths []string
	// ErrorOutputPaths receive zap's internal errors.
	ErrorOutputPaths []string
}

// Option is a function that mutates Config.
type Option func(*Config)

const (
	JSONFormat = "json"
	TextFormat = "text"
)

const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// WithLevel sets Config.Level.
func WithLevel(level string) Option {
	return func(c *Config) {
		c.Level = level
	}
}

// WithFormat sets Config.Format.
func WithFormat(format string) Option {
	return func(c *Config) {
		c.Format = format
	}
}

var reservedFields = map[string]struct{}{
	"lvl": {},
	"msg": {},
	"ts":  {},
}

// WithFields adds a key value pair to every message. Keys that collide
// with the encoder's own keys are ignored.
func WithFields(key, val string) Option {
	return func(c *Config) {
		if _, ok := reservedFields[key]; ok {
			return
		}
		if c.GlobalFields == nil {
			c.GlobalFields = make(map[string]string)
		}
		c.GlobalFields[key] = val
	}
}

// WithOutputPaths appends non-empty paths to Config.OutputPaths.
func WithOutputPaths(paths ...string) Option {
	return func(c *Config) {
		for _, path := range paths {
			if path != "" {
				c.OutputPaths = append(c.OutputPaths, path)
			}
		}
	}
}

// WithErrorOutputPaths appends non-empty paths to Config.ErrorOutputPaths.
func WithErrorOutputPaths(paths ...string) Option {
	return func(c *Config) {
		for _, path := range paths {
			if path != "" {
				c.ErrorOutputPaths = append(c.ErrorOutputPaths, path)
			}
		}
	}
}
