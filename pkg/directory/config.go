package directory

const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

// Config selects and tunes the storage backend.
type Config struct {
	Driver    string `env:"STORAGE_DRIVER" envDefault:"memory"`        // memory or redis
	KeyPrefix string `env:"STORAGE_KEY_PREFIX" envDefault:"totpgate:"` // Prefix for redis keys
}
