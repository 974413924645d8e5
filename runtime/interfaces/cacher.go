package interfaces

// Cacher defines the available actions for caches
type Cacher interface {
	// Connect to the cache
	Connect() error
	// Set a value at key
	Set(key string, value interface{}) error
	// GetFloat64 reads a float value at key
	GetFloat64(key string) (float64, error)
	// IncrementBy increments the value at key by the given value
	IncrementBy(key string, value int64) error
	// Delete a key
	Delete(key string) error
	// Disconnect from the cache
	Disconnect() error
}
