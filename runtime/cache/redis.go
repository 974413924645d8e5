package cache

import (
	"github.com/gomodule/redigo/redis"
)

// Redis implements a Redis cache with basic key/values
type Redis struct {
	// conn holds the Redis connection
	conn redis.Conn
}

// NewRedis creates a new instance of a Redis cache
// endpoint is the full URL of the Redis endpoint
// database is the Redis database number to use
func NewRedis(endpoint string, database int) (*Redis, error) {
	// Open the Redis connection
	conn, err := redis.Dial(
		"tcp",
		endpoint,
		// The Redis database number (0-15)
		redis.DialDatabase(database),
	)

	return &Redis{
		conn: conn,
	}, err
}

// Connect to a Redis instance
func (cache *Redis) Connect() error {
	// We already have a connection, this will error
	// if the connection is not usable
	return cache.conn.Err()
}

// Set a value at key
func (cache *Redis) Set(key string, value interface{}) error {
	// https://redis.io/commands/set/
	_, err := cache.conn.Do("SET", key, value)
	return err
}

// GetFloat64 reads a float value at key
func (cache *Redis) GetFloat64(key string) (float64, error) {
	value, err := redis.Float64(cache.conn.Do("GET", key))
	if err != nil {
		// Key not found, return 0
		if err == redis.ErrNil {
			return 0, nil
		}
	}
	return value, err
}

// IncrementBy increments the value at key by the given value
func (cache *Redis) IncrementBy(key string, value int64) error {
	// https://redis.io/commands/incrby/
	_, err := cache.conn.Do("INCRBY", key, value)
	return err
}

// Delete a key
func (cache *Redis) Delete(key string) error {
	// DEL deletes the key and acts as a clear operation
	// https://redis.io/commands/del/
	// DEL returns the amount of items deleted and an error where applicable
	_, err := redis.Int(cache.conn.Do("DEL", key))
	return err
}

// Disconnect from a Redis instance
func (cache *Redis) Disconnect() error {
	cache.conn.Flush()
	return cache.conn.Close()
}
