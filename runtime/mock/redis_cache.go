package mock

import (
	"fmt"
	"strconv"

	"github.com/gomodule/redigo/redis"
	redigomock "github.com/rafaeljusto/redigomock/v3"
)

// RedisCache implements a mock Redis cache using keys backed by an
// in-memory map so tests can verify stored values
type RedisCache struct {
	// conn holds the Redis connection
	conn redis.Conn
	// values holds the simulated key space
	values map[string][]byte
}

// NewRedisCache creates a new instance of the Redis mock cache
func NewRedisCache() (*RedisCache, error) {

	conn := redigomock.NewConn()
	values := make(map[string][]byte)

	// Set up simulated call for setting a key
	conn.GenericCommand("SET").Handle(redigomock.ResponseHandler(func(args []interface{}) (interface{}, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("unexpected number of arguments: expected 2, received %d", len(args))
		}
		values[fmt.Sprintf("%v", args[0])] = []byte(fmt.Sprintf("%v", args[1]))
		return "OK", nil
	}))

	// Set up simulated call for reading a key
	conn.GenericCommand("GET").Handle(redigomock.ResponseHandler(func(args []interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("unexpected number of arguments: expected 1, received %d", len(args))
		}
		value, ok := values[fmt.Sprintf("%v", args[0])]
		if !ok {
			return nil, redis.ErrNil
		}
		return value, nil
	}))

	// Set up simulated call for incrementing a counter key
	conn.GenericCommand("INCRBY").Handle(redigomock.ResponseHandler(func(args []interface{}) (interface{}, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("unexpected number of arguments: expected 2, received %d", len(args))
		}
		key := fmt.Sprintf("%v", args[0])
		current := int64(0)
		if value, ok := values[key]; ok {
			parsed, err := strconv.ParseInt(string(value), 10, 64)
			if err != nil {
				return nil, err
			}
			current = parsed
		}
		increment, err := strconv.ParseInt(fmt.Sprintf("%v", args[1]), 10, 64)
		if err != nil {
			return nil, err
		}
		current += increment
		values[key] = []byte(strconv.FormatInt(current, 10))
		return current, nil
	}))

	// Set up simulated call for deleting a key
	conn.GenericCommand("DEL").Handle(redigomock.ResponseHandler(func(args []interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("unexpected number of arguments: expected 1, received %d", len(args))
		}
		key := fmt.Sprintf("%v", args[0])
		if _, ok := values[key]; !ok {
			return int64(0), nil
		}
		delete(values, key)
		return int64(1), nil
	}))

	return &RedisCache{
		conn:   conn,
		values: values,
	}, nil
}

// Connect to a Redis instance
func (cache *RedisCache) Connect() error {
	// We already have a connection, this will error
	// if the connection is not usable
	return cache.conn.Err()
}

// Set a value at key
func (cache *RedisCache) Set(key string, value interface{}) error {
	// https://redis.io/commands/set/
	_, err := cache.conn.Do("SET", key, value)
	return err
}

// GetFloat64 reads a float value at key
func (cache *RedisCache) GetFloat64(key string) (float64, error) {
	// https://redis.io/commands/get/
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
func (cache *RedisCache) IncrementBy(key string, value int64) error {
	// https://redis.io/commands/incrby/
	_, err := cache.conn.Do("INCRBY", key, value)
	return err
}

// Delete a key
func (cache *RedisCache) Delete(key string) error {
	// DEL deletes the key and acts as a clear operation
	// https://redis.io/commands/del/
	_, err := redis.Int(cache.conn.Do("DEL", key))
	return err
}

// Disconnect from a Redis instance
func (cache *RedisCache) Disconnect() error {
	cache.conn.Flush()
	return cache.conn.Close()
}
