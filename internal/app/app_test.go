package app

import (
	"testing"

	"github.com/deppfellow/lightbnb/internal/database"
	"github.com/redis/go-redis/v9"
)

func TestPingers(t *testing.T) {
	a := &App{DB: &database.Database{}}

	pingers := a.pingers()
	if _, ok := pingers["database"]; !ok {
		t.Fatal("expected database pinger")
	}
	if _, ok := pingers["redis"]; ok {
		t.Fatal("redis pinger must be absent without a client")
	}

	a.Redis = redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer a.Redis.Close()

	if _, ok := a.pingers()["redis"]; !ok {
		t.Fatal("expected redis pinger")
	}
}
