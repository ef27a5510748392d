package main

import (
	"github.com/siddhantmane2006-glitch/verdict/internal/app/arena"
	"github.com/siddhantmane2006-glitch/verdict/pkg/logging"
	"go.uber.org/zap"
)

func main() {
	logging.Fatal("Arena server exited: ", zap.Error(
		arena.NewServer().Start(),
	))
}
