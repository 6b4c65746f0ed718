package main

import (
	"scout/cmd/cmd"
	"scout/internal/logger"
)

func main() {
	logger.Init()
	cmd.Execute()
}
