package main

import (
	log "github.com/sirupsen/logrus"

	_ "taskflow/docs"
	"taskflow/internal/config"
	"taskflow/internal/server"
)

// @title           TaskFlow API
// @version         1.0
// @description     Kanban board with a schedule view derived from dated tasks.

// @host      localhost:8080
// @BasePath  /

// @tag.name Board
// @tag.description Board snapshot and drag-and-drop

// @tag.name Columns
// @tag.description Column management operations

// @tag.name Tasks
// @tag.description Task management operations

// @tag.name Schedule
// @tag.description Calendar view, navigation and standalone events

// @schemes http
func main() {
	cfg := config.Load()

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatalf("server initialization failed: %v", err)
	}

	s.Run()
}
