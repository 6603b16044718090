package main

import (
	"net/http"
	"os"

	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"

	"laserbench/db"
)

// Server routes puzzle API calls.
type Server struct {
	router  *way.Router
	dbReady bool
}

func main() {
	server := &Server{}
	if err := db.Connect(); err != nil {
		log.Warnf("record store unavailable: %v", err)
	} else {
		server.dbReady = true
	}
	server.routes()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
		log.Printf("Defaulting to port %s", port)
	}
	log.Infof("laserbench API listening on :%s", port)
	log.Fatalln(http.ListenAndServe(":"+port, server.router))
}
