package main

import "github.com/matryer/way"

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc("GET", "/api/health", s.handleHealth())
	s.router.HandleFunc("GET", "/api/puzzle", s.handleGeneratePuzzle())
	s.router.HandleFunc("GET", "/api/puzzles", s.handleListPuzzles())
	s.router.HandleFunc("GET", "/api/puzzles/:id", s.handleGetPuzzle())
}
