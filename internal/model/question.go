// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

// Question is a single trivia item.
//
// CATEGORY AS TEXT:
// Category holds the referenced category id in its decimal string form ("1", "2", ...).
// Clients send either a number or a string; both are normalised to a string before
// the question reaches the store, so comparisons against a category id always go
// through strconv.FormatInt.
//
// When marshalled to JSON a Question looks like:
//
//	{"id":7,"question":"Who wrote Hamlet?","answer":"Shakespeare","category":"4","difficulty":2}
type Question struct {
	ID         int64  `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   string `json:"category"`
	Difficulty int    `json:"difficulty"`
}
