package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/qri-io/jsonschema"

	"github.com/sakif/trivia-api/internal/apperror"
)

// REQUEST SCHEMAS:
// Each JSON body is checked against a JSON Schema before it is decoded into a
// Go struct. The schemas only pin down types; presence and truthiness are
// business rules and stay in the service layer.

const createQuestionSchema = `{
	"type": "object",
	"properties": {
		"question":   {"type": ["string", "null"]},
		"answer":     {"type": ["string", "null"]},
		"category":   {"type": ["string", "integer", "null"]},
		"difficulty": {"type": ["integer", "null"]}
	}
}`

const searchSchema = `{
	"type": "object",
	"properties": {
		"searchTerm": {"type": ["string", "null"]}
	}
}`

const quizSchema = `{
	"type": "object",
	"properties": {
		"previous_questions": {
			"type": ["array", "null"],
			"items": {"type": "integer"}
		},
		"quiz_category": {
			"type": ["object", "null"],
			"properties": {
				"id": {"type": ["integer", "string", "null"]}
			}
		}
	}
}`

var (
	createQuestionRequestSchema = mustSchema(createQuestionSchema)
	searchRequestSchema         = mustSchema(searchSchema)
	quizRequestSchema           = mustSchema(quizSchema)
)

// mustSchema parses a schema literal. It panics at init time on a bad literal.
func mustSchema(src string) *jsonschema.Schema {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(src), rs); err != nil {
		panic(fmt.Sprintf("handler: invalid request schema: %v", err))
	}
	return rs
}

// decodeBody validates body against schema and then decodes it into dst.
//
// A body that is not JSON at all is always apperror.ErrBadRequest. A body
// that is JSON but breaks the schema is reported through onViolation, which
// lets each endpoint choose between 400 and 422. An empty body is read as {},
// so every field counts as absent.
func decodeBody(ctx context.Context, body []byte, schema *jsonschema.Schema, dst any, onViolation func(msg string) error) error {
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}
	if !json.Valid(body) {
		return apperror.BadRequest("request body is not valid JSON")
	}

	keyErrs, err := schema.ValidateBytes(ctx, body)
	if err != nil {
		return apperror.BadRequest(fmt.Sprintf("validating request body: %v", err))
	}
	if len(keyErrs) > 0 {
		parts := make([]string, 0, len(keyErrs))
		for _, ke := range keyErrs {
			parts = append(parts, ke.PropertyPath+": "+ke.Message)
		}
		return onViolation(strings.Join(parts, "; "))
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return onViolation(err.Error())
	}
	return nil
}
