package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/golang-jwt/jwt/v5"
	"io"
	"strings"
)

const tokenSegmentsCount = 3

var errTokenSegments = errors.New("token contains an invalid number of segments")

var errTokenSubject = errors.New("token payload has no subject")

type TokenInspectorInterface interface {
	ExtractSubject(token string) (string, bool)
}

// TokenInspector reads the claims of a signed token without verifying the signature.
// The result is for display and lookups only; the backend remains the authority on token validity.
type TokenInspector struct {
	out    io.Writer
	parser *jwt.Parser
}

func NewTokenInspector(out io.Writer) *TokenInspector {
	return &TokenInspector{
		out:    out,
		parser: jwt.NewParser(jwt.WithPaddingAllowed()),
	}
}

func (inspector *TokenInspector) ExtractSubject(token string) (string, bool) {
	subject, err := inspector.decodeSubject(token)
	if err != nil {
		_, _ = fmt.Fprintf(inspector.out, "Error extracting username from token: %v\n", err)
		return "", false
	}

	return subject, true
}

func (inspector *TokenInspector) decodeSubject(token string) (string, error) {
	parts := strings.Split(token, ".")
	if len(parts) != tokenSegmentsCount {
		return "", errTokenSegments
	}

	payload, err := inspector.parser.DecodeSegment(parts[1])
	if err != nil {
		return "", fmt.Errorf("could not base64 decode payload: %w", err)
	}

	// only sub is read, the other claims may carry any type
	claims := jwt.MapClaims{}
	if err = json.Unmarshal(payload, &claims); err != nil {
		return "", fmt.Errorf("could not JSON decode payload: %w", err)
	}

	subject, _ := claims.GetSubject()
	if subject == "" {
		return "", errTokenSubject
	}

	return subject, nil
}
