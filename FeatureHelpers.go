package main

import (
	"context"
	"errors"
	"net/url"
	"strconv"
)

// fetchJSON decodes a GET response into dest. ok is false with a nil error when the session was lost.
func fetchJSON(ctx context.Context, gateway ApiGatewayInterface, path string, query url.Values, dest any) (ok bool, err error) {
	response, err := gateway.Call(ctx, path, ApiRequestOptions{Query: query})
	if err != nil || response == nil {
		return false, err
	}

	return true, response.Decode(dest)
}

// mutate sends a write request; ok is false with a nil error when the session was lost.
func mutate(ctx context.Context, gateway ApiGatewayInterface, method string, path string, body any) (ok bool, err error) {
	response, err := gateway.Call(ctx, path, ApiRequestOptions{Method: method, Body: body})

	return response != nil, err
}

// isCancelled reports a load abandoned because its screen is no longer shown.
func isCancelled(ctx context.Context, err error) bool {
	return ctx.Err() != nil && errors.Is(err, ctx.Err())
}

func formatId(id int64) string {
	return strconv.FormatInt(id, 10)
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func orDefault(value string, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}
