package main

import (
	"context"
	"errors"
	"fmt"
)

var errCommandUnavailable = errors.New("command is not available on this screen")

var errUsage = errors.New("usage")

type CommandHandler func(ctx context.Context, args []string) error

type MiddlewareFunc func(next CommandHandler) CommandHandler

func onlySectionMiddleware(router ViewRouterInterface, section string) MiddlewareFunc {
	return func(next CommandHandler) CommandHandler {
		return func(ctx context.Context, args []string) error {
			if router.ActiveSection() == section {
				return next(ctx, args)
			}

			return fmt.Errorf("%w (open %s first)", errCommandUnavailable, section)
		}
	}
}

func argumentsMiddleware(count int, usage string) MiddlewareFunc {
	return func(next CommandHandler) CommandHandler {
		return func(ctx context.Context, args []string) error {
			if len(args) == count {
				return next(ctx, args)
			}

			return fmt.Errorf("%w: %s", errUsage, usage)
		}
	}
}

func countCommandMiddleware() MiddlewareFunc {
	return func(next CommandHandler) CommandHandler {
		return func(ctx context.Context, args []string) error {
			CommandTotal.Inc()
			return next(ctx, args)
		}
	}
}
