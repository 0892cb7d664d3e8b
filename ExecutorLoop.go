package main

import (
	"context"
	"io"
	"os/signal"
	"sync"
	"syscall"
)

const ExecutorLoopPoolSize = 2

type ExecutorInterface interface {
	Execute(ctx context.Context, wg *sync.WaitGroup)
}

type ExecutorLoop struct {
	out          io.Writer
	executorPool [ExecutorLoopPoolSize]ExecutorInterface
}

func (eventLoop *ExecutorLoop) execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	eventLoop.executeContext(ctx)
}

// executeContext stops every executor as soon as one of them returns.
func (eventLoop *ExecutorLoop) executeContext(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	wg := &sync.WaitGroup{}

	wg.Add(len(eventLoop.executorPool))
	for _, executor := range eventLoop.executorPool {
		go func(executor ExecutorInterface) {
			defer cancel()
			executor.Execute(ctx, wg)
		}(executor)
	}

	wg.Wait()
}
