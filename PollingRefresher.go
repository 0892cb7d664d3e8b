package main

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

const PollingRefresherStartedMessage = "Polling refresher started\n"

// PollingRefresher reloads the tables of the active dashboard on every tick.
// A refresh still running when the user navigates away is cancelled.
type PollingRefresher struct {
	out         io.Writer
	debugLogger *DebugLogger
	interval    time.Duration
	router      ViewRouterInterface
	refresher   SectionRefresherInterface
	renderer    ScreenRendererInterface
}

func (refresher *PollingRefresher) Execute(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	sectionChanged := make(chan struct{}, 1)
	refresher.router.OnChange(func(previous string, current string) {
		select {
		case sectionChanged <- struct{}{}:
		default:
		}
	})

	ticker := time.NewTicker(refresher.interval)
	defer ticker.Stop()

	refreshWg := &sync.WaitGroup{}
	sectionCtx, cancelSection := context.WithCancel(ctx)
	defer func() {
		cancelSection()
		refreshWg.Wait()
	}()

	refreshing := false
	refreshDone := make(chan struct{}, 1)

	_, _ = fmt.Fprint(refresher.out, PollingRefresherStartedMessage)

	for {
		select {
		case <-ctx.Done():
			return

		case <-sectionChanged:
			cancelSection()
			sectionCtx, cancelSection = context.WithCancel(ctx)

		case <-refreshDone:
			refreshing = false

		case <-ticker.C:
			PollTickTotal.Inc()
			if refreshing {
				refresher.debugLogger.Log("Poll tick skipped: previous refresh still running")
				continue
			}

			refreshing = true
			refreshWg.Add(1)
			go func(ctx context.Context, section string) {
				defer refreshWg.Done()
				refresher.refresh(ctx, section)
				refreshDone <- struct{}{}
			}(sectionCtx, refresher.router.ActiveSection())
		}
	}
}

func (refresher *PollingRefresher) refresh(ctx context.Context, section string) {
	if !refresher.refresher.Refresh(ctx, section) || ctx.Err() != nil {
		return
	}

	if refresher.renderer == nil || refresher.router.ActiveSection() != section {
		return
	}

	if err := refresher.renderer.RenderIfChanged(); err != nil {
		_, _ = fmt.Fprintf(refresher.out, "Failed to render screen: %v\n", err)
	}
}
