package bot

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Dispatch feeds updates to workerCount goroutines running handle until
// ctx is cancelled or updates is closed. It returns once all workers exit.
// A panic while handling one update is logged and does not stop the worker.
func Dispatch(
	ctx context.Context,
	workerCount int,
	updates <-chan tgbotapi.Update,
	handle func(context.Context, tgbotapi.Update),
	logger *zap.Logger,
) {
	if workerCount < 1 {
		workerCount = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	wg := sync.WaitGroup{}
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case update, ok := <-updates:
					if !ok {
						return
					}
					safeHandle(ctx, update, handle, logger)
				}
			}
		}()
	}
	wg.Wait()
}

func safeHandle(ctx context.Context, update tgbotapi.Update, handle func(context.Context, tgbotapi.Update), logger *zap.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("update handler panicked", zap.Int("update_id", update.UpdateID), zap.Any("panic", r))
		}
	}()
	handle(ctx, update)
}
