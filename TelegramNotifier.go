package main

import (
	"context"
	"errors"
	"fmt"
	"golang.org/x/time/rate"
	tele "gopkg.in/telebot.v3"
	"io"
	"time"
)

const sendRetryCount = 5

var noticeTitles = map[NoticeKind]string{
	NoticeAlert: "⚠️ Grade portal",
	NoticeInfo:  "ℹ️ Grade portal",
}

// TelegramNotifier mirrors console notices into a Telegram chat.
type TelegramNotifier struct {
	out         io.Writer
	debugLogger *DebugLogger
	bot         *tele.Bot
	chatId      tele.ChatID
	rateLimiter *rate.Limiter
}

func NewTelegramNotifier(out io.Writer, debugLogger *DebugLogger, bot *tele.Bot, chatId int64) *TelegramNotifier {
	return &TelegramNotifier{
		out:         out,
		debugLogger: debugLogger,
		bot:         bot,
		chatId:      tele.ChatID(chatId),
		rateLimiter: rate.NewLimiter(rate.Every(time.Second), 30),
	}
}

func (notifier *TelegramNotifier) Mirror(kind NoticeKind, message string) error {
	sent, err := notifier.send(notifier.chatId, noticeTitles[kind]+"\n"+message)
	notifier.debugLogger.Log("TelegramNotifier: mirrored %s notice to %d; err: %v; message: %#v", kind, notifier.chatId, err, sent)

	if err != nil {
		NotifierErrorCount.Inc()
		return fmt.Errorf("telegram: %w", err)
	}

	return nil
}

func (notifier *TelegramNotifier) send(to tele.Recipient, what interface{}, opts ...interface{}) (message *tele.Message, err error) {
	floodError := &tele.FloodError{}

	for i := 0; i < sendRetryCount; i++ {
		err = notifier.rateLimiter.Wait(context.Background())
		if err != nil {
			return nil, err
		}

		message, err = notifier.bot.Send(to, what, opts...)
		if errors.As(err, floodError) {
			TooManyRequestsCount.Inc()
			time.Sleep(time.Second * time.Duration(floodError.RetryAfter))
			continue
		}

		return message, err
	}

	return nil, err
}
