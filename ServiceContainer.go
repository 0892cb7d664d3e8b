package main

import (
	"context"
	"fmt"
	"github.com/redis/go-redis/v9"
	tele "gopkg.in/telebot.v3"
	"io"
	"net/http"
)

type ServiceContainer struct {
	DebugLogger      *DebugLogger
	SessionStore     SessionStoreInterface
	Router           *ViewRouter
	Document         *Document
	Notifier         *ConsoleNotifier
	ApiGateway       *ApiGateway
	Dashboards       *DashboardDispatcher
	ScreenComposer   *ScreenComposer
	Controller       *ConsoleController
	PollingRefresher *PollingRefresher
	Executor         *ExecutorLoop

	redisClient *redis.Client
}

func NewServiceContainer(config Config, in io.Reader, out io.Writer) (*ServiceContainer, error) {
	container := &ServiceContainer{
		DebugLogger: &DebugLogger{out: out, enabled: config.debug},
		Router:      NewViewRouter(),
		Document:    NewDocument(),
	}

	switch config.sessionStorage {
	case redisSessionStorage:
		container.redisClient = redis.NewClient(config.redisOptions)
		if _, err := container.redisClient.Ping(context.Background()).Result(); err != nil {
			_, _ = fmt.Fprintf(out, "Failed to connect to redisClient: %s\n", err.Error())
		}
		container.SessionStore = &RedisSessionStore{
			out:       out,
			redis:     container.redisClient,
			keyPrefix: config.sessionKeyPrefix,
		}

	case memorySessionStorage:
		container.SessionStore = &MemorySessionStore{}

	default:
		container.SessionStore = NewFileSessionStore(config.sessionFile, out)
	}

	input := NewConsoleInput(in)
	container.Notifier = &ConsoleNotifier{out: out, input: input}

	if config.telegramToken != "" {
		bot, err := tele.NewBot(tele.Settings{
			Token:   config.telegramToken,
			Offline: config.telegramOffline,
			URL:     config.telegramURL,
		})
		if err != nil {
			container.Close()
			return nil, err
		}

		container.Notifier.AddMirror(NewTelegramNotifier(out, container.DebugLogger, bot, config.telegramChatId))
	}

	container.ApiGateway = NewApiGateway(
		config.apiBase, &http.Client{Timeout: config.apiTimeout},
		container.SessionStore, container.Router, container.Notifier, out, container.DebugLogger,
	)

	validator := NewFormValidator()
	loads := &LoadCoalescer{}

	admin := &AdminModule{
		out:       out,
		gateway:   container.ApiGateway,
		document:  container.Document,
		notifier:  container.Notifier,
		validator: validator,
		loads:     loads,
	}

	teacher := &TeacherModule{
		out:       out,
		gateway:   container.ApiGateway,
		document:  container.Document,
		notifier:  container.Notifier,
		validator: validator,
		loads:     loads,
	}

	student := &StudentModule{
		out:       out,
		gateway:   container.ApiGateway,
		session:   container.SessionStore,
		inspector: NewTokenInspector(out),
		router:    container.Router,
		document:  container.Document,
		notifier:  container.Notifier,
		exporter:  ReportCardExporter{},
		loads:     loads,
	}

	container.Dashboards = &DashboardDispatcher{
		out:     out,
		session: container.SessionStore,
		router:  container.Router,
		admin:   admin,
		teacher: teacher,
		student: student,
	}

	container.ScreenComposer = NewScreenComposer(out, container.Router, container.Document)

	container.Controller = &ConsoleController{
		out:         out,
		debugLogger: container.DebugLogger,
		input:       input,
		composer:    container.ScreenComposer,
		router:      container.Router,
		dashboards:  container.Dashboards,
		auth: &AuthModule{
			out:        out,
			gateway:    container.ApiGateway,
			session:    container.SessionStore,
			router:     container.Router,
			document:   container.Document,
			notifier:   container.Notifier,
			validator:  validator,
			dashboards: container.Dashboards,
		},
		admin:   admin,
		teacher: teacher,
		student: student,
	}

	container.PollingRefresher = &PollingRefresher{
		out:         out,
		debugLogger: container.DebugLogger,
		interval:    config.pollInterval,
		router:      container.Router,
		refresher:   container.Dashboards,
		renderer:    container.ScreenComposer,
	}

	container.Executor = &ExecutorLoop{
		out: out,
		executorPool: [ExecutorLoopPoolSize]ExecutorInterface{
			container.Controller,
			container.PollingRefresher,
		},
	}

	return container, nil
}

func (container *ServiceContainer) Close() {
	if container.redisClient != nil {
		_ = container.redisClient.Close()
	}
}
