package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"chat-service/config"
	"chat-service/controller"
	"chat-service/database"
	"chat-service/router"
	"chat-service/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	log.SetPrefix("chat-service: ")

	// Fail closed: no signing secret, no service.
	config.MustConfig("JWT_SECRET_KEY")

	rest := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		StrictRouting:         true,
		AppName:               "chat-service",
	})

	rest.Use(cors.New())

	database.RedisConnect()
	database.PostgresConnect()

	controller.SetStore(store.New(database.Postgres))

	router.Rest(rest)

	go rest.Listen(fmt.Sprintf(":%s", config.Config("SERVER_PORT")))

	exit := make(chan struct{})
	SignalC := make(chan os.Signal, 1)

	signal.Notify(SignalC, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		for s := range SignalC {
			switch s {
			case syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT:
				close(exit)
				return
			}
		}
	}()

	<-exit
	rest.Shutdown()
	os.Exit(0)
}
