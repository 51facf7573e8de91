package di

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"gotalk/internal/chat/handler"
	"gotalk/internal/chat/registry"
	"gotalk/internal/config"
	"gotalk/internal/dbmongo"
	"gotalk/internal/media"
	"gotalk/internal/user"
)

// Application bundles everything a binary needs after wiring.
type Application struct {
	Config        *config.Config
	DB            *gorm.DB
	Mongo         *dbmongo.MongoClient
	Registry      *registry.ConnectionRegistry
	ChatHandler   *handler.ChatHandler
	UserHandler   *user.Handler
	UploadHandler *media.UploadHandler
}

// ProvideMongo connects to MongoDB and hands wire a cleanup that disconnects
// on shutdown.
func ProvideMongo(cfg *config.Config) (*dbmongo.MongoClient, func(), error) {
	client, err := dbmongo.NewMongoConnection(cfg)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Close(ctx); err != nil {
			log.Printf("mongo disconnect failed: %v", err)
		}
	}

	return client, cleanup, nil
}
