//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"gotalk/internal/chat/handler"
	"gotalk/internal/chat/registry"
	"gotalk/internal/chat/repository"
	"gotalk/internal/chat/service"
	"gotalk/internal/config"
	"gotalk/internal/dbmongo"
	"gotalk/internal/dbmysql"
	"gotalk/internal/media"
	"gotalk/internal/user"
)

// Wire generates the real body in wire_gen.go.
func InitializeApplication() (*Application, func(), error) {
	wire.Build(
		config.Load,
		dbmysql.NewMySQL,
		ProvideMongo,
		dbmongo.NewMediaStorage,
		registry.NewConnectionRegistry,
		wire.Bind(new(service.Deliverer), new(*registry.ConnectionRegistry)),
		repository.NewChatRepository,
		service.NewChatService,
		handler.NewChatHandler,
		user.NewUserRepository,
		user.NewUserService,
		user.NewHandler,
		media.NewUploadHandler,
		wire.Struct(new(Application), "*"),
	)
	return &Application{}, nil, nil
}
