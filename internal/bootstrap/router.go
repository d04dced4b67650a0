package bootstrap

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	httpapi "github.com/docqa-team/docqa-backend/internal/api/http"
	"github.com/docqa-team/docqa-backend/internal/api/http/middleware"
	docqahttp "github.com/docqa-team/docqa-backend/internal/document_question_answering/http"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	Core        *Core
}

func SetGinMode(env string) {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Core.Index)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")

	docqa := api.Group("/docqa")
	docqa.Use(middleware.RequestIDMiddleware())

	handler := docqahttp.New(dep.Core.Ingest, dep.Core.Query)
	handler.Register(docqa)

	return r
}
