package httpserver

import (
	"database/sql"
	"errors"

	"report-srv/config"
	"report-srv/internal/report"
	"report-srv/internal/retention"
	pkgKafka "report-srv/pkg/kafka"
	"report-srv/pkg/log"
	"report-srv/pkg/minio"
	"report-srv/pkg/openai"
	pkgRedis "report-srv/pkg/redis"
	"report-srv/pkg/scope"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HTTPServer struct {
	// Server Configuration
	gin         *gin.Engine
	l           log.Logger
	host        string
	port        int
	mode        string
	environment string

	// Database Configuration
	postgresDB *sql.DB
	gormDB     *gorm.DB

	// Infrastructure clients
	redisClient   pkgRedis.IRedis
	minioClient   minio.MinIO
	kafkaProducer pkgKafka.IProducer
	openaiClient  openai.IOpenAI

	// Authentication & Security Configuration
	config     *config.Config
	jwtManager scope.Manager

	// Domain usecases, set up by mapHandlers
	reportUC    report.UseCase
	retentionUC retention.UseCase
}

type Config struct {
	// Server Configuration
	Logger      log.Logger
	Host        string
	Port        int
	Mode        string
	Environment string

	// Database Configuration
	PostgresDB *sql.DB
	GormDB     *gorm.DB

	// Infrastructure clients. KafkaProducer is optional.
	RedisClient   pkgRedis.IRedis
	MinIOClient   minio.MinIO
	KafkaProducer pkgKafka.IProducer
	OpenAIClient  openai.IOpenAI

	// Authentication & Security Configuration
	Config     *config.Config
	JWTManager scope.Manager
}

// New creates a new HTTPServer instance with the provided configuration.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:           logger,
		gin:         gin.New(),
		host:        cfg.Host,
		port:        cfg.Port,
		mode:        cfg.Mode,
		environment: cfg.Environment,

		postgresDB: cfg.PostgresDB,
		gormDB:     cfg.GormDB,

		redisClient:   cfg.RedisClient,
		minioClient:   cfg.MinIOClient,
		kafkaProducer: cfg.KafkaProducer,
		openaiClient:  cfg.OpenAIClient,

		config:     cfg.Config,
		jwtManager: cfg.JWTManager,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

// validate validates that all required dependencies are provided.
func (srv *HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	// host can be empty (listen on all interfaces)
	if srv.port == 0 {
		return errors.New("port is required")
	}

	if srv.postgresDB == nil {
		return errors.New("postgresDB is required")
	}
	if srv.gormDB == nil {
		return errors.New("gormDB is required")
	}
	if srv.redisClient == nil {
		return errors.New("redisClient is required")
	}
	if srv.minioClient == nil {
		return errors.New("minioClient is required")
	}
	if srv.openaiClient == nil {
		return errors.New("openaiClient is required")
	}

	if srv.config == nil {
		return errors.New("config is required")
	}
	if srv.jwtManager == nil {
		return errors.New("jwtManager is required")
	}

	return nil
}
