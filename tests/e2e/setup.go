//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"sync"
	"time"

	"availability-engine/cmd/bootstrap"
	"availability-engine/cmd/bootstrap/components"
	"availability-engine/internal/infra/db"
	"availability-engine/internal/pkg/config"
	"availability-engine/internal/worker"
	"availability-engine/migrations"
	"availability-engine/tests/common/dbtest"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

const (
	pgUser     = "test"
	pgPassword = "testpass"
	pgPort     = nat.Port("5432/tcp")
)

// postgres is shared by every suite in the process; each suite gets its own database.
var postgres struct {
	once sync.Once
	host string
	port string
	err  error
}

func (s *SharedSuite) startPostgres() {
	postgres.once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "postgres:17",
				ExposedPorts: []string{string(pgPort)},
				Env: map[string]string{
					"POSTGRES_USER":     pgUser,
					"POSTGRES_PASSWORD": pgPassword,
				},
				// データはRAM上に置き、耐久性の設定はすべて切る
				Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw,size=512m"},
				Cmd: []string{"postgres",
					"-c", "fsync=off",
					"-c", "full_page_writes=off",
					"-c", "synchronous_commit=off",
					"-c", "max_connections=200",
				},
				WaitingFor: wait.ForSQL(pgPort, "pgx", func(host string, port nat.Port) string {
					return adminDSN(host, port.Port())
				}).WithStartupTimeout(time.Minute),
				Labels: map[string]string{"purpose": "availability-e2e"},
			},
			Started: true,
		})
		if err != nil {
			postgres.err = err
			return
		}
		mapped, err := c.MappedPort(ctx, pgPort)
		if err != nil {
			postgres.err = err
			return
		}
		postgres.host, postgres.err = c.Host(ctx)
		postgres.port = mapped.Port()
	})
	require.NoError(s.T(), postgres.err, "PostgreSQLコンテナの起動に失敗")
}

func adminDSN(host, port string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable", pgUser, pgPassword, host, port)
}

// createDatabase makes a throwaway database and drops it when the suite ends.
func (s *SharedSuite) createDatabase() config.DBConfig {
	t := s.T()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	admin, err := pgxpool.New(ctx, adminDSN(postgres.host, postgres.port))
	require.NoError(t, err)
	defer admin.Close()

	name := fmt.Sprintf("avail_%x", uuid.New().ID())
	_, err = admin.Exec(ctx, "CREATE DATABASE "+name)
	require.NoError(t, err, "テスト用データベースの作成に失敗")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if admin, err := pgxpool.New(ctx, adminDSN(postgres.host, postgres.port)); err == nil {
			defer admin.Close()
			_, _ = admin.Exec(ctx, "DROP DATABASE IF EXISTS "+name+" WITH (FORCE)")
		}
	})

	return config.DBConfig{
		Host:     postgres.host,
		Port:     postgres.port,
		User:     pgUser,
		Password: pgPassword,
		DBName:   name,
		SSLMode:  "disable",
		TimeZone: "UTC",
		MaxConns: 10,
	}
}

// startApp boots the same fx graph as cmd/main.go against the suite database, minus the HTTP
// listener. The sweeper loop stays off; tests call Sweeper.Tick directly.
func (s *SharedSuite) startApp(dbCfg config.DBConfig) {
	cfg := config.NewTestConfig()
	cfg.DB = dbCfg

	app := fx.New(
		fx.Supply(cfg),
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.LoggerModule,
		bootstrap.JWTModule,
		components.PersistenceModule,
		components.IntegrationModule,
		components.UseCaseModule,
		components.WorkerModule,
		components.HandlerModule,
		fx.Populate(&s.Router, &s.Sweeper),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(s.T(), app.Start(ctx), "fxアプリケーションの起動に失敗")

	s.T().Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = app.Stop(ctx)
	})
	s.Config = cfg
}

// SharedSuite is embedded by every e2e suite.
type SharedSuite struct {
	suite.Suite
	Router  *gin.Engine
	DB      *pgxpool.Pool
	Sweeper *worker.Sweeper
	Config  config.Config
}

func (s *SharedSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	s.startPostgres()
	dbCfg := s.createDatabase()

	pool, closeDB, err := db.Connect(dbCfg)
	require.NoError(s.T(), err, "データベース接続に失敗")
	s.T().Cleanup(closeDB)
	s.DB = pool

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	require.NoError(s.T(), migrations.Apply(ctx, pool), "マイグレーションに失敗")
	require.NoError(s.T(), dbtest.SeedReferenceData(pool), "参照データの投入に失敗")

	s.startApp(dbCfg)
}

// SetupSubTest gives every s.Run a clean slate.
func (s *SharedSuite) SetupSubTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "Failed to reset database state")
}

var _ suite.SetupSubTest = (*SharedSuite)(nil)
