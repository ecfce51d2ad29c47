package main

import (
	"context"
	"log"
	"time"

	mongoarchive "forestguardian/internal/adapter/archive/mongo"
	httpadapter "forestguardian/internal/adapter/http"
	metricsinmem "forestguardian/internal/adapter/metrics/inmemory"
	"forestguardian/internal/adapter/policy/greedy"
	"forestguardian/internal/adapter/policy/random"
	gormrepo "forestguardian/internal/adapter/repo/gorm"
	memoryrepo "forestguardian/internal/adapter/repo/memory"
	"forestguardian/internal/adapter/sink"
	"forestguardian/internal/app/episode"
	"forestguardian/internal/app/observe"
	"forestguardian/internal/app/ports"
	"forestguardian/internal/app/replay"
	"forestguardian/internal/config"

	"github.com/cloudwego/hertz/pkg/app/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	episodeRepo, eventRepo, txManager := mustBuildRepos(cfg)
	archive := buildArchive(cfg)
	kpiRecorder := metricsinmem.NewRecorder()
	registry := episode.NewRegistry()

	recorder := sink.Recorder{Tx: txManager, Episodes: episodeRepo, Events: eventRepo}
	sinks := []ports.StepSink{recorder}
	if archive != nil {
		sinks = append(sinks, archive)
	}

	h := httpadapter.Handler{
		Episodes:      registry,
		ObserveUC:     observe.UseCase{Episodes: registry},
		ReplayUC:      replay.UseCase{Events: eventRepo},
		Archive:       missionArchiveOrNil(archive),
		KPI:           kpiRecorder,
		DefaultConfig: cfg.EpisodeConfig(),
		Policy:        buildPolicy(cfg),
		SinkFactory:   func() []ports.StepSink { return sinks },
	}

	s := server.Default(server.WithHostPorts(cfg.Addr))
	h.RegisterRoutes(s)

	log.Printf("forestguardian server listening on %s (policy: %s)", cfg.Addr, cfg.PolicyKind)
	s.Spin()
}

func mustBuildRepos(cfg config.Config) (ports.EpisodeRepository, ports.DecisionEventRepository, ports.TxManager) {
	if cfg.PostgresDSN == "" {
		log.Println("FOREST_DB_DSN not set, using in-memory repositories")
		store := memoryrepo.NewStore()
		return memoryrepo.NewEpisodeRepo(store), memoryrepo.NewDecisionEventRepo(store), memoryrepo.TxManager{}
	}

	db, err := gormrepo.OpenPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := gormrepo.ApplyMigrations(ctx, db, cfg.MigrationsDir); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}
	return gormrepo.NewEpisodeRepo(db), gormrepo.NewDecisionEventRepo(db), gormrepo.NewTxManager(db)
}

func buildArchive(cfg config.Config) *mongoarchive.Archive {
	if cfg.MongoURI == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	archive, err := mongoarchive.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("connect mission archive: %v", err)
	}
	return archive
}

// missionArchiveOrNil avoids storing a typed nil in the handler's
// interface field when the archive is disabled.
func missionArchiveOrNil(archive *mongoarchive.Archive) ports.MissionArchive {
	if archive == nil {
		return nil
	}
	return archive
}

func buildPolicy(cfg config.Config) ports.Policy {
	if cfg.PolicyKind == "random" {
		return random.New(cfg.Seed)
	}
	return greedy.Policy{}
}
