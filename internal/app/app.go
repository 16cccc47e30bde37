package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	promgrpc "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	healthcheck "github.com/0101Programmer/orderManagementSystem/internal/health"
	"github.com/0101Programmer/orderManagementSystem/internal/metrics"
	"github.com/0101Programmer/orderManagementSystem/internal/service/orders"
	"github.com/0101Programmer/orderManagementSystem/internal/version"
)

const (
	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 5 * time.Second
)

// Run поднимает HTTP (API + веб-формы), метрики и gRPC health и блокируется до отмены ctx.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	deps, err := initRuntimeDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStorage(deps, logger)

	orderMetrics := metrics.NewOrderMetrics(nil)
	httpMetrics := metrics.NewHTTPMetrics(nil)

	// Kafka опциональна: ошибка уже залогирована, события просто не публикуются.
	producer, _ := initKafkaProducer(cfg.KafkaBrokers, logger)
	defer closeKafka(producer, logger)

	svc := orders.New(deps.repo,
		orders.WithLogger(logger.WithField("layer", "service")),
		orders.WithMetrics(orderMetrics),
		orders.WithEventPublisher(newEventPublisher(producer, cfg.KafkaTopic, orderMetrics)),
	)

	handler, err := newHTTPHandler(svc, httpMetrics, logger)
	if err != nil {
		return fmt.Errorf("build http handler: %w", err)
	}

	healthHandler := healthcheck.NewHandler(version.GetVersion())
	if deps.storageChecker != nil {
		healthHandler.RegisterChecker("storage", deps.storageChecker)
	}
	metricsSrv := startMetricsServer(ctx, cfg.MetricsAddr, logger, healthHandler)
	defer shutdownHTTP(metricsSrv, logger)

	httpLis, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		return fmt.Errorf("listen http %s: %w", cfg.HTTPAddr, err)
	}
	httpSrv := &http.Server{Handler: handler, ReadHeaderTimeout: readHeaderTimeout}

	errCh := make(chan error, 2)
	go func() {
		logger.Infof("HTTP сервер слушает %s", httpLis.Addr())
		if err := httpSrv.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	var (
		grpcServer   *grpc.Server
		healthServer *health.Server
	)
	if cfg.GRPCAddr != "" {
		grpcLis, err := net.Listen("tcp", cfg.GRPCAddr)
		if err != nil {
			shutdownHTTP(httpSrv, logger)
			return fmt.Errorf("listen grpc %s: %w", cfg.GRPCAddr, err)
		}
		grpcServer, healthServer = newGRPCServer(logger)
		go func() {
			logger.Infof("gRPC health сервер слушает %s", grpcLis.Addr())
			if err := grpcServer.Serve(grpcLis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				errCh <- fmt.Errorf("grpc server: %w", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем серверы")
		shutdownGRPC(grpcServer, healthServer, logger)
		shutdownHTTP(httpSrv, logger)
		return ctx.Err()
	case err := <-errCh:
		logger.WithError(err).Error("сервер завершился с ошибкой")
		shutdownGRPC(grpcServer, healthServer, logger)
		shutdownHTTP(httpSrv, logger)
		return err
	}
}

// newGRPCServer создаёт gRPC-сервер с health-сервисом, reflection и метриками.
func newGRPCServer(logger *log.Entry) (*grpc.Server, *health.Server) {
	grpcMetrics := promgrpc.NewServerMetrics()
	if err := prometheus.Register(grpcMetrics); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*promgrpc.ServerMetrics); ok {
				grpcMetrics = existing
			}
		} else {
			logger.WithError(err).Warn("failed to register grpc metrics")
		}
	}

	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(grpcMetrics.UnaryServerInterceptor()))

	healthServer := health.NewServer()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	grpcMetrics.InitializeMetrics(grpcServer)
	reflection.Register(grpcServer)

	return grpcServer, healthServer
}

// shutdownGRPC переводит health в NOT_SERVING и останавливает сервер, не дольше shutdownTimeout.
func shutdownGRPC(srv *grpc.Server, healthServer *health.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	if healthServer != nil {
		healthServer.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	}

	stoppedCh := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(stoppedCh)
	}()
	select {
	case <-stoppedCh:
	case <-time.After(shutdownTimeout):
		logger.Warn("graceful stop превысил таймаут, принудительно останавливаем")
		srv.Stop()
	}
}

// startMetricsServer запускает HTTP-обработчик /metrics и health-проверки.
func startMetricsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler *healthcheck.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: readHeaderTimeout}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/livez, %s/readyz", addr, addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http shutdown with error")
	}
}

func closeStorage(deps runtimeDependencies, logger *log.Entry) {
	if deps.closeFn == nil {
		return
	}
	if err := deps.closeFn(); err != nil {
		logger.WithError(err).Warn("failed to close storage")
		return
	}
	logger.Info("storage closed")
}
