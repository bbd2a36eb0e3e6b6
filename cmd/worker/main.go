package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/pet-adoption-api/internal/app/api"
	platformobservability "github.com/Apurer/pet-adoption-api/internal/platform/observability"
	adoptionactivities "github.com/Apurer/pet-adoption-api/internal/platform/temporal/activities/adoptions"
	adoptionworkflows "github.com/Apurer/pet-adoption-api/internal/platform/temporal/workflows/adoptions"
)

func main() {
	ctx := context.Background()
	const serviceName = "pet-adoption-worker"
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName,
		platformobservability.WithLogLevel(cfg.LogLevel),
		platformobservability.WithEnvironment(cfg.Environment),
	)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	mailer, err := api.BuildMailer(cfg, logger)
	if err != nil {
		logger.Error("failed to configure mailer", slog.String("error", err.Error()))
		os.Exit(1)
	}
	invitationActivities := adoptionactivities.NewActivities(mailer)

	cfg.TemporalDisabled = false
	temporalClient, err := api.DialTemporal(cfg, instruments)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, adoptionworkflows.DocumentsInvitationTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(adoptionworkflows.DocumentsInvitationWorkflow, workflow.RegisterOptions{Name: adoptionworkflows.DocumentsInvitationWorkflowName})
	w.RegisterActivityWithOptions(invitationActivities.SendDocumentsInvitation, activity.RegisterOptions{Name: adoptionactivities.SendDocumentsInvitationActivityName})

	logger.Info("worker listening", slog.String("taskQueue", adoptionworkflows.DocumentsInvitationTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
