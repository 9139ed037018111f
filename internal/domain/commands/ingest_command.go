package commands

import (
	"context"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/cvefinder/internal/domain/entities"
	infraRepos "github.com/rios0rios0/cvefinder/internal/infrastructure/repositories"
	"github.com/rios0rios0/cvefinder/internal/infrastructure/metrics"
)

// IngestMessage is the message of every ingestion answer.
const IngestMessage = "Hello from Lambda!"

// Ingest is the interface for the ingestion command.
type Ingest interface {
	Execute(ctx context.Context, settings *entities.Settings, raw any) entities.IngestResult
}

// IngestCommand normalizes one scanner event and appends it to the aggregation store.
// It always answers 200: every failure is logged and counted instead.
type IngestCommand struct {
	storeRegistry *infraRepos.StoreRegistry
}

// NewIngestCommand creates a new IngestCommand.
func NewIngestCommand(storeRegistry *infraRepos.StoreRegistry) *IngestCommand {
	return &IngestCommand{storeRegistry: storeRegistry}
}

// Execute ingests a decoded scanner event.
func (it *IngestCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	raw any,
) entities.IngestResult {
	finding, err := entities.NormalizeFinding(raw)
	if err != nil {
		logger.Errorf("[ingest] Ignoring event: %v", err)
		metrics.FindingsIngestedTotal.WithLabelValues("malformed").Inc()
		return newIngestResult(entities.VulnerabilityRecord{})
	}

	status := it.store(ctx, settings, finding)
	metrics.FindingsIngestedTotal.WithLabelValues(status).Inc()
	return newIngestResult(finding.Record)
}

func (it *IngestCommand) store(
	ctx context.Context,
	settings *entities.Settings,
	finding entities.NormalizedFinding,
) string {
	if finding.RepositoryName == "" {
		logger.Warnf("[ingest] Event has no ECR repository, nothing to aggregate")
		return "skipped"
	}

	store, err := it.storeRegistry.Get(ctx, settings.Store.Type, settings.Store)
	if err != nil {
		logger.Errorf("[ingest] %v", err)
		return string(entities.AppendStatusFailed)
	}

	result := store.Append(ctx, finding.RepositoryName, finding.Record)
	switch result.Status {
	case entities.AppendStatusDuplicate:
		logger.Infof("[ingest] Vulnerability info already exists for %q. No update needed.", finding.RepositoryName)
	case entities.AppendStatusAppended:
		logger.Infof("[ingest] Vulnerability %s appended to %q", finding.Record.CVEID, finding.RepositoryName)
	case entities.AppendStatusFailed:
		logger.Errorf("[ingest] Failed to aggregate finding for %q: %v", finding.RepositoryName, result.Err)
	}
	return string(result.Status)
}

func newIngestResult(record entities.VulnerabilityRecord) entities.IngestResult {
	return entities.IngestResult{
		StatusCode: 200, //nolint:mnd // webhook contract
		Body: entities.IngestBody{
			Message:              IngestMessage,
			VulnerabilityDetails: record,
		},
	}
}
