package sync

import (
	"context"
	"errors"
	"fmt"
	"strings"
	gosync "sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/catsync/backend/internal/domain/catalog"
	"github.com/catsync/backend/internal/domain/identity"
	"github.com/catsync/backend/internal/domain/integration"
	"github.com/catsync/backend/internal/domain/shared"
	domain "github.com/catsync/backend/internal/domain/sync"
)

// maxErrorLogEntries caps the per-run error buffer
const maxErrorLogEntries = 50

// CredentialDecryptor opens encrypted tenant credentials just in time
type CredentialDecryptor interface {
	Decrypt(encoded string) (string, error)
}

// SyncService orchestrates one tenant's sync run: fetch, per-item
// upsert, log finalization, and event publication. A tenant's runs
// never overlap; a concurrent trigger is skipped, not queued.
type SyncService struct {
	tenantRepo   identity.TenantRepository
	productRepo  catalog.ProductRepository
	logRepo      domain.LogRepository
	scheduleRepo domain.ScheduleRepository
	provider     integration.CatalogProvider
	decryptor    CredentialDecryptor
	planner      CronPlanner
	publisher    shared.EventPublisher
	history      *History
	logger       *zap.Logger

	mu       gosync.Mutex
	inFlight map[uuid.UUID]bool
}

// NewSyncService creates a sync service
func NewSyncService(
	tenantRepo identity.TenantRepository,
	productRepo catalog.ProductRepository,
	logRepo domain.LogRepository,
	scheduleRepo domain.ScheduleRepository,
	provider integration.CatalogProvider,
	decryptor CredentialDecryptor,
	planner CronPlanner,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *SyncService {
	return &SyncService{
		tenantRepo:   tenantRepo,
		productRepo:  productRepo,
		logRepo:      logRepo,
		scheduleRepo: scheduleRepo,
		provider:     provider,
		decryptor:    decryptor,
		planner:      planner,
		publisher:    publisher,
		history:      NewHistory(50),
		logger:       logger,
	}
}

// RunSync executes one sync run for the tenant. The returned log is
// finalized; fetch and item failures are recorded in it rather than
// returned as errors. Configuration problems (unknown tenant, missing
// credentials, overlapping run) are returned as errors before any log
// row is written.
func (s *SyncService) RunSync(ctx context.Context, tenantID uuid.UUID, syncType domain.SyncType) (*domain.SyncLog, error) {
	if !s.acquire(tenantID) {
		return nil, shared.ErrSyncInProgress
	}
	defer s.release(tenantID)

	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if !tenant.IsActive() {
		return nil, shared.NewDomainError("TENANT_SUSPENDED", "Tenant is suspended")
	}
	if !tenant.HasCredentials() {
		return nil, shared.ErrCredentialsNotSet
	}

	schedule := s.loadSchedule(ctx, tenantID)
	if syncType == domain.SyncTypeScheduled && schedule != nil && !schedule.SyncProducts {
		return nil, shared.NewDomainError("SYNC_DISABLED", "Product sync is disabled for this schedule")
	}

	log := domain.NewSyncLog(tenantID, syncType)
	if err := s.logRepo.Create(ctx, log); err != nil {
		return nil, err
	}

	s.execute(ctx, tenant, log)

	if err := s.logRepo.Update(ctx, log); err != nil {
		s.logger.Error("failed to finalize sync log",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err),
		)
	}

	s.recordRun(ctx, schedule, log)
	s.publishCompleted(ctx, tenant.StoreName, schedule, log)

	s.logger.Info("sync run completed",
		zap.String("tenant_id", tenantID.String()),
		zap.String("sync_type", string(syncType)),
		zap.String("status", string(log.Status)),
		zap.Int("total", log.ItemsTotal),
		zap.Int("synced", log.ItemsSynced),
		zap.Int("failed", log.ItemsFailed),
	)

	return log, nil
}

// execute fetches the remote catalog and upserts each record,
// finalizing the log in place
func (s *SyncService) execute(ctx context.Context, tenant *identity.Tenant, log *domain.SyncLog) {
	creds, err := s.decryptCredentials(tenant)
	if err != nil {
		log.Fail(fmt.Sprintf("decrypt credentials: %v", err))
		return
	}

	result, err := s.provider.FetchCatalog(ctx, creds)
	if err != nil {
		log.Fail(fmt.Sprintf("fetch catalog: %v", err))
		return
	}

	var (
		synced  int
		failed  int
		errBuf  []string
		skipped int
	)

	for _, data := range result.Products {
		if err := s.upsertOne(ctx, tenant.ID, data); err != nil {
			failed++
			if len(errBuf) < maxErrorLogEntries {
				errBuf = append(errBuf, fmt.Sprintf("%s: %v", data.MarketplaceProductID, err))
			} else {
				skipped++
			}
			continue
		}
		synced++
	}

	if skipped > 0 {
		errBuf = append(errBuf, fmt.Sprintf("... and %d more errors", skipped))
	}
	if result.Partial {
		errBuf = append(errBuf, fmt.Sprintf("fetch aborted after page %d: %s", result.Pages, result.Err))
	}

	log.Finalize(len(result.Products), synced, failed, strings.Join(errBuf, "; "))
}

// upsertOne applies one fetched record, keyed by marketplace product id
func (s *SyncService) upsertOne(ctx context.Context, tenantID uuid.UUID, data catalog.ProductData) error {
	existing, err := s.productRepo.FindByMarketplaceID(ctx, tenantID, data.MarketplaceProductID)
	switch {
	case err == nil:
		if err := existing.ApplyRemote(data); err != nil {
			s.markProductFailed(ctx, existing)
			return err
		}
		existing.MarkSynced()
		if err := s.productRepo.Upsert(ctx, existing); err != nil {
			s.markProductFailed(ctx, existing)
			return err
		}
		return nil
	case errors.Is(err, shared.ErrNotFound):
		product, err := catalog.NewProduct(tenantID, data)
		if err != nil {
			return err
		}
		product.MarkSynced()
		return s.productRepo.Upsert(ctx, product)
	default:
		return err
	}
}

// markProductFailed flags a mirrored product whose update was lost this
// run. Best effort; the run's counters already carry the failure.
func (s *SyncService) markProductFailed(ctx context.Context, product *catalog.Product) {
	product.MarkFailed()
	if err := s.productRepo.Save(ctx, product); err != nil {
		s.logger.Warn("failed to persist product sync status",
			zap.String("product_id", product.ID.String()),
			zap.Error(err),
		)
	}
}

// decryptCredentials opens the tenant's stored API credentials
func (s *SyncService) decryptCredentials(tenant *identity.Tenant) (integration.Credentials, error) {
	apiKey, err := s.decryptor.Decrypt(tenant.EncryptedAPIKey)
	if err != nil {
		return integration.Credentials{}, err
	}
	apiSecret, err := s.decryptor.Decrypt(tenant.EncryptedAPISecret)
	if err != nil {
		return integration.Credentials{}, err
	}
	return integration.Credentials{APIKey: apiKey, APISecret: apiSecret}, nil
}

// loadSchedule fetches the tenant's schedule row; nil means the tenant
// never configured one
func (s *SyncService) loadSchedule(ctx context.Context, tenantID uuid.UUID) *domain.SyncSchedule {
	schedule, err := s.scheduleRepo.FindByTenant(ctx, tenantID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("failed to load sync schedule",
				zap.String("tenant_id", tenantID.String()),
				zap.Error(err),
			)
		}
		return nil
	}
	return schedule
}

// recordRun updates the schedule counters and the in-memory history
func (s *SyncService) recordRun(ctx context.Context, schedule *domain.SyncSchedule, log *domain.SyncLog) {
	if schedule != nil {
		var nextRun *time.Time
		if schedule.Armed() {
			if next, err := s.planner.Next(schedule.CronExpr, schedule.Timezone, time.Now()); err == nil {
				nextRun = &next
			}
		}
		schedule.RecordRun(log.Status, nextRun)
		if err := s.scheduleRepo.Save(ctx, schedule); err != nil {
			s.logger.Warn("failed to update schedule counters",
				zap.String("tenant_id", log.TenantID.String()),
				zap.Error(err),
			)
		}
	}

	completedAt := time.Now()
	if log.CompletedAt != nil {
		completedAt = *log.CompletedAt
	}
	s.history.Add(RunRecord{
		TenantID:    log.TenantID,
		SyncLogID:   log.ID,
		SyncType:    log.SyncType,
		Status:      log.Status,
		ItemsTotal:  log.ItemsTotal,
		ItemsSynced: log.ItemsSynced,
		ItemsFailed: log.ItemsFailed,
		StartedAt:   log.StartedAt,
		CompletedAt: completedAt,
	})
}

// publishCompleted emits the SyncCompleted event; webhook dispatch
// hangs off the event bus and never fails the run. Scheduled runs
// honor the schedule's notification preferences; manual and webhook
// triggers always publish.
func (s *SyncService) publishCompleted(ctx context.Context, storeName string, schedule *domain.SyncSchedule, log *domain.SyncLog) {
	if log.SyncType == domain.SyncTypeScheduled && schedule != nil && !schedule.ShouldNotify(log.Status) {
		return
	}
	event := domain.NewSyncCompletedEvent(storeName, log)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish sync completed event",
			zap.String("tenant_id", log.TenantID.String()),
			zap.Error(err),
		)
	}
}

// ListLogs returns the tenant's sync logs, newest first
func (s *SyncService) ListLogs(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[domain.SyncLog], error) {
	logs, total, err := s.logRepo.FindByTenant(ctx, tenantID, filter)
	if err != nil {
		return shared.Paginated[domain.SyncLog]{}, err
	}
	return shared.NewPaginated(logs, total, filter.Page, filter.PageSize), nil
}

// LatestLog returns the most recent sync log for the tenant
func (s *SyncService) LatestLog(ctx context.Context, tenantID uuid.UUID) (*domain.SyncLog, error) {
	return s.logRepo.FindLatest(ctx, tenantID)
}

// RecentRuns returns the newest entries of the in-memory run history
func (s *SyncService) RecentRuns(limit int) []RunRecord {
	return s.history.Recent(limit)
}

// Running reports whether a run is currently in flight for the tenant
func (s *SyncService) Running(tenantID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight[tenantID]
}

// acquire takes the per-tenant run slot; false means a run is in flight
func (s *SyncService) acquire(tenantID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight == nil {
		s.inFlight = make(map[uuid.UUID]bool)
	}
	if s.inFlight[tenantID] {
		return false
	}
	s.inFlight[tenantID] = true
	return true
}

func (s *SyncService) release(tenantID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, tenantID)
}
