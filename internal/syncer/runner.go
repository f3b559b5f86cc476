// Package syncer runs the one-shot synchronization stages: fetch an entity
// collection from the source API, transform and scrub it, reconcile its
// references, and upsert it into Postgres.
package syncer

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/asset-sync/internal/dedupe"
	"github.com/spec-kit/asset-sync/internal/domain"
	"github.com/spec-kit/asset-sync/internal/observability"
	"github.com/spec-kit/asset-sync/internal/repository"
	"github.com/spec-kit/asset-sync/internal/source"
	"github.com/spec-kit/asset-sync/internal/transform"
)

// Repos bundles the entity repositories a run needs.
type Repos struct {
	Employees  repository.EmployeeRepository
	Addresses  repository.AddressRepository
	Countries  repository.CountryRepository
	Warehouses repository.WarehouseRepository
	Offices    repository.OfficeRepository
	Assets     repository.AssetRepository
	Orders     repository.OrderRepository
	Products   repository.ProductRepository
	Offboards  repository.OffboardRepository
}

// Runner executes individual sync stages. Stages are sequential; the only
// concurrency is the bounded fetch pool inside the source client.
type Runner struct {
	client    *source.Client
	repos     Repos
	validator *Validator
	metrics   *observability.Metrics
	logger    *zap.Logger
}

// NewRunner wires a stage runner.
func NewRunner(client *source.Client, repos Repos, metrics *observability.Metrics, logger *zap.Logger) *Runner {
	return &Runner{
		client:    client,
		repos:     repos,
		validator: NewValidator(metrics),
		metrics:   metrics,
		logger:    logger,
	}
}

// stageStats is the per-stage outcome fed into status and events.
type stageStats struct {
	Fetched  int
	Upserted int
	Dropped  int
}

func (r *Runner) syncWarehouses(ctx context.Context) (stageStats, error) {
	var stats stageStats
	records, err := r.client.FetchCollection(ctx, "warehouses", source.PathWarehouses)
	if err != nil {
		return stats, err
	}
	stats.Fetched = len(records)

	addressIDs, err := r.repos.Addresses.ListIDs(ctx)
	if err != nil {
		return stats, err
	}

	batch := make([]domain.Warehouse, 0, len(records))
	for _, rec := range records {
		wh := transform.Warehouse(rec)
		if wh.ID == "" {
			r.logger.Warn("skipping warehouse without id")
			r.metrics.RecordDropped("warehouses")
			stats.Dropped++
			continue
		}
		r.validator.Nullify("warehouses", &wh.AddressID, addressIDs)
		batch = append(batch, wh)
	}
	if err := r.repos.Warehouses.UpsertBatch(ctx, batch); err != nil {
		return stats, err
	}
	stats.Upserted = len(batch)
	r.metrics.RecordUpserted("warehouses", len(batch))
	return stats, nil
}

func (r *Runner) syncOffices(ctx context.Context) (stageStats, error) {
	var stats stageStats
	records, err := r.client.FetchCollection(ctx, "offices", source.PathOffices)
	if err != nil {
		return stats, err
	}
	stats.Fetched = len(records)

	addressIDs, err := r.repos.Addresses.ListIDs(ctx)
	if err != nil {
		return stats, err
	}

	batch := make([]domain.Office, 0, len(records))
	for _, rec := range records {
		office := transform.Office(rec)
		if office.ID == "" {
			r.logger.Warn("skipping office without id")
			r.metrics.RecordDropped("offices")
			stats.Dropped++
			continue
		}
		r.validator.Nullify("offices", &office.AddressID, addressIDs)
		batch = append(batch, office)
	}
	if err := r.repos.Offices.UpsertBatch(ctx, batch); err != nil {
		return stats, err
	}
	stats.Upserted = len(batch)
	r.metrics.RecordUpserted("offices", len(batch))
	return stats, nil
}

func (r *Runner) syncEmployees(ctx context.Context) (stageStats, error) {
	var stats stageStats
	records, err := r.client.FetchCollection(ctx, "employees", source.PathEmployees)
	if err != nil {
		return stats, err
	}
	stats.Fetched = len(records)

	officeIDs, err := r.repos.Offices.ListIDs(ctx)
	if err != nil {
		return stats, err
	}
	existing, err := r.repos.Employees.ListIDs(ctx)
	if err != nil {
		return stats, err
	}

	batch := make([]domain.Employee, 0, len(records))
	// Managers may arrive in the same batch as their reports, so the valid
	// set for managerId includes the batch itself.
	managerSet := make(map[string]bool, len(existing)+len(records))
	for id := range existing {
		managerSet[id] = true
	}
	for _, rec := range records {
		emp := transform.Employee(rec)
		if emp.ID == "" {
			r.logger.Warn("skipping employee without id")
			r.metrics.RecordDropped("employees")
			stats.Dropped++
			continue
		}
		managerSet[emp.ID] = true
		batch = append(batch, emp)
	}
	for i := range batch {
		r.validator.Nullify("employees", &batch[i].OfficeID, officeIDs)
		r.validator.Nullify("employees", &batch[i].ManagerID, managerSet)
	}
	if err := r.repos.Employees.UpsertBatch(ctx, batch); err != nil {
		return stats, err
	}
	stats.Upserted = len(batch)
	r.metrics.RecordUpserted("employees", len(batch))
	return stats, nil
}

// syncAddresses harvests per-employee addresses, dedupes them by natural
// key, upserts the countries referenced by those addresses, back-fills the
// employee address links, and mints gazetteer addresses for warehouses.
func (r *Runner) syncAddresses(ctx context.Context) (stageStats, error) {
	var stats stageStats

	employeeIDs, err := r.repos.Employees.ListIDs(ctx)
	if err != nil {
		return stats, err
	}
	ids := make([]string, 0, len(employeeIDs))
	for id := range employeeIDs {
		ids = append(ids, id)
	}

	existing, err := r.repos.Addresses.ListAll(ctx)
	if err != nil {
		return stats, err
	}
	registry := dedupe.NewAddressRegistry(existing)
	countries := dedupe.NewCountryRegistry()

	results := r.client.FetchMany(ctx, "addresses", ids, r.client.EmployeeAddress)

	batch := make([]domain.Address, 0, len(results))
	links := make(map[string]string, len(results))
	for _, res := range results {
		if res.Err != nil {
			r.logger.Warn("address fetch failed",
				zap.String("employee_id", res.ID), zap.Error(res.Err))
			continue
		}
		if !res.Found() {
			continue
		}
		stats.Fetched++

		if country, ok := transform.CountryFromAddress(res.Data); ok {
			countries.Add(country)
		}

		addr, ok := transform.Address(res.Data)
		if !ok {
			continue
		}
		canonical, created := registry.Canonical(addr)
		if created {
			batch = append(batch, canonical)
		}
		links[res.ID] = canonical.ID
	}

	if harvested := countries.Countries(); len(harvested) > 0 {
		if err := r.repos.Countries.UpsertBatch(ctx, harvested); err != nil {
			return stats, err
		}
		r.metrics.RecordUpserted("countries", len(harvested))
	}

	if err := r.repos.Addresses.UpsertBatch(ctx, batch); err != nil {
		return stats, err
	}
	stats.Upserted = len(batch)
	r.metrics.RecordUpserted("addresses", len(batch))

	for employeeID, addressID := range links {
		if err := r.repos.Employees.SetAddressID(ctx, employeeID, addressID); err != nil {
			return stats, err
		}
	}
	r.logger.Info("linked employee addresses", zap.Int("count", len(links)))

	if err := r.linkWarehouseAddresses(ctx, registry); err != nil {
		return stats, err
	}
	return stats, nil
}

// linkWarehouseAddresses gives each coded warehouse an address row from the
// gazetteer, reusing the canonical row when one already exists for the city.
func (r *Runner) linkWarehouseAddresses(ctx context.Context, registry *dedupe.AddressRegistry) error {
	warehouses, err := r.repos.Warehouses.ListCodes(ctx)
	if err != nil {
		return err
	}

	var minted []domain.Address
	links := make(map[string]string)
	for _, wh := range warehouses {
		if wh.AddressID != nil || wh.Code == nil {
			continue
		}
		loc, ok := warehouseGazetteer[strings.ToUpper(*wh.Code)]
		if !ok {
			r.logger.Warn("warehouse code not in gazetteer",
				zap.String("warehouse_id", wh.ID), zap.String("code", *wh.Code))
			continue
		}
		city, country := loc.City, loc.Country
		canonical, created := registry.Canonical(domain.Address{
			City:    &city,
			Country: &country,
		})
		if created {
			minted = append(minted, canonical)
		}
		links[wh.ID] = canonical.ID
	}

	if len(minted) > 0 {
		if err := r.repos.Addresses.UpsertBatch(ctx, minted); err != nil {
			return err
		}
		r.metrics.RecordUpserted("addresses", len(minted))
	}
	for warehouseID, addressID := range links {
		if err := r.repos.Warehouses.SetAddressID(ctx, warehouseID, addressID); err != nil {
			return err
		}
	}
	r.logger.Info("linked warehouse addresses",
		zap.Int("count", len(links)), zap.Int("minted", len(minted)))
	return nil
}

// syncAssets fetches the asset listing, enriches each asset with its detail
// payload, and reconciles the three-way location reference.
func (r *Runner) syncAssets(ctx context.Context) (stageStats, error) {
	var stats stageStats
	records, err := r.client.FetchCollection(ctx, "assets", source.PathAssets)
	if err != nil {
		return stats, err
	}
	stats.Fetched = len(records)

	ids := make([]string, 0, len(records))
	rawByID := make(map[string]source.Record, len(records))
	for _, rec := range records {
		id := transform.NewRecord(rec).ID("id")
		if id == "" {
			r.logger.Warn("skipping asset without id")
			r.metrics.RecordDropped("assets")
			stats.Dropped++
			continue
		}
		ids = append(ids, id)
		rawByID[id] = rec
	}

	detailByID := make(map[string]source.Record, len(ids))
	for _, res := range r.client.FetchMany(ctx, "assets", ids, r.client.AssetDetail) {
		if res.Err != nil {
			// The listing record still yields a usable row.
			r.logger.Warn("asset detail fetch failed",
				zap.String("asset_id", res.ID), zap.Error(res.Err))
			continue
		}
		if res.Found() {
			detailByID[res.ID] = res.Data
		}
	}

	employeeIDs, err := r.repos.Employees.ListIDs(ctx)
	if err != nil {
		return stats, err
	}
	officeIDs, err := r.repos.Offices.ListIDs(ctx)
	if err != nil {
		return stats, err
	}
	warehouseIDs, err := r.repos.Warehouses.ListIDs(ctx)
	if err != nil {
		return stats, err
	}

	batch := make([]domain.Asset, 0, len(ids))
	for _, id := range ids {
		asset := transform.Asset(rawByID[id], detailByID[id])
		r.validator.Nullify("assets", &asset.AssignedToID, employeeIDs)
		r.validator.Nullify("assets", &asset.OfficeID, officeIDs)
		r.validator.Nullify("assets", &asset.WarehouseID, warehouseIDs)
		batch = append(batch, asset)
	}
	if err := r.repos.Assets.UpsertBatch(ctx, batch); err != nil {
		return stats, err
	}
	stats.Upserted = len(batch)
	r.metrics.RecordUpserted("assets", len(batch))
	return stats, nil
}

func (r *Runner) syncOrders(ctx context.Context) (stageStats, error) {
	var stats stageStats
	records, err := r.client.FetchCollection(ctx, "orders", source.PathOrders)
	if err != nil {
		return stats, err
	}
	stats.Fetched = len(records)

	employeeIDs, err := r.repos.Employees.ListIDs(ctx)
	if err != nil {
		return stats, err
	}
	warehouseIDs, err := r.repos.Warehouses.ListIDs(ctx)
	if err != nil {
		return stats, err
	}

	batch := make([]domain.Order, 0, len(records))
	for _, rec := range records {
		order := transform.Order(rec)
		if order.ID == "" {
			r.logger.Warn("skipping order without id")
			r.metrics.RecordDropped("orders")
			stats.Dropped++
			continue
		}
		r.validator.Nullify("orders", &order.EmployeeID, employeeIDs)
		r.validator.Nullify("orders", &order.WarehouseID, warehouseIDs)
		batch = append(batch, order)
	}
	if err := r.repos.Orders.UpsertBatch(ctx, batch); err != nil {
		return stats, err
	}
	stats.Upserted = len(batch)
	r.metrics.RecordUpserted("orders", len(batch))
	return stats, nil
}

func (r *Runner) syncProducts(ctx context.Context) (stageStats, error) {
	var stats stageStats
	records, err := r.client.FetchCollection(ctx, "products", source.PathProducts)
	if err != nil {
		return stats, err
	}
	stats.Fetched = len(records)

	batch := make([]domain.Product, 0, len(records))
	for _, rec := range records {
		product := transform.Product(rec)
		if product.ID == "" {
			r.logger.Warn("skipping product without id")
			r.metrics.RecordDropped("products")
			stats.Dropped++
			continue
		}
		batch = append(batch, product)
	}
	transform.DedupeSKUs(batch)
	if err := r.repos.Products.UpsertBatch(ctx, batch); err != nil {
		return stats, err
	}
	stats.Upserted = len(batch)
	r.metrics.RecordUpserted("products", len(batch))
	return stats, nil
}

// syncOffboards drops rows whose employee is missing instead of nulling the
// reference; an offboard without an employee is meaningless.
func (r *Runner) syncOffboards(ctx context.Context) (stageStats, error) {
	var stats stageStats
	records, err := r.client.FetchCollection(ctx, "offboards", source.PathOffboards)
	if err != nil {
		return stats, err
	}
	stats.Fetched = len(records)

	employeeIDs, err := r.repos.Employees.ListIDs(ctx)
	if err != nil {
		return stats, err
	}

	batch := make([]domain.Offboard, 0, len(records))
	for _, rec := range records {
		offboard := transform.Offboard(rec)
		if offboard.ID == "" {
			r.logger.Warn("skipping offboard without id")
			r.metrics.RecordDropped("offboards")
			stats.Dropped++
			continue
		}
		if !r.validator.Valid(offboard.EmployeeID, employeeIDs) {
			r.logger.Warn("dropping offboard with unknown employee",
				zap.String("offboard_id", offboard.ID))
			r.metrics.RecordDropped("offboards")
			stats.Dropped++
			continue
		}
		batch = append(batch, offboard)
	}
	if err := r.repos.Offboards.UpsertBatch(ctx, batch); err != nil {
		return stats, err
	}
	stats.Upserted = len(batch)
	r.metrics.RecordUpserted("offboards", len(batch))
	return stats, nil
}
