package syncer

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/asset-sync/internal/config"
	"github.com/spec-kit/asset-sync/internal/domain"
	"github.com/spec-kit/asset-sync/internal/events"
	"github.com/spec-kit/asset-sync/internal/observability"
	"github.com/spec-kit/asset-sync/internal/source"
)

// fakeStore implements every repository interface in memory so stages can be
// exercised without a database.
type fakeStore struct {
	employees      map[string]domain.Employee
	addresses      map[string]domain.Address
	countries      map[string]domain.Country
	warehouses     map[string]domain.Warehouse
	offices        map[string]domain.Office
	assets         map[string]domain.Asset
	orders         map[string]domain.Order
	products       map[string]domain.Product
	offboards      map[string]domain.Offboard
	employeeLinks  map[string]string
	warehouseLinks map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		employees:      make(map[string]domain.Employee),
		addresses:      make(map[string]domain.Address),
		countries:      make(map[string]domain.Country),
		warehouses:     make(map[string]domain.Warehouse),
		offices:        make(map[string]domain.Office),
		assets:         make(map[string]domain.Asset),
		orders:         make(map[string]domain.Order),
		products:       make(map[string]domain.Product),
		offboards:      make(map[string]domain.Offboard),
		employeeLinks:  make(map[string]string),
		warehouseLinks: make(map[string]string),
	}
}

func idSet[T any](m map[string]T) map[string]bool {
	out := make(map[string]bool, len(m))
	for id := range m {
		out[id] = true
	}
	return out
}

type fakeEmployees struct{ s *fakeStore }

func (f fakeEmployees) UpsertBatch(_ context.Context, batch []domain.Employee) error {
	for _, e := range batch {
		f.s.employees[e.ID] = e
	}
	return nil
}
func (f fakeEmployees) ListIDs(context.Context) (map[string]bool, error) {
	return idSet(f.s.employees), nil
}
func (f fakeEmployees) SetAddressID(_ context.Context, employeeID, addressID string) error {
	f.s.employeeLinks[employeeID] = addressID
	return nil
}

type fakeAddresses struct{ s *fakeStore }

func (f fakeAddresses) UpsertBatch(_ context.Context, batch []domain.Address) error {
	for _, a := range batch {
		f.s.addresses[a.ID] = a
	}
	return nil
}
func (f fakeAddresses) ListIDs(context.Context) (map[string]bool, error) {
	return idSet(f.s.addresses), nil
}
func (f fakeAddresses) ListAll(context.Context) ([]domain.Address, error) {
	out := make([]domain.Address, 0, len(f.s.addresses))
	for _, a := range f.s.addresses {
		out = append(out, a)
	}
	return out, nil
}

type fakeCountries struct{ s *fakeStore }

func (f fakeCountries) UpsertBatch(_ context.Context, batch []domain.Country) error {
	for _, c := range batch {
		f.s.countries[c.Code] = c
	}
	return nil
}

type fakeWarehouses struct{ s *fakeStore }

func (f fakeWarehouses) UpsertBatch(_ context.Context, batch []domain.Warehouse) error {
	for _, w := range batch {
		f.s.warehouses[w.ID] = w
	}
	return nil
}
func (f fakeWarehouses) ListIDs(context.Context) (map[string]bool, error) {
	return idSet(f.s.warehouses), nil
}
func (f fakeWarehouses) ListCodes(context.Context) ([]domain.Warehouse, error) {
	out := make([]domain.Warehouse, 0, len(f.s.warehouses))
	for _, w := range f.s.warehouses {
		if linked, ok := f.s.warehouseLinks[w.ID]; ok {
			id := linked
			w.AddressID = &id
		}
		out = append(out, w)
	}
	return out, nil
}
func (f fakeWarehouses) SetAddressID(_ context.Context, warehouseID, addressID string) error {
	f.s.warehouseLinks[warehouseID] = addressID
	return nil
}

type fakeOffices struct{ s *fakeStore }

func (f fakeOffices) UpsertBatch(_ context.Context, batch []domain.Office) error {
	for _, o := range batch {
		f.s.offices[o.ID] = o
	}
	return nil
}
func (f fakeOffices) ListIDs(context.Context) (map[string]bool, error) {
	return idSet(f.s.offices), nil
}

type fakeAssets struct{ s *fakeStore }

func (f fakeAssets) UpsertBatch(_ context.Context, batch []domain.Asset) error {
	for _, a := range batch {
		f.s.assets[a.ID] = a
	}
	return nil
}
func (f fakeAssets) ListIDs(context.Context) (map[string]bool, error) {
	return idSet(f.s.assets), nil
}

type fakeOrders struct{ s *fakeStore }

func (f fakeOrders) UpsertBatch(_ context.Context, batch []domain.Order) error {
	for _, o := range batch {
		f.s.orders[o.ID] = o
	}
	return nil
}

type fakeProducts struct{ s *fakeStore }

func (f fakeProducts) UpsertBatch(_ context.Context, batch []domain.Product) error {
	for _, p := range batch {
		f.s.products[p.ID] = p
	}
	return nil
}

type fakeOffboards struct{ s *fakeStore }

func (f fakeOffboards) UpsertBatch(_ context.Context, batch []domain.Offboard) error {
	for _, o := range batch {
		f.s.offboards[o.ID] = o
	}
	return nil
}

func (s *fakeStore) repos() Repos {
	return Repos{
		Employees:  fakeEmployees{s},
		Addresses:  fakeAddresses{s},
		Countries:  fakeCountries{s},
		Warehouses: fakeWarehouses{s},
		Offices:    fakeOffices{s},
		Assets:     fakeAssets{s},
		Orders:     fakeOrders{s},
		Products:   fakeProducts{s},
		Offboards:  fakeOffboards{s},
	}
}

func newTestRunner(t *testing.T, handler http.Handler) (*Runner, *fakeStore, *observability.Metrics) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	metrics := observability.NewMetrics()
	client := source.NewClient(config.SourceConfig{
		BaseURL:        server.URL,
		Token:          "t",
		TimeoutSeconds: 5,
		FetchWorkers:   2,
		FetchDelayMS:   0,
	}, zap.NewNop(), metrics)

	store := newFakeStore()
	return NewRunner(client, store.repos(), metrics, zap.NewNop()), store, metrics
}

func TestSyncOffboardsDropsDanglingEmployee(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": [
			{"id": "ob1", "employee_id": "e1", "status": "completed"},
			{"id": "ob2", "employee_id": "e404", "status": "completed"},
			{"id": "ob3", "status": "completed"}
		], "links": {"next": ""}}`)
	})

	runner, store, metrics := newTestRunner(t, handler)
	store.employees["e1"] = domain.Employee{ID: "e1"}

	stats, err := runner.syncOffboards(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Fetched)
	assert.Equal(t, 1, stats.Upserted)
	assert.Equal(t, 2, stats.Dropped)
	assert.Contains(t, store.offboards, "ob1")
	assert.NotContains(t, store.offboards, "ob2")
	assert.NotContains(t, store.offboards, "ob3")
	assert.EqualValues(t, 2, metrics.Snapshot()["offboards"].Dropped)
}

func TestSyncAssetsNullifiesDanglingWarehouse(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/assets" && r.URL.Query().Get("page") != "":
			fmt.Fprint(w, `{"data": [{"id": "as1"}], "links": {"next": ""}}`)
		case r.URL.Path == "/assets/as1":
			fmt.Fprint(w, `{"data": {
				"id": "as1",
				"location": {
					"location_type": "warehouse",
					"location_detail": {"id": "W99", "city": "Ghost Town"}
				}
			}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	runner, store, metrics := newTestRunner(t, handler)
	store.warehouses["w1"] = domain.Warehouse{ID: "w1"}

	_, err := runner.syncAssets(context.Background())
	require.NoError(t, err)

	asset, ok := store.assets["as1"]
	require.True(t, ok)
	assert.Nil(t, asset.WarehouseID, "W99 does not exist")
	assert.EqualValues(t, 1, metrics.InvalidRefs("assets"))
}

func TestSyncAddressesLinksEmployeesAndHarvestsCountries(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/employees/e1/addresses":
			fmt.Fprint(w, `{"data": {
				"id": "A1", "city": "Utrecht",
				"country": {"id": "c1", "name": "Netherlands", "code": "NL"}
			}}`)
		case "/employees/e2/addresses":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	runner, store, _ := newTestRunner(t, handler)
	store.employees["e1"] = domain.Employee{ID: "e1"}
	store.employees["e2"] = domain.Employee{ID: "e2"}

	_, err := runner.syncAddresses(context.Background())
	require.NoError(t, err)

	assert.Contains(t, store.addresses, "A1")
	assert.Equal(t, "A1", store.employeeLinks["e1"])
	assert.NotContains(t, store.employeeLinks, "e2", "404 means no address on file")
	assert.Contains(t, store.countries, "NL")
}

func TestSyncAddressesLinksWarehousesFromGazetteer(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	runner, store, _ := newTestRunner(t, handler)
	code := "YYZ"
	store.warehouses["w1"] = domain.Warehouse{ID: "w1", Code: &code}

	_, err := runner.syncAddresses(context.Background())
	require.NoError(t, err)

	addressID, linked := store.warehouseLinks["w1"]
	require.True(t, linked)
	addr, ok := store.addresses[addressID]
	require.True(t, ok)
	require.NotNil(t, addr.City)
	assert.Equal(t, "Toronto", *addr.City)
	require.NotNil(t, addr.Country)
	assert.Equal(t, "Canada", *addr.Country)
}

func TestSyncAddressesSharesRowAcrossWarehousesInSameCity(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	runner, store, _ := newTestRunner(t, handler)
	tokyo, alsoTokyo := "TYO", "tyo"
	store.warehouses["w1"] = domain.Warehouse{ID: "w1", Code: &tokyo}
	store.warehouses["w2"] = domain.Warehouse{ID: "w2", Code: &alsoTokyo}

	_, err := runner.syncAddresses(context.Background())
	require.NoError(t, err)

	require.Len(t, store.addresses, 1)
	assert.Equal(t, store.warehouseLinks["w1"], store.warehouseLinks["w2"])
}

func TestSyncEmployeesValidatesReferences(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": [
			{"id": "e1", "office_id": "o1", "manager_id": "e2"},
			{"id": "e2", "office_id": "oMissing", "manager_id": "eMissing"}
		], "links": {"next": ""}}`)
	})

	runner, store, metrics := newTestRunner(t, handler)
	store.offices["o1"] = domain.Office{ID: "o1"}

	_, err := runner.syncEmployees(context.Background())
	require.NoError(t, err)

	e1 := store.employees["e1"]
	require.NotNil(t, e1.OfficeID)
	assert.Equal(t, "o1", *e1.OfficeID)
	// Manager within the same batch is a valid reference.
	require.NotNil(t, e1.ManagerID)
	assert.Equal(t, "e2", *e1.ManagerID)

	e2 := store.employees["e2"]
	assert.Nil(t, e2.OfficeID)
	assert.Nil(t, e2.ManagerID)
	assert.EqualValues(t, 2, metrics.InvalidRefs("employees"))
}

func TestOrchestratorRunsStagesInOrder(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": [], "links": {"next": ""}}`)
	})
	runner, _, metrics := newTestRunner(t, handler)

	dispatcher := events.NewInMemoryDispatcher()
	var started []string
	dispatcher.Subscribe(events.EventStageStarted, func(_ context.Context, e events.Event) error {
		started = append(started, e.Entity)
		return nil
	})

	orch := NewOrchestrator(runner, dispatcher, metrics, zap.NewNop())
	require.NoError(t, orch.Run(context.Background()))

	expected := []string{
		"warehouses", "offices", "employees", "addresses",
		"assets", "orders", "products", "offboards",
	}
	assert.Equal(t, expected, started)
	for _, status := range orch.Snapshot() {
		assert.Equal(t, StageSucceeded, status.State, status.Entity)
	}
}

func TestOrchestratorHaltsDownstreamOnFailure(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/offices" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"data": [], "links": {"next": ""}}`)
	})
	runner, _, metrics := newTestRunner(t, handler)
	orch := NewOrchestrator(runner, events.NewInMemoryDispatcher(), metrics, zap.NewNop())

	err := orch.Run(context.Background())
	require.Error(t, err)

	states := make(map[string]StageState)
	for _, status := range orch.Snapshot() {
		states[status.Entity] = status.State
	}
	assert.Equal(t, StageSucceeded, states["warehouses"])
	assert.Equal(t, StageFailed, states["offices"])
	for _, entity := range []string{"employees", "addresses", "assets", "orders", "products", "offboards"} {
		assert.Equal(t, StageSkipped, states[entity], entity)
	}
}

func TestOrchestratorRunEntity(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": [{"id": "p1", "name": "Widget"}], "links": {"next": ""}}`)
	})
	runner, store, metrics := newTestRunner(t, handler)
	orch := NewOrchestrator(runner, events.NewInMemoryDispatcher(), metrics, zap.NewNop())

	require.NoError(t, orch.RunEntity(context.Background(), "products"))
	assert.Contains(t, store.products, "p1")

	assert.Error(t, orch.RunEntity(context.Background(), "nonsense"))
}

func TestValidatorNullify(t *testing.T) {
	metrics := observability.NewMetrics()
	v := NewValidator(metrics)

	valid := map[string]bool{"ok": true}
	ref := "ok"
	ptr := &ref
	assert.False(t, v.Nullify("things", &ptr, valid))
	assert.NotNil(t, ptr)

	bad := "nope"
	ptr = &bad
	assert.True(t, v.Nullify("things", &ptr, valid))
	assert.Nil(t, ptr)
	assert.EqualValues(t, 1, metrics.InvalidRefs("things"))

	ptr = nil
	assert.False(t, v.Nullify("things", &ptr, valid))
}
