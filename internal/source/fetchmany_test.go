package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/asset-sync/pkg/util"
)

func TestFetchManyCollectsAllOutcomes(t *testing.T) {
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("fetch function never hits the network in this test")
	}))

	fn := func(ctx context.Context, id string) (Record, error) {
		switch id {
		case "missing":
			return nil, util.NewStatusError("http://x/missing", http.StatusNotFound)
		case "broken":
			return nil, errors.New("connection reset")
		default:
			return Record{"id": id}, nil
		}
	}

	results := client.FetchMany(context.Background(), "things",
		[]string{"a", "missing", "b", "broken", "c"}, fn)
	require.Len(t, results, 5)

	byID := make(map[string]ItemResult, len(results))
	ids := make([]string, 0, len(results))
	for _, res := range results {
		byID[res.ID] = res
		ids = append(ids, res.ID)
	}
	sort.Strings(ids)
	assert.Equal(t, []string{"a", "b", "broken", "c", "missing"}, ids)

	assert.True(t, byID["a"].Found())
	assert.Equal(t, "a", byID["a"].Data["id"])

	// Upstream absence is not an error; the item just has no data.
	assert.True(t, byID["missing"].Absent())
	assert.NoError(t, byID["missing"].Err)

	// A failure is recorded on its item and never fails the batch.
	assert.Error(t, byID["broken"].Err)
	assert.False(t, byID["broken"].Found())
	assert.False(t, byID["broken"].Absent())
}

func TestFetchManyEmptyInput(t *testing.T) {
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	results := client.FetchMany(context.Background(), "things", nil,
		func(ctx context.Context, id string) (Record, error) {
			return nil, nil
		})
	assert.Empty(t, results)
}

func TestEmployeeAddressEnvelopes(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/employees/e1/addresses":
			fmt.Fprint(w, `{"data": {"id": "A1", "city": "Utrecht"}}`)
		case "/employees/e2/addresses":
			w.WriteHeader(http.StatusNotFound)
		case "/employees/e3/addresses":
			fmt.Fprint(w, `{"success": false, "data": null}`)
		case "/employees/e4/addresses":
			fmt.Fprint(w, `{"success": true, "data": {"id": "A4"}}`)
		}
	})
	client, _, _ := newTestClient(t, handler)
	ctx := context.Background()

	addr, err := client.EmployeeAddress(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "A1", addr["id"])

	// 404 surfaces as a typed not-found for FetchMany to treat as absence.
	_, err = client.EmployeeAddress(ctx, "e2")
	require.Error(t, err)
	assert.True(t, util.IsNotFound(err))

	none, err := client.EmployeeAddress(ctx, "e3")
	require.NoError(t, err)
	assert.Nil(t, none, "success=false means no address on file")

	wrapped, err := client.EmployeeAddress(ctx, "e4")
	require.NoError(t, err)
	assert.Equal(t, "A4", wrapped["id"])
}

func TestAssetDetail(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/assets/as1":
			fmt.Fprint(w, `{"data": {"id": "as1", "name": "Laptop"}}`)
		case "/assets/as2":
			// Older versions return the object unwrapped.
			fmt.Fprint(w, `{"id": "as2", "name": "Monitor"}`)
		}
	})
	client, _, _ := newTestClient(t, handler)
	ctx := context.Background()

	wrapped, err := client.AssetDetail(ctx, "as1")
	require.NoError(t, err)
	assert.Equal(t, "Laptop", wrapped["name"])

	bare, err := client.AssetDetail(ctx, "as2")
	require.NoError(t, err)
	assert.Equal(t, "Monitor", bare["name"])
}
