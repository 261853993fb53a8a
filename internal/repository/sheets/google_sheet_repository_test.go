package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

type recordedCall struct {
	method string
	path   string
	body   map[string]interface{}
}

// fakeSheets serves the values endpoints used by the repository and records
// every request it receives.
type fakeSheets struct {
	mu       sync.Mutex
	calls    []recordedCall
	firstRow [][]interface{}
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	call := recordedCall{method: r.Method, path: r.URL.Path}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&call.body)
	}
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch r.Method {
	case http.MethodGet:
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"values": f.firstRow})
	case http.MethodPut:
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"updatedRows": 1})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newTestRepository(t *testing.T, handler http.Handler) *GoogleSheetRepository {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	service, err := sheetsapi.NewService(context.Background(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	return &GoogleSheetRepository{service: service, spreadsheetID: "sheet-id", logger: zap.NewNop()}
}

func TestEnsureHeader_WritesHeaderOnEmptySheet(t *testing.T) {
	fake := &fakeSheets{}
	repo := newTestRepository(t, fake)
	header := []interface{}{"ID", "Data", "Tema", "Tipo de Cálculo", "Dados", "Resultado"}

	require.NoError(t, repo.EnsureHeader(context.Background(), "Historico!A:F", header))

	require.Len(t, fake.calls, 2)
	assert.Equal(t, http.MethodGet, fake.calls[0].method)
	assert.True(t, strings.HasSuffix(fake.calls[0].path, "/values/Historico!1:1"), fake.calls[0].path)

	put := fake.calls[1]
	assert.Equal(t, http.MethodPut, put.method)
	assert.True(t, strings.HasSuffix(put.path, "/values/Historico!A1"), put.path)
	assert.Equal(t, []interface{}{[]interface{}{"ID", "Data", "Tema", "Tipo de Cálculo", "Dados", "Resultado"}}, put.body["values"])
}

func TestEnsureHeader_KeepsExistingHeader(t *testing.T) {
	fake := &fakeSheets{firstRow: [][]interface{}{{"Data", "ID"}}}
	repo := newTestRepository(t, fake)

	require.NoError(t, repo.EnsureHeader(context.Background(), "Inventario!A:F", []interface{}{"Data", "ID"}))

	require.Len(t, fake.calls, 1)
	assert.Equal(t, http.MethodGet, fake.calls[0].method)
}

func TestEnsureHeader_ReadFailure(t *testing.T) {
	repo := newTestRepository(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	err := repo.EnsureHeader(context.Background(), "Historico!A:F", []interface{}{"ID"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "read header of Historico")
}

func TestSheetName(t *testing.T) {
	name, err := sheetName("Historico!A:F")
	require.NoError(t, err)
	assert.Equal(t, "Historico", name)

	name, err = sheetName("'Inventario'!A:A")
	require.NoError(t, err)
	assert.Equal(t, "Inventario", name)

	_, err = sheetName("!A:F")
	assert.Error(t, err)
}
