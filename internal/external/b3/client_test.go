package b3

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rianlucascs/dowtrend/pkg/config"
	"github.com/rianlucascs/dowtrend/pkg/httputil"
	"github.com/rianlucascs/dowtrend/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log := logger.Nop()
	return NewClient(httputil.NewWithTimeout(log, 5*time.Second), log, config.B3Config{
		ListedURL:        srv.URL + "/listed.csv",
		IndexURLTemplate: srv.URL + "/%C3%8Dndices/%s/Tabela_%s.csv",
	})
}

func TestClient_ListedCompanies(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/listed.csv", r.URL.Path)
		w.Write([]byte("\ufeffrazao_social;codigo_de_negociacao;setor\n" +
			"PETROBRAS;PETR4;Energia\n" +
			"SEM CODIGO;;Outros\n" +
			"VALE;VALE3 ;Mineracao\n" +
			"ITAU;ITUB4;Financeiro\n"))
	})

	codes, err := c.ListedCompanies(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"PETR4", "VALE3", "ITUB4"}, codes)
}

func TestClient_IndexConstituents(t *testing.T) {
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte("Código,Ação,Tipo,Qtde. Teórica,Part. (%)\n" +
			"BBAS3,BRASIL,ON NM,\"1.000\",\"5,1\"\n" +
			"TAEE11,TAESA,UNT N2,\"2.000\",\"3,2\"\n"))
	})

	codes, err := c.IndexConstituents(context.Background(), "IDIV")
	require.NoError(t, err)
	assert.Equal(t, []string{"BBAS3", "TAEE11"}, codes)
	assert.Equal(t, "/%C3%8Dndices/IDIV/Tabela_IDIV.csv", gotPath)
}

func TestClient_IndexURL(t *testing.T) {
	c := &Client{indexURLTemplate: "https://host/1.%20%C3%8Dndices/%s/Tabela_%s.csv"}
	assert.Equal(t, "https://host/1.%20%C3%8Dndices/SMLL/Tabela_SMLL.csv", c.IndexURL("SMLL"))
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "not found", status: http.StatusNotFound, body: "404: Not Found"},
		{name: "missing column", status: http.StatusOK, body: "Ticker,Name\nPETR4,Petrobras\n", wantErr: ErrMissingColumn},
		{name: "empty body", status: http.StatusOK, body: "", wantErr: ErrMissingColumn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			codes, err := c.IndexConstituents(context.Background(), "IDIV")
			require.Error(t, err)
			assert.Nil(t, codes)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			}
		})
	}
}

func TestClient_StatusErrorIsExposed(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.ListedCompanies(context.Background())
	var statusErr *httputil.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadGateway, statusErr.Code)
}
