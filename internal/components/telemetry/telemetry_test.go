package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

func TestScopedAPI(t *testing.T) {
	rec := NewRecorder()
	tel := NewScopedAPI("dispatch", rec)

	tel.ReportBroken("dispatcher.fetch", "boom")
	tel.ReportCount("searches", 3)

	broken := rec.Reports(ReportKindBroken)
	require.Len(t, broken, 1)
	require.Equal(t, "dispatch: dispatcher.fetch", broken[0].ID)
	require.Equal(t, []any{"boom"}, broken[0].Params)

	counts := rec.Reports(ReportKindCount)
	require.Len(t, counts, 1)
	require.Equal(t, int64(3), counts[0].Count)
}

func TestScopedAPIRequiresNamespace(t *testing.T) {
	require.Panics(t, func() {
		NewScopedAPI("", NewRecorder())
	})
	require.Panics(t, func() {
		NewScopedAPI("dispatch", nil)
	})
}

func TestInstrumentResty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	rec := NewRecorder()
	client := resty.New().SetBaseURL(srv.URL)
	InstrumentResty(client, rec, "test")

	res, err := client.R().SetContext(context.Background()).Get("/")
	require.NoError(t, err)
	require.Equal(t, http.StatusTeapot, res.StatusCode())

	debug := rec.Reports(ReportKindDebug)
	require.Len(t, debug, 2)
	require.Equal(t, report_resty_request, debug[0].ID)
	require.Equal(t, report_resty_response, debug[1].ID)
	require.Empty(t, rec.Reports(ReportKindWarning))
}

func TestInstrumentRestyReportsTransportErrors(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	rec := NewRecorder()
	client := resty.New().SetBaseURL(url)
	InstrumentResty(client, rec, "test")

	_, err := client.R().Get("/")
	require.Error(t, err)

	broken := rec.Reports(ReportKindBroken)
	require.Len(t, broken, 1)
	require.Equal(t, report_resty_response, broken[0].ID)
}

func TestSetupWithoutEndpointsIsNoop(t *testing.T) {
	tel, err := Setup(context.Background(), "test", Config{})
	require.NoError(t, err)
	require.Nil(t, tel.TracerProvider)
	require.Nil(t, tel.MeterProvider)
	require.NoError(t, tel.Shutdown(context.Background()))
}
