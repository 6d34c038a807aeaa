package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"countrylookup/internal/components/telemetry"
	"countrylookup/internal/dispatch"
	"countrylookup/internal/render/html"
	"countrylookup/internal/restcountries"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const franceJson = `[{
	"name": {"common": "France", "official": "French Republic"},
	"capital": ["Paris"],
	"flags": {"svg": "https://flagcdn.com/fr.svg", "alt": "The flag of France"},
	"currencies": {"EUR": {"name": "Euro", "symbol": "€"}},
	"region": "Europe",
	"subregion": "Western Europe",
	"population": 67391582,
	"languages": {"fra": "French"},
	"area": 551695,
	"car": {"side": "right"},
	"continents": ["Europe"]
}]`

type fixture struct {
	server   *httptest.Server
	upstream *httptest.Server
	requests *atomic.Int64
}

func setup(t *testing.T) fixture {
	t.Helper()

	requests := &atomic.Int64{}
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Header().Set("content-type", "application/json")
		switch r.URL.Path {
		case "/v3.1/name/france":
			fmt.Fprint(w, franceJson)
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"status": 404, "message": "Not Found"}`)
		}
	}))
	t.Cleanup(upstream.Close)

	tel := telemetry.NewRecorder()
	client := restcountries.NewClient(restcountries.ClientOptions{BaseUrl: upstream.URL}, tel)
	renderer, err := html.NewRenderer()
	require.NoError(t, err)

	srv := NewServer(dispatch.NewDispatcher(client, tel), renderer, tel)
	handler, err := srv.Handler()
	require.NoError(t, err)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return fixture{
		server:   server,
		upstream: upstream,
		requests: requests,
	}
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	res, err := http.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, string(body)
}

func parse(t *testing.T, body string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	require.NoError(t, err)
	return doc
}

func TestEmptyPage(t *testing.T) {
	f := setup(t)

	res, body := get(t, f.server.URL+"/")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, res.Header.Get("content-type"), "text/html")

	doc := parse(t, body)
	require.Equal(t, 1, doc.Find("#country-input").Length())
	require.Equal(t, 0, doc.Find("#results").Children().Length())
	require.Equal(t, int64(0), f.requests.Load())
}

func TestPageWithQuery(t *testing.T) {
	f := setup(t)

	_, body := get(t, f.server.URL+"/?name=france")
	doc := parse(t, body)

	require.Equal(t, "France", doc.Find("#results .country-card h2").Text())
	value, _ := doc.Find("#country-input").Attr("value")
	require.Equal(t, "france", value)
}

func TestFragment(t *testing.T) {
	f := setup(t)

	res, body := get(t, f.server.URL+"/search?name=%20france%20")
	require.Equal(t, http.StatusOK, res.StatusCode)

	doc := parse(t, body)
	card := doc.Find(".country-card")
	require.Equal(t, 1, card.Length())
	require.Equal(t, "Western Europe", card.Find(".badge").Text())
	require.Contains(t, card.Text(), "67,391,582")
	require.Contains(t, card.Text(), "551,695 km²")
	require.Equal(t, 0, doc.Find("html head script").Length())
}

func TestFragmentErrors(t *testing.T) {
	f := setup(t)

	_, body := get(t, f.server.URL+"/search?name=%20%20")
	require.Equal(t, "Please enter a country name", parse(t, body).Find(".error-message p").Text())
	require.Equal(t, int64(0), f.requests.Load())

	_, body = get(t, f.server.URL+"/search?name=atlantis")
	require.Equal(
		t,
		"Country not found. Please check the spelling and try again. (Status: 404)",
		parse(t, body).Find(".error-message p").Text(),
	)
	require.Equal(t, int64(1), f.requests.Load())
}

func TestStaticAndHealthz(t *testing.T) {
	f := setup(t)

	res, body := get(t, f.server.URL+"/static/style.css")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, res.Header.Get("content-type"), "text/css")
	require.Contains(t, body, ".country-card")

	res, _ = get(t, f.server.URL+"/static/app.js")
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, body = get(t, f.server.URL+"/healthz")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "ok", body)

	res, _ = get(t, f.server.URL+"/missing")
	require.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestSearchRpc(t *testing.T) {
	f := setup(t)
	client := NewSearchClient(http.DefaultClient, f.server.URL)

	res, err := client.Search(context.Background(), "france")
	require.NoError(t, err)
	require.Equal(t, "cards", res.Kind)
	require.Len(t, res.Cards, 1)

	card := res.Cards[0]
	assert.Equal(t, "France", card.Name)
	assert.Equal(t, "Euro (€)", card.Currency)
	assert.Equal(t, "Western Europe", card.Subregion)

	// the page shows the same values
	_, body := get(t, f.server.URL+"/search?name=france")
	doc := parse(t, body)
	doc.Find(".info-value").Each(func(i int, s *goquery.Selection) {
		fields := card.Fields()
		require.Contains(t, s.Text(), fields[i].Value)
	})

	res, err = client.Search(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, "error", res.Kind)
	require.Equal(t, "Please enter a country name", res.Message)
	require.Empty(t, res.Cards)
}

func TestSearchRpcRejectsMismatchedRequest(t *testing.T) {
	f := setup(t)

	res, err := http.Post(
		f.server.URL+SearchProcedure,
		"application/json",
		strings.NewReader(`{"name": ["not", "a", "string"]}`),
	)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestSearchRpcRawJson(t *testing.T) {
	f := setup(t)

	res, err := http.Post(
		f.server.URL+SearchProcedure,
		"application/json",
		strings.NewReader(`{"name": "atlantis"}`),
	)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	require.JSONEq(
		t,
		`{"kind": "error", "message": "Country not found. Please check the spelling and try again. (Status: 404)"}`,
		string(body),
	)
}

func TestListenAndServeShutsDown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- ListenAndServe(ctx, "127.0.0.1:0", http.NotFoundHandler())
	}()
	cancel()
	require.NoError(t, <-done)
}
