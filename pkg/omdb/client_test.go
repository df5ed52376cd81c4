package omdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Etko77/MovieLibrary/pkg/utils"

	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(utils.OMDBConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Timeout: 2 * time.Second,
	}, zap.NewNop())

	return client, server
}

func jsonHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}
}

func TestFetchRating_DirectImdbRating(t *testing.T) {
	client, _ := newTestClient(t, jsonHandler(`{"Response":"True","imdbRating":"8.8"}`))

	rating, found, err := client.FetchRating(context.Background(), "Inception", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected a rating")
	}
	if rating != 8.8 {
		t.Errorf("expected 8.8, got %v", rating)
	}
}

func TestFetchRating_QueryParameters(t *testing.T) {
	var gotTitle, gotYear, gotType string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotTitle = r.URL.Query().Get("t")
		gotYear = r.URL.Query().Get("y")
		gotType = r.URL.Query().Get("type")
		jsonHandler(`{"Response":"True","imdbRating":"7.0"}`)(w, r)
	})

	year := 2010
	if _, _, err := client.FetchRating(context.Background(), "Tron: Legacy", &year); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotTitle != "Tron: Legacy" {
		t.Errorf("expected title to pass through encoding intact, got %q", gotTitle)
	}
	if gotYear != "2010" {
		t.Errorf("expected year filter 2010, got %q", gotYear)
	}
	if gotType != "movie" {
		t.Errorf("expected type=movie, got %q", gotType)
	}
}

func TestFetchRating_FallbackImdbSource(t *testing.T) {
	client, _ := newTestClient(t, jsonHandler(
		`{"Response":"True","imdbRating":"N/A","Ratings":[{"Source":"Internet Movie Database","Value":"8.5/10"}]}`))

	rating, found, err := client.FetchRating(context.Background(), "Alien", nil)
	if err != nil || !found {
		t.Fatalf("expected rating, got found=%v err=%v", found, err)
	}
	if rating != 8.5 {
		t.Errorf("expected 8.5, got %v", rating)
	}
}

func TestFetchRating_RottenTomatoesNormalized(t *testing.T) {
	client, _ := newTestClient(t, jsonHandler(
		`{"Response":"True","imdbRating":"N/A","Ratings":[{"Source":"Rotten Tomatoes","Value":"93%"}]}`))

	rating, found, err := client.FetchRating(context.Background(), "Alien", nil)
	if err != nil || !found {
		t.Fatalf("expected rating, got found=%v err=%v", found, err)
	}
	if rating != 9.3 {
		t.Errorf("expected 9.3, got %v", rating)
	}
}

func TestFetchRating_MetacriticNormalized(t *testing.T) {
	client, _ := newTestClient(t, jsonHandler(
		`{"Response":"True","imdbRating":"N/A","Ratings":[{"Source":"Metacritic","Value":"80/100"}]}`))

	rating, found, err := client.FetchRating(context.Background(), "Alien", nil)
	if err != nil || !found {
		t.Fatalf("expected rating, got found=%v err=%v", found, err)
	}
	if rating != 8.0 {
		t.Errorf("expected 8.0, got %v", rating)
	}
}

func TestFetchRating_SourcePreferenceOrder(t *testing.T) {
	// IMDb wins regardless of payload order
	client, _ := newTestClient(t, jsonHandler(
		`{"Response":"True","imdbRating":"N/A","Ratings":[`+
			`{"Source":"Metacritic","Value":"60/100"},`+
			`{"Source":"Rotten Tomatoes","Value":"93%"},`+
			`{"Source":"Internet Movie Database","Value":"8.5/10"}]}`))

	rating, found, err := client.FetchRating(context.Background(), "Alien", nil)
	if err != nil || !found {
		t.Fatalf("expected rating, got found=%v err=%v", found, err)
	}
	if rating != 8.5 {
		t.Errorf("expected the IMDb source to win, got %v", rating)
	}
}

func TestFetchRating_ProviderReportsNotFound(t *testing.T) {
	client, _ := newTestClient(t, jsonHandler(`{"Response":"False","Error":"Movie not found!"}`))

	_, found, err := client.FetchRating(context.Background(), "No Such Movie", nil)
	if err != nil {
		t.Fatalf("not-found must not be an error: %v", err)
	}
	if found {
		t.Error("expected found=false")
	}
}

func TestFetchRating_NoUsableRating(t *testing.T) {
	client, _ := newTestClient(t, jsonHandler(
		`{"Response":"True","imdbRating":"N/A","Ratings":[{"Source":"Some Blog","Value":"two thumbs up"}]}`))

	_, found, err := client.FetchRating(context.Background(), "Obscure Film", nil)
	if err != nil {
		t.Fatalf("unrecognized sources resolve as not-found, got error: %v", err)
	}
	if found {
		t.Error("expected found=false")
	}
}

func TestFetchRating_MalformedSourceValue(t *testing.T) {
	client, _ := newTestClient(t, jsonHandler(
		`{"Response":"True","imdbRating":"N/A","Ratings":[{"Source":"Rotten Tomatoes","Value":"fresh"}]}`))

	_, _, err := client.FetchRating(context.Background(), "Alien", nil)
	if err == nil {
		t.Error("malformed payload must surface as an error")
	}
}

func TestFetchRating_MalformedJSON(t *testing.T) {
	client, _ := newTestClient(t, jsonHandler(`{not json`))

	_, _, err := client.FetchRating(context.Background(), "Alien", nil)
	if err == nil {
		t.Error("malformed JSON must surface as an error")
	}
}

func TestFetchRating_HTTPError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, _, err := client.FetchRating(context.Background(), "Alien", nil)
	if err == nil {
		t.Error("non-200 status must surface as an error")
	}
}
