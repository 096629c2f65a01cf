package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"country-service/internal/domain"

	"go.uber.org/zap"
)

const RestCountriesURL = "https://restcountries.com/v3.1/all?fields=name,capital,population"

const wikiBase = "https://en.wikipedia.org/wiki/"

type restCountry struct {
	Name struct {
		Common string `json:"common"`
	} `json:"name"`
	Capital    []string `json:"capital"`
	Population int64    `json:"population"`
}

// RemoteSource pulls the dataset from a restcountries-compatible endpoint.
type RemoteSource struct {
	URL    string
	Client *http.Client
	Logger *zap.Logger
}

func NewRemoteSource(rawURL string, logger *zap.Logger) *RemoteSource {
	return &RemoteSource{
		URL:    rawURL,
		Client: &http.Client{Timeout: 30 * time.Second},
		Logger: logger,
	}
}

func (s *RemoteSource) Name() string { return "remote " + s.URL }

func (s *RemoteSource) Load(ctx context.Context) ([]domain.Country, error) {
	s.Logger.Info("fetching country dataset", zap.String("url", s.URL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var raw []restCountry
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode API response: %w", err)
	}

	seen := make(map[string]bool, len(raw))
	out := make([]domain.Country, 0, len(raw))
	for _, item := range raw {
		name := strings.TrimSpace(item.Name.Common)
		if name == "" || seen[name] {
			s.Logger.Warn("skipping country entry", zap.String("name", name))
			continue
		}
		seen[name] = true

		c := domain.Country{
			Name:       name,
			Population: item.Population,
			Wiki:       wikiBase + url.PathEscape(strings.ReplaceAll(name, " ", "_")),
		}
		if len(item.Capital) > 0 {
			c.Capital = item.Capital[0]
		}
		out = append(out, c)
	}

	s.Logger.Info("country dataset fetched", zap.Int("countries", len(out)))
	return out, nil
}
