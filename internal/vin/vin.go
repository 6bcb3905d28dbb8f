package vin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrVinTooShort = errors.New("vin must be at least 11 characters")
	ErrDecode      = errors.New("failed to fetch vin data")
)

// MinLength is the shortest VIN accepted. Full VINs are 17 characters but the
// decode endpoint tolerates partial VINs down to 11.
const MinLength = 11

// Unknown is the default for any field the registry does not return.
const Unknown = "Unknown"

// Vehicle is the decoded descriptor consumed by the fitment query.
type Vehicle struct {
	VIN          string            `json:"vin"`
	Make         string            `json:"make"`
	Model        string            `json:"model"`
	Year         string            `json:"year"`
	BodyClass    string            `json:"bodyClass"`
	Engine       string            `json:"engine"`
	Manufacturer string            `json:"manufacturer"`
	DriveType    string            `json:"driveType,omitempty"`
	Trim         string            `json:"trim,omitempty"`
	Raw          map[string]string `json:"raw,omitempty"`
}

// Client decodes VINs against the external registry API.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

// decodeResponse is the registry's flat Variable/Value list.
type decodeResponse struct {
	Results []struct {
		Variable string  `json:"Variable"`
		Value    *string `json:"Value"`
	} `json:"Results"`
}

// Decode validates the VIN length, calls the registry, and folds the
// Variable/Value list into a Vehicle. Short VINs are rejected before any
// network call.
func (c *Client) Decode(ctx context.Context, vin string) (Vehicle, error) {
	if len(vin) < MinLength {
		return Vehicle{}, ErrVinTooShort
	}

	url := fmt.Sprintf("%s/vehicles/decodevin/%s?format=json", c.baseURL, vin)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Vehicle{}, err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return Vehicle{}, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return Vehicle{}, ErrDecode
	}

	var decoded decodeResponse
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		return Vehicle{}, err
	}

	// null and empty values are skipped so defaults survive
	results := make(map[string]string, len(decoded.Results))
	for _, item := range decoded.Results {
		if item.Variable == "" || item.Value == nil || *item.Value == "" {
			continue
		}
		results[item.Variable] = *item.Value
	}

	return Vehicle{
		VIN:          vin,
		Make:         pick(results, "Make"),
		Model:        pick(results, "Model"),
		Year:         pick(results, "Model Year"),
		BodyClass:    pick(results, "Body Class"),
		Engine:       pick(results, "Engine Model"),
		Manufacturer: pick(results, "Manufacturer Name"),
		DriveType:    results["Drive Type"],
		Trim:         results["Trim"],
		Raw:          results,
	}, nil
}

func pick(results map[string]string, key string) string {
	if v, ok := results[key]; ok {
		return v
	}
	return Unknown
}
