package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultBaseURL is the public Render API endpoint
const DefaultBaseURL = "https://api.render.com/v1"

// Client implements an authenticated client for the Render API
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client

	logger *logrus.Entry
}

// NewClient creates a new instance of the Render API client using the
// given API key for authentication
func NewClient(apiKey string, logger *logrus.Entry) (*Client, error) {

	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	if logger == nil {
		return nil, errors.New("a logger must be provided")
	}

	return &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		client: &http.Client{
			// Set API call timeout to 30 seconds
			Timeout: time.Second * 30,
		},
		logger: logger.WithFields(logrus.Fields{
			"subservice": "render",
		}),
	}, nil
}

// SetBaseURL overrides the API endpoint the client talks to
func (client *Client) SetBaseURL(baseURL string) {
	client.baseURL = baseURL
}

// GetService retrieves the details of the given service, including the
// current instance count
func (client *Client) GetService(serviceID string) (*Service, error) {

	if serviceID == "" {
		return nil, errors.New("serviceID must not be blank")
	}

	body, err := client.do(
		http.MethodGet,
		fmt.Sprintf("%s/services/%s", client.baseURL, serviceID),
		nil,
	)
	if err != nil {
		return nil, err
	}

	// We only parse the absolutely necessary fields in the payload
	// to avoid any parsing errors should any non-essential information
	// be missing or in a different format than expected
	var service Service
	err = json.Unmarshal(body, &service)
	if err != nil {
		return nil, err
	}

	client.logger.WithFields(logrus.Fields{
		"service_id":    serviceID,
		"num_instances": service.ServiceDetails.NumInstances,
	}).Debug("Retrieved service details")

	return &service, nil
}

// ScaleService sets the absolute instance count for the given service and
// returns the raw response body. The call is not retried on failure, any
// retry policy belongs to the caller
func (client *Client) ScaleService(serviceID string, numInstances int) ([]byte, error) {

	if serviceID == "" {
		return nil, errors.New("serviceID must not be blank")
	}

	if numInstances < 0 {
		return nil, fmt.Errorf("numInstances must not be negative: %d", numInstances)
	}

	payload, err := json.Marshal(ScaleRequest{
		NumInstances: numInstances,
	})
	if err != nil {
		return nil, err
	}

	body, err := client.do(
		http.MethodPost,
		fmt.Sprintf("%s/services/%s/scale", client.baseURL, serviceID),
		payload,
	)
	if err != nil {
		return nil, err
	}

	client.logger.WithFields(logrus.Fields{
		"service_id":    serviceID,
		"num_instances": numInstances,
	}).Debug("Scaled service")

	return body, nil
}

// do sends a single authenticated request and returns the response body.
// Any status outside the 2xx range is a failure
func (client *Client) do(method string, url string, payload []byte) ([]byte, error) {

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	request, err := http.NewRequest(method, url, reader)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Authorization", "Bearer "+client.apiKey)
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")

	response, err := client.client.Do(request)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, &APIError{
			StatusCode: response.StatusCode,
			Body:       string(body),
		}
	}

	return body, nil
}
