package render

// ScaleRequest defines the JSON body for the scale endpoint
type ScaleRequest struct {
	NumInstances int `json:"numInstances"`
}

// ServiceDetails holds the deployment details of a service
type ServiceDetails struct {
	NumInstances int `json:"numInstances"`
}

// Service defines the JSON structure of the service detail endpoint
// We only parse the fields we need, the rest of the payload is passed
// through untouched
type Service struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Type           string         `json:"type"`
	ServiceDetails ServiceDetails `json:"serviceDetails"`
}
