package models

type AgencyReference struct {
	FareUrl string `json:"fareUrl"`
	ID      string `json:"id"`
	Name    string `json:"name"`
	URL     string `json:"url"`
}

// NewAgencyReference creates a new AgencyReference instance with the provided values
func NewAgencyReference(id, name, url, fareUrl string) AgencyReference {
	return AgencyReference{
		ID:      id,
		Name:    name,
		URL:     url,
		FareUrl: fareUrl,
	}
}
