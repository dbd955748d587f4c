package cfv2

import "time"

// ResourceMetadata is the v2 metadata block carried by every resource.
type ResourceMetadata struct {
	GUID      string    `json:"guid"                 yaml:"guid"`
	URL       string    `json:"url"                  yaml:"url"`
	CreatedAt time.Time `json:"created_at"           yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// Resource is the v2 metadata/entity envelope.
type Resource[T any] struct {
	Metadata ResourceMetadata `json:"metadata" yaml:"metadata"`
	Entity   T                `json:"entity"   yaml:"entity"`
}

// ListResponse represents a v2 list document. Pagination URLs are
// reported as-is; the client does not follow them.
type ListResponse[T any] struct {
	TotalResults int           `json:"total_results"      yaml:"total_results"`
	TotalPages   int           `json:"total_pages"        yaml:"total_pages"`
	PrevURL      *string       `json:"prev_url"           yaml:"prev_url"`
	NextURL      *string       `json:"next_url"           yaml:"next_url"`
	Resources    []Resource[T] `json:"resources"          yaml:"resources"`
}

// Organization is the entity block of a v2 organization.
type Organization struct {
	Name                string `json:"name"                             yaml:"name"`
	Status              string `json:"status,omitempty"                 yaml:"status,omitempty"`
	QuotaDefinitionGUID string `json:"quota_definition_guid,omitempty"  yaml:"quota_definition_guid,omitempty"`
	SpacesURL           string `json:"spaces_url,omitempty"             yaml:"spaces_url,omitempty"`
}

// Space is the entity block of a v2 space.
type Space struct {
	Name             string `json:"name"                        yaml:"name"`
	OrganizationGUID string `json:"organization_guid,omitempty" yaml:"organization_guid,omitempty"`
	AppsURL          string `json:"apps_url,omitempty"          yaml:"apps_url,omitempty"`
}

// App is the entity block of a v2 application.
type App struct {
	Name      string `json:"name"                 yaml:"name"`
	SpaceGUID string `json:"space_guid,omitempty" yaml:"space_guid,omitempty"`
	State     string `json:"state,omitempty"      yaml:"state,omitempty"`
	Memory    int    `json:"memory,omitempty"     yaml:"memory,omitempty"`
	Instances int    `json:"instances,omitempty"  yaml:"instances,omitempty"`
	Buildpack string `json:"buildpack,omitempty"  yaml:"buildpack,omitempty"`
}
