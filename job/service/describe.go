package service

const (
	ServiceName        = "Long Running service"
	ServiceAlias       = "example/run"
	ServiceDescription = "A service to test long-running asynchronous services"

	CategoryURL  = "http://edamontology.org/operation_0304"
	CategoryName = "Query and retrieval"

	CategoryDescription = "Search or query a data resource and retrieve entries and / or annotation."

	// SynchronicityDetached marks a service whose jobs outlive the request.
	SynchronicityDetached = "asynchronous_detached"

	ParamNumberOfJobs = "Number of Jobs"
	ParamMinDuration  = "Minimum duration of each job"

	ResourceProtocolInline = "inline"
	ResourceTitle          = "Long Runner"
)

// Category classifies the operation a service performs.
type Category struct {
	URL         string `json:"url"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Parameter describes one input of Run.
type Parameter struct {
	Name        string `json:"name"`
	Key         string `json:"key"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	Default     any    `json:"default"`
	Current     any    `json:"current_value"`
}

// Description is the service metadata returned to clients.
type Description struct {
	Name          string      `json:"name"`
	Alias         string      `json:"alias"`
	Description   string      `json:"description"`
	Category      Category    `json:"category"`
	Synchronicity string      `json:"synchronicity"`
	Parameters    []Parameter `json:"parameters"`
}

func (s *LongRunning) Describe() *Description {
	return &Description{
		Name:          ServiceName,
		Alias:         ServiceAlias,
		Description:   ServiceDescription,
		Category:      Category{URL: CategoryURL, Name: CategoryName, Description: CategoryDescription},
		Synchronicity: SynchronicityDetached,
		Parameters:    s.Parameters(),
	}
}

// Parameters lists the run inputs with their current values set to the
// configured defaults.
func (s *LongRunning) Parameters() []Parameter {
	return []Parameter{
		{
			Name:        ParamNumberOfJobs,
			Key:         "number_of_jobs",
			Description: "The number of jobs to run",
			Type:        "unsigned integer",
			Required:    true,
			Default:     s.cfg.DefaultNumberOfJobs,
			Current:     s.cfg.DefaultNumberOfJobs,
		},
		{
			Name:        ParamMinDuration,
			Key:         "min_duration",
			Description: "The minimum duration of each job in seconds",
			Type:        "signed integer",
			Default:     s.cfg.DefaultMinDuration,
			Current:     s.cfg.DefaultMinDuration,
		},
	}
}
