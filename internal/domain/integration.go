package domain

// IntegrationDescriptor é o documento servido em /integration.json para a plataforma de notificação
type IntegrationDescriptor struct {
	Data IntegrationData `json:"data"`
}

type IntegrationData struct {
	Date                IntegrationDate         `json:"date"`
	Descriptions        IntegrationDescriptions `json:"descriptions"`
	IsActive            bool                    `json:"is_active"`
	IntegrationType     string                  `json:"integration_type"`
	IntegrationCategory string                  `json:"integration_category"`
	KeyFeatures         []string                `json:"key_features"`
	Author              string                  `json:"author"`
	Website             string                  `json:"website"`
	Settings            []TickSettings          `json:"settings"`
	TargetURL           string                  `json:"target_url"`
	TickURL             string                  `json:"tick_url"`
}

type IntegrationDate struct {
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type IntegrationDescriptions struct {
	AppName         string `json:"app_name"`
	AppDescription  string `json:"app_description"`
	AppLogo         string `json:"app_logo"`
	AppURL          string `json:"app_url"`
	BackgroundColor string `json:"background_color"`
}
