package mappings

// SubmissionMapping represents the Elasticsearch mapping for phrase submissions
type SubmissionMapping struct {
	Settings SubmissionSettings `json:"settings"`
	Mappings SubmissionMappings `json:"mappings"`
}

// SubmissionSettings defines index-level settings
type SubmissionSettings struct {
	BaseSettings
}

// SubmissionMappings defines the field mappings for phrase submissions
type SubmissionMappings struct {
	Properties SubmissionProperties `json:"properties"`
}

// SubmissionProperties defines the properties for each field in the submission mapping
type SubmissionProperties struct {
	// Core identifiers
	ID          Field `json:"id"`
	Phrase      Field `json:"phrase"`
	Source      Field `json:"source"`
	SubmittedBy Field `json:"submitted_by"`

	// Intake status
	DecisionStatus Field `json:"decision_status"`
	ErrorMessage   Field `json:"error_message"`

	// Scoring output. The decision document is stored verbatim for audit;
	// it is never queried field-by-field, so indexing is disabled.
	Decision Field `json:"decision"`

	// Timestamps
	SubmittedAt Field `json:"submitted_at"`
	ScoredAt    Field `json:"scored_at"`
}

// NewSubmissionMapping creates a new submission mapping with default settings
func NewSubmissionMapping() *SubmissionMapping {
	enabledFalse := false

	return &SubmissionMapping{
		Settings: SubmissionSettings{
			BaseSettings: DefaultSettings(),
		},
		Mappings: SubmissionMappings{
			Properties: SubmissionProperties{
				ID: Field{
					Type: "keyword",
				},
				Phrase: Field{
					Type:     "text",
					Analyzer: "standard",
				},
				Source: Field{
					Type: "keyword",
				},
				SubmittedBy: Field{
					Type: "keyword",
				},
				DecisionStatus: Field{
					Type: "keyword",
				},
				ErrorMessage: Field{
					Type: "text",
				},
				Decision: Field{
					Type:    "object",
					Enabled: &enabledFalse,
				},
				SubmittedAt: Field{
					Type:   "date",
					Format: "strict_date_optional_time||epoch_millis",
				},
				ScoredAt: Field{
					Type:   "date",
					Format: "strict_date_optional_time||epoch_millis",
				},
			},
		},
	}
}

// GetJSON returns the submission mapping as a JSON string
func (m *SubmissionMapping) GetJSON() (string, error) {
	return ToJSON(m)
}

// Validate validates the submission mapping configuration
func (m *SubmissionMapping) Validate() error {
	return ValidateSettings(m.Settings.BaseSettings)
}
