package model

// FieldRecord is the typed mapping from the fixed ~50-field schema (see
// Schema() in fields.go) to scalar or list values. Any individual field
// may be absent (nil / empty); the set of field *names* is fixed and
// unknown keys coming back from the distiller LLM are dropped rather
// than carried (see spec.md §9, "Replacing dynamic typing").
type FieldRecord struct {
	Identity             Identity
	BusinessModel        BusinessModel
	Products             Products
	StageMetrics         StageMetrics
	People               People
	Growth               Growth
	Technology           Technology
	Recognition          Recognition
	OperationalMetadata  OperationalMetadata
}

// Identity holds core company-identity fields.
type Identity struct {
	CompanyName      *string `json:"company_name,omitempty"`
	Website          *string `json:"website,omitempty"`
	Description      *string `json:"description,omitempty"`
	ValueProposition *string `json:"value_proposition,omitempty"`
	Industry         *string `json:"industry,omitempty"`
	Location         *string `json:"location,omitempty"`
	FoundingYear     *int    `json:"founding_year,omitempty"`
}

// BusinessModel holds business-model classification fields.
type BusinessModel struct {
	BusinessModelType           *string  `json:"business_model_type,omitempty"`
	BusinessModel               *string  `json:"business_model,omitempty"`
	SaaSClassification          *string  `json:"saas_classification,omitempty"`
	IsSaaS                      *bool    `json:"is_saas,omitempty"`
	ClassificationConfidence    *float64 `json:"classification_confidence,omitempty"`
	ClassificationJustification *string  `json:"classification_justification,omitempty"`
}

// Products holds product/service and positioning fields.
type Products struct {
	ProductsServicesOffered []string `json:"products_services_offered,omitempty"`
	KeyServices             []string `json:"key_services,omitempty"`
	TargetMarket            *string  `json:"target_market,omitempty"`
	PainPoints              []string `json:"pain_points,omitempty"`
	CompetitiveAdvantages   []string `json:"competitive_advantages,omitempty"`
	TechStack               []string `json:"tech_stack,omitempty"`
}

// StageMetrics holds company-stage and sizing fields.
type StageMetrics struct {
	CompanySize        *string  `json:"company_size,omitempty"` // bucket enum
	EmployeeCountRange *string  `json:"employee_count_range,omitempty"`
	CompanyStage       *string  `json:"company_stage,omitempty"`
	FundingStage       *string  `json:"funding_stage,omitempty"`
	FundingStatus      *string  `json:"funding_status,omitempty"`
	StageConfidence    *float64 `json:"stage_confidence,omitempty"`
	GeographicScope    *string  `json:"geographic_scope,omitempty"`
	SalesComplexity    *string  `json:"sales_complexity,omitempty"`
}

// People holds leadership and decision-maker fields.
type People struct {
	KeyDecisionMakers []string `json:"key_decision_makers,omitempty"`
	LeadershipTeam    []string `json:"leadership_team,omitempty"`
	DecisionMakerType *string  `json:"decision_maker_type,omitempty"`
}

// Growth holds growth and hiring-activity fields.
type Growth struct {
	HasJobListings     *bool    `json:"has_job_listings,omitempty"`
	JobListingsCount   *int     `json:"job_listings_count,omitempty"`
	JobListingsDetails []string `json:"job_listings_details,omitempty"`
	RecentNews         []string `json:"recent_news,omitempty"`
}

// Technology holds technology-sophistication and digital-presence fields.
type Technology struct {
	SalesMarketingTools []string `json:"sales_marketing_tools,omitempty"`
	HasChatWidget       *bool    `json:"has_chat_widget,omitempty"`
	HasForms            *bool    `json:"has_forms,omitempty"`
	TechSophistication  *string  `json:"tech_sophistication,omitempty"` // level enum
	TechConfidence      *float64 `json:"tech_confidence,omitempty"`
	IndustryConfidence  *float64 `json:"industry_confidence,omitempty"`
	SocialMedia         []string `json:"social_media,omitempty"`
	ContactInfo         []string `json:"contact_info,omitempty"`
}

// Recognition holds culture, award, and partnership fields.
type Recognition struct {
	CompanyCulture  *string  `json:"company_culture,omitempty"`
	Awards          []string `json:"awards,omitempty"`
	Certifications  []string `json:"certifications,omitempty"`
	Partnerships    []string `json:"partnerships,omitempty"`
}

// OperationalMetadata holds crawl-derived bookkeeping fields that the
// distiller is asked to fill alongside the business fields above.
type OperationalMetadata struct {
	PagesCrawled         *int     `json:"pages_crawled,omitempty"`
	CrawlDurationSeconds *float64 `json:"crawl_duration_seconds,omitempty"`
	ScrapeStatus         *string  `json:"scrape_status,omitempty"`
}
