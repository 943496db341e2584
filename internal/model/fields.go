package model

// FieldType is the wire type a distiller value must coerce to before it
// can be set on a FieldRecord.
type FieldType string

const (
	FieldTypeString     FieldType = "string"
	FieldTypeInt        FieldType = "int"
	FieldTypeFloat      FieldType = "float"
	FieldTypeBool       FieldType = "bool"
	FieldTypeStringList FieldType = "string_list"
)

// FieldSpec describes one entry of the fixed field schema: its wire
// name, the category it belongs to, its type, an optional closed set of
// allowed values, and the setter that lands a coerced value onto a
// FieldRecord. Set returns false if v cannot be coerced to Type, in
// which case the caller drops the field rather than guessing.
type FieldSpec struct {
	Name     string
	Category string
	Type     FieldType
	Enum     []string
	Set      func(rec *FieldRecord, v any) bool
}

// Schema is the single source of truth for the fixed distillation field
// set. Both the path selector's prompt (C3) and the field distiller's
// prompt and response parser (C5) interpolate from this slice rather
// than hard-coding the field list in more than one place (spec.md §9).
func Schema() []FieldSpec {
	return []FieldSpec{
		// identity
		{Name: "company_name", Category: "identity", Type: FieldTypeString,
			Set: func(r *FieldRecord, v any) bool { return setString(v, &r.Identity.CompanyName) }},
		{Name: "website", Category: "identity", Type: FieldTypeString,
			Set: func(r *FieldRecord, v any) bool { return setString(v, &r.Identity.Website) }},
		{Name: "description", Category: "identity", Type: FieldTypeString,
			Set: func(r *FieldRecord, v any) bool { return setString(v, &r.Identity.Description) }},
		{Name: "value_proposition", Category: "identity", Type: FieldTypeString,
			Set: func(r *FieldRecord, v any) bool { return setString(v, &r.Identity.ValueProposition) }},
		{Name: "industry", Category: "identity", Type: FieldTypeString,
			Set: func(r *FieldRecord, v any) bool { return setString(v, &r.Identity.Industry) }},
		{Name: "location", Category: "identity", Type: FieldTypeString,
			Set: func(r *FieldRecord, v any) bool { return setString(v, &r.Identity.Location) }},
		{Name: "founding_year", Category: "identity", Type: FieldTypeInt,
			Set: func(r *FieldRecord, v any) bool { return setInt(v, &r.Identity.FoundingYear) }},

		// business_model
		{Name: "business_model_type", Category: "business_model", Type: FieldTypeString,
			Set: func(r *FieldRecord, v any) bool { return setString(v, &r.BusinessModel.BusinessModelType) }},
		{Name: "business_model", Category: "business_model", Type: FieldTypeString,
			Set: func(r *FieldRecord, v any) bool { return setString(v, &r.BusinessModel.BusinessModel) }},
		{Name: "saas_classification", Category: "business_model", Type: FieldTypeString,
			Set: func(r *FieldRecord, v any) bool { return setString(v, &r.BusinessModel.SaaSClassification) }},
		{Name: "is_saas", Category: "business_model", Type: FieldTypeBool,
			Set: func(r *FieldRecord, v any) bool { return setBool(v, &r.BusinessModel.IsSaaS) }},
		{Name: "classification_confidence", Category: "business_model", Type: FieldTypeFloat,
			Set: func(r *FieldRecord, v any) bool { return setFloat(v, &r.BusinessModel.ClassificationConfidence) }},
		{Name: "classification_justification", Category: "business_model", Type: FieldTypeString,
			Set: func(r *FieldRecord, v any) bool {
				return setString(v, &r.BusinessModel.ClassificationJustification)
			}},

		// products
		{Name: "products_services_offered", Category: "products", Type: FieldTypeStringList,
			Set: func(r *FieldRecord, v any) bool { return setStringList(v, &r.Products.ProductsServicesOffered) }},
		{Name: "key_services", Category: "products", Type: FieldTypeStringList,
			Set: func(r *FieldRecord, v any) bool { return setStringList(v, &r.Products.KeyServices) }},
		{Name: "target_market", Category: "products", Type: FieldTypeString,
			Set: func(r *FieldRecord, v any) bool { return setString(v, &r.Products.TargetMarket) }},
		{Name: "pain_points", Category: "products", Type: FieldTypeStringList,
			Set: func(r *FieldRecord, v any) bool { return setStringList(v, &r.Products.PainPoints) }},
		{Name: "competitive_advantages", Category: "products", Type: FieldTypeStringList,
			Set: func(r *FieldRecord, v any) bool { return setStringList(v, &r.Products.CompetitiveAdvantages) }},
		{Name: "tech_stack", Category: "products", Type: FieldTypeStringList,
			Set: func(r *FieldRecord, v any) bool { return setStringList(v, &r.Products.TechStack) }},

		// stage_metrics
		{Name: "company_size", Category: "stage_metrics", Type: FieldTypeString,
			Enum: []string{"startup", "small", "medium", "large", "enterprise"},
			Set:  func(r *FieldRecord, v any) bool { return setString(v, &r.StageMetrics.CompanySize) }},
		{Name: "employee_count_range", Category: "stage_metrics", Type: FieldTypeString,
			Set: func(r *FieldRecord, v any) bool { return setString(v, &r.StageMetrics.EmployeeCountRange) }},
		{Name: "company_stage", Category: "stage_metrics", Type: FieldTypeString,
			Set: func(r *FieldRecord, v any) bool { return setString(v, &r.StageMetrics.CompanyStage) }},
		{Name: "funding_stage", Category: "stage_metrics", Type: FieldTypeString,
			Set: func(r *FieldRecord, v any) bool { return setString(v, &r.StageMetrics.FundingStage) }},
		{Name: "funding_status", Category: "stage_metrics", Type: FieldTypeString,
			Set: func(r *FieldRecord, v any) bool { return setString(v, &r.StageMetrics.FundingStatus) }},
		{Name: "stage_confidence", Category: "stage_metrics", Type: FieldTypeFloat,
			Set: func(r *FieldRecord, v any) bool { return setFloat(v, &r.StageMetrics.StageConfidence) }},
		{Name: "geographic_scope", Category: "stage_metrics", Type: FieldTypeString,
			Set: func(r *FieldRecord, v any) bool { return setString(v, &r.StageMetrics.GeographicScope) }},
		{Name: "sales_complexity", Category: "stage_metrics", Type: FieldTypeString,
			Set: func(r *FieldRecord, v any) bool { return setString(v, &r.StageMetrics.SalesComplexity) }},

		// people
		{Name: "key_decision_makers", Category: "people", Type: FieldTypeStringList,
			Set: func(r *FieldRecord, v any) bool { return setStringList(v, &r.People.KeyDecisionMakers) }},
		{Name: "leadership_team", Category: "people", Type: FieldTypeStringList,
			Set: func(r *FieldRecord, v any) bool { return setStringList(v, &r.People.LeadershipTeam) }},
		{Name: "decision_maker_type", Category: "people", Type: FieldTypeString,
			Set: func(r *FieldRecord, v any) bool { return setString(v, &r.People.DecisionMakerType) }},

		// growth
		{Name: "has_job_listings", Category: "growth", Type: FieldTypeBool,
			Set: func(r *FieldRecord, v any) bool { return setBool(v, &r.Growth.HasJobListings) }},
		{Name: "job_listings_count", Category: "growth", Type: FieldTypeInt,
			Set: func(r *FieldRecord, v any) bool { return setInt(v, &r.Growth.JobListingsCount) }},
		{Name: "job_listings_details", Category: "growth", Type: FieldTypeStringList,
			Set: func(r *FieldRecord, v any) bool { return setStringList(v, &r.Growth.JobListingsDetails) }},
		{Name: "recent_news", Category: "growth", Type: FieldTypeStringList,
			Set: func(r *FieldRecord, v any) bool { return setStringList(v, &r.Growth.RecentNews) }},

		// technology
		{Name: "sales_marketing_tools", Category: "technology", Type: FieldTypeStringList,
			Set: func(r *FieldRecord, v any) bool { return setStringList(v, &r.Technology.SalesMarketingTools) }},
		{Name: "has_chat_widget", Category: "technology", Type: FieldTypeBool,
			Set: func(r *FieldRecord, v any) bool { return setBool(v, &r.Technology.HasChatWidget) }},
		{Name: "has_forms", Category: "technology", Type: FieldTypeBool,
			Set: func(r *FieldRecord, v any) bool { return setBool(v, &r.Technology.HasForms) }},
		{Name: "tech_sophistication", Category: "technology", Type: FieldTypeString,
			Enum: []string{"low", "medium", "high"},
			Set:  func(r *FieldRecord, v any) bool { return setString(v, &r.Technology.TechSophistication) }},
		{Name: "tech_confidence", Category: "technology", Type: FieldTypeFloat,
			Set: func(r *FieldRecord, v any) bool { return setFloat(v, &r.Technology.TechConfidence) }},
		{Name: "industry_confidence", Category: "technology", Type: FieldTypeFloat,
			Set: func(r *FieldRecord, v any) bool { return setFloat(v, &r.Technology.IndustryConfidence) }},
		{Name: "social_media", Category: "technology", Type: FieldTypeStringList,
			Set: func(r *FieldRecord, v any) bool { return setStringList(v, &r.Technology.SocialMedia) }},
		{Name: "contact_info", Category: "technology", Type: FieldTypeStringList,
			Set: func(r *FieldRecord, v any) bool { return setStringList(v, &r.Technology.ContactInfo) }},

		// recognition
		{Name: "company_culture", Category: "recognition", Type: FieldTypeString,
			Set: func(r *FieldRecord, v any) bool { return setString(v, &r.Recognition.CompanyCulture) }},
		{Name: "awards", Category: "recognition", Type: FieldTypeStringList,
			Set: func(r *FieldRecord, v any) bool { return setStringList(v, &r.Recognition.Awards) }},
		{Name: "certifications", Category: "recognition", Type: FieldTypeStringList,
			Set: func(r *FieldRecord, v any) bool { return setStringList(v, &r.Recognition.Certifications) }},
		{Name: "partnerships", Category: "recognition", Type: FieldTypeStringList,
			Set: func(r *FieldRecord, v any) bool { return setStringList(v, &r.Recognition.Partnerships) }},

		// operational_metadata
		{Name: "pages_crawled", Category: "operational_metadata", Type: FieldTypeInt,
			Set: func(r *FieldRecord, v any) bool { return setInt(v, &r.OperationalMetadata.PagesCrawled) }},
		{Name: "crawl_duration_seconds", Category: "operational_metadata", Type: FieldTypeFloat,
			Set: func(r *FieldRecord, v any) bool {
				return setFloat(v, &r.OperationalMetadata.CrawlDurationSeconds)
			}},
		{Name: "scrape_status", Category: "operational_metadata", Type: FieldTypeString,
			Set: func(r *FieldRecord, v any) bool { return setString(v, &r.OperationalMetadata.ScrapeStatus) }},
	}
}

// Categories returns the fixed category order used when rendering the
// schema into a prompt.
func Categories() []string {
	return []string{
		"identity", "business_model", "products", "stage_metrics",
		"people", "growth", "technology", "recognition", "operational_metadata",
	}
}

func setString(v any, dst **string) bool {
	s, ok := v.(string)
	if !ok || s == "" {
		return false
	}
	*dst = &s
	return true
}

func setBool(v any, dst **bool) bool {
	b, ok := v.(bool)
	if !ok {
		return false
	}
	*dst = &b
	return true
}

func setInt(v any, dst **int) bool {
	switch n := v.(type) {
	case float64:
		i := int(n)
		*dst = &i
		return true
	case int:
		*dst = &n
		return true
	default:
		return false
	}
}

func setFloat(v any, dst **float64) bool {
	switch n := v.(type) {
	case float64:
		*dst = &n
		return true
	case int:
		f := float64(n)
		*dst = &f
		return true
	default:
		return false
	}
}

func setStringList(v any, dst *[]string) bool {
	raw, ok := v.([]any)
	if !ok || len(raw) == 0 {
		return false
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return false
	}
	*dst = out
	return true
}
