package pipeline

import (
	"github.com/instastartup/instastartup/pkg/models"
)

// NewStartupGenerationPipeline declares the end-to-end startup build
// across all six units. Step order respects the prerequisite chain;
// the runner does not reorder.
func (r *Runner) NewStartupGenerationPipeline(idea string) *models.Pipeline {
	steps := []models.PipelineStep{
		{
			UnitID:     "product-manager",
			Operation:  "define_product_scope",
			Parameters: map[string]interface{}{"idea": idea, "constraints": map[string]interface{}{}},
		},
		{
			UnitID:        "designer",
			Operation:     "create_design_system",
			Parameters:    map[string]interface{}{"targetAudience": "tech-savvy professionals"},
			Prerequisites: []string{"define_product_scope"},
		},
		{
			UnitID:    "engineer",
			Operation: "select_tech_stack",
			Parameters: map[string]interface{}{
				"constraints": map[string]interface{}{"budget": "startup", "timeline": "3-months"},
			},
			Prerequisites: []string{"define_product_scope"},
		},
		{
			UnitID:        "designer",
			Operation:     "generate_ui_components",
			Parameters:    map[string]interface{}{"components": []string{"button", "form", "card", "navigation"}},
			Prerequisites: []string{"create_design_system"},
		},
		{
			UnitID:        "engineer",
			Operation:     "generate_frontend_code",
			Parameters:    map[string]interface{}{},
			Prerequisites: []string{"select_tech_stack", "generate_ui_components"},
		},
		{
			UnitID:        "marketing-lead",
			Operation:     "create_seo_strategy",
			Parameters:    map[string]interface{}{"competitors": []string{}},
			Prerequisites: []string{"define_product_scope"},
		},
		{
			UnitID:        "marketing-lead",
			Operation:     "generate_social_content",
			Parameters:    map[string]interface{}{"platforms": []string{"linkedin", "twitter", "instagram"}},
			Prerequisites: []string{"create_seo_strategy"},
		},
		{
			UnitID:        "customer-success",
			Operation:     "create_help_content",
			Parameters:    map[string]interface{}{"commonIssues": []string{"onboarding", "billing", "technical"}},
			Prerequisites: []string{"define_product_scope"},
		},
		{
			UnitID:    "analytics-agent",
			Operation: "setup_tracking",
			Parameters: map[string]interface{}{
				"platform": "web",
				"events":   []string{"signup", "conversion", "engagement"},
			},
			Prerequisites: []string{"define_product_scope"},
		},
	}

	return r.Define(
		"Complete Startup Generation",
		"End-to-end startup package generation with all units",
		steps,
	)
}

// NewMarketingCampaignPipeline declares a campaign rollout driven by
// the marketing lead with analytics instrumentation at the end.
func (r *Runner) NewMarketingCampaignPipeline(product map[string]interface{}) *models.Pipeline {
	steps := []models.PipelineStep{
		{
			UnitID:     "marketing-lead",
			Operation:  "create_seo_strategy",
			Parameters: map[string]interface{}{"product": product, "competitors": []string{}},
		},
		{
			UnitID:        "marketing-lead",
			Operation:     "generate_blog_content",
			Parameters:    map[string]interface{}{"topics": []string{"startup tips", "entrepreneurship", "business planning"}},
			Prerequisites: []string{"create_seo_strategy"},
		},
		{
			UnitID:    "marketing-lead",
			Operation: "create_email_campaigns",
			Parameters: map[string]interface{}{
				"customerJourney": []string{"awareness", "consideration", "conversion", "retention"},
			},
			Prerequisites: []string{"create_seo_strategy"},
		},
		{
			UnitID:        "marketing-lead",
			Operation:     "generate_social_content",
			Parameters:    map[string]interface{}{"platforms": []string{"linkedin", "twitter", "instagram", "facebook"}},
			Prerequisites: []string{"create_seo_strategy"},
		},
		{
			UnitID:    "analytics-agent",
			Operation: "setup_tracking",
			Parameters: map[string]interface{}{
				"platform": "marketing",
				"goals":    []string{"lead-generation", "conversions"},
			},
			Prerequisites: []string{"create_seo_strategy"},
		},
	}

	return r.Define(
		"Marketing Campaign Launch",
		"Comprehensive marketing campaign setup and execution",
		steps,
	)
}
