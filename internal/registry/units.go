package registry

import "github.com/instastartup/instastartup/pkg/models"

// schema builds a JSON Schema object for an operation's parameters.
// Property values are JSON Schema type names.
func schema(props map[string]string, required ...string) map[string]interface{} {
	properties := make(map[string]interface{}, len(props))
	for name, typ := range props {
		properties[name] = map[string]interface{}{"type": typ}
	}
	s := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		req := make([]interface{}, len(required))
		for i, r := range required {
			req[i] = r
		}
		s["required"] = req
	}
	return s
}

// shape is a free-form output-shape hint embedded in operation prompts.
func shape(kv map[string]interface{}) map[string]interface{} { return kv }

// builtinUnits returns the fixed six-unit catalog.
func builtinUnits() []*models.TaskUnit {
	return []*models.TaskUnit{
		{
			ID:          "product-manager",
			DisplayName: "Product Manager",
			Description: "Defines product scope, MVP features, user stories, and development roadmap",
			Operations: []models.Operation{
				{
					Name:        "define_product_scope",
					Description: "Analyze a raw idea and define a comprehensive product scope",
					InputSchema: schema(map[string]string{"idea": "string", "constraints": "object"}, "idea"),
					OutputSchema: shape(map[string]interface{}{
						"productName": "string", "vision": "string", "targetAudience": "string",
						"mvpFeatures": "array of strings", "userStories": "array of strings",
						"roadmap": "array of {phase, features, timeline}",
					}),
				},
				{
					Name:         "create_mvp_plan",
					Description:  "Create a minimal viable product feature set",
					InputSchema:  schema(map[string]string{"define_product_scope": "object"}),
					OutputSchema: shape(map[string]interface{}{"mvpFeatures": "array of strings", "timeline": "string"}),
				},
				{
					Name:         "write_user_stories",
					Description:  "Generate user stories and acceptance criteria",
					InputSchema:  schema(map[string]string{"features": "array"}),
					OutputSchema: shape(map[string]interface{}{"userStories": "array of {story, acceptanceCriteria}"}),
				},
				{
					Name:         "create_roadmap",
					Description:  "Create a phased product development roadmap",
					InputSchema:  schema(map[string]string{"define_product_scope": "object"}),
					OutputSchema: shape(map[string]interface{}{"roadmap": "array of {phase, features, timeline}"}),
				},
			},
		},
		{
			ID:          "engineer",
			DisplayName: "Engineer",
			Description: "Selects technology stacks and generates code scaffolding and deployment configuration",
			Operations: []models.Operation{
				{
					Name:         "select_tech_stack",
					Description:  "Choose a technology stack matching the product scope and constraints",
					InputSchema:  schema(map[string]string{"constraints": "object", "define_product_scope": "object"}),
					OutputSchema: shape(map[string]interface{}{"frontend": "array of strings", "backend": "array of strings", "infrastructure": "array of strings", "rationale": "string"}),
				},
				{
					Name:         "generate_frontend_code",
					Description:  "Generate frontend application scaffolding",
					InputSchema:  schema(map[string]string{"select_tech_stack": "object", "generate_ui_components": "object"}),
					OutputSchema: shape(map[string]interface{}{"files": "array of {path, description}", "framework": "string"}),
				},
				{
					Name:         "generate_backend_code",
					Description:  "Generate backend service scaffolding",
					InputSchema:  schema(map[string]string{"select_tech_stack": "object"}),
					OutputSchema: shape(map[string]interface{}{"services": "array of {name, endpoints}", "language": "string"}),
				},
				{
					Name:         "setup_database_schema",
					Description:  "Design the initial database schema",
					InputSchema:  schema(map[string]string{"define_product_scope": "object"}),
					OutputSchema: shape(map[string]interface{}{"tables": "array of {name, columns}"}),
				},
				{
					Name:         "create_deployment_config",
					Description:  "Create deployment and CI configuration",
					InputSchema:  schema(map[string]string{"select_tech_stack": "object"}),
					OutputSchema: shape(map[string]interface{}{"platform": "string", "pipeline": "array of strings"}),
				},
			},
		},
		{
			ID:          "designer",
			DisplayName: "Designer",
			Description: "Creates design systems, UI components, layouts, and user flows",
			Operations: []models.Operation{
				{
					Name:         "create_design_system",
					Description:  "Create a design system with palette, typography, and spacing",
					InputSchema:  schema(map[string]string{"targetAudience": "string", "define_product_scope": "object"}),
					OutputSchema: shape(map[string]interface{}{"colors": "object", "typography": "object", "spacing": "object"}),
				},
				{
					Name:         "generate_ui_components",
					Description:  "Generate specifications for the requested UI components",
					InputSchema:  schema(map[string]string{"components": "array", "create_design_system": "object"}),
					OutputSchema: shape(map[string]interface{}{"components": "array of {name, props, variants}"}),
				},
				{
					Name:         "create_responsive_layouts",
					Description:  "Design responsive page layouts",
					InputSchema:  schema(map[string]string{"create_design_system": "object"}),
					OutputSchema: shape(map[string]interface{}{"layouts": "array of {name, breakpoints}"}),
				},
				{
					Name:         "design_user_flows",
					Description:  "Map the primary user journeys through the product",
					InputSchema:  schema(map[string]string{"define_product_scope": "object"}),
					OutputSchema: shape(map[string]interface{}{"flows": "array of {name, steps}"}),
				},
				{
					Name:         "generate_animations",
					Description:  "Specify motion design for key interactions",
					InputSchema:  schema(map[string]string{"create_design_system": "object"}),
					OutputSchema: shape(map[string]interface{}{"animations": "array of {trigger, effect, duration}"}),
				},
			},
		},
		{
			ID:          "marketing-lead",
			DisplayName: "Marketing Lead",
			Description: "Builds SEO strategy, content, email campaigns, and social media presence",
			Operations: []models.Operation{
				{
					Name:         "create_seo_strategy",
					Description:  "Create an SEO strategy with target keywords and competitors analysis",
					InputSchema:  schema(map[string]string{"competitors": "array", "product": "object", "define_product_scope": "object"}),
					OutputSchema: shape(map[string]interface{}{"keywords": "array of strings", "contentPillars": "array of strings", "competitorGaps": "array of strings"}),
				},
				{
					Name:         "generate_blog_content",
					Description:  "Generate blog article outlines for the given topics",
					InputSchema:  schema(map[string]string{"topics": "array", "create_seo_strategy": "object"}),
					OutputSchema: shape(map[string]interface{}{"articles": "array of {title, outline, keywords}"}),
				},
				{
					Name:         "create_email_campaigns",
					Description:  "Create email campaigns across the customer journey",
					InputSchema:  schema(map[string]string{"customerJourney": "array", "create_seo_strategy": "object"}),
					OutputSchema: shape(map[string]interface{}{"campaigns": "array of {stage, subject, preview}"}),
				},
				{
					Name:         "generate_social_content",
					Description:  "Generate platform-specific social media content",
					InputSchema:  schema(map[string]string{"platforms": "array", "create_seo_strategy": "object"}),
					OutputSchema: shape(map[string]interface{}{"posts": "array of {platform, content, hashtags}"}),
				},
				{
					Name:         "create_landing_pages",
					Description:  "Design high-converting landing page copy",
					InputSchema:  schema(map[string]string{"create_seo_strategy": "object"}),
					OutputSchema: shape(map[string]interface{}{"pages": "array of {headline, sections, cta}"}),
				},
			},
		},
		{
			ID:          "customer-success",
			DisplayName: "Customer Success",
			Description: "Handles support content, feedback analysis, and user health monitoring",
			Operations: []models.Operation{
				{
					Name:         "handle_support_ticket",
					Description:  "Draft a resolution for a customer support ticket",
					InputSchema:  schema(map[string]string{"ticket": "object"}, "ticket"),
					OutputSchema: shape(map[string]interface{}{"response": "string", "category": "string", "priority": "string"}),
				},
				{
					Name:         "generate_auto_reply",
					Description:  "Generate an automatic first-response reply",
					InputSchema:  schema(map[string]string{"topic": "string"}),
					OutputSchema: shape(map[string]interface{}{"reply": "string"}),
				},
				{
					Name:         "analyze_user_feedback",
					Description:  "Cluster and summarize user feedback",
					InputSchema:  schema(map[string]string{"feedback": "array"}),
					OutputSchema: shape(map[string]interface{}{"themes": "array of {theme, sentiment, count}"}),
				},
				{
					Name:         "create_help_content",
					Description:  "Create help-center articles for common issues",
					InputSchema:  schema(map[string]string{"commonIssues": "array", "define_product_scope": "object"}),
					OutputSchema: shape(map[string]interface{}{"articles": "array of {title, body}"}),
				},
				{
					Name:         "monitor_user_health",
					Description:  "Define user health score signals and thresholds",
					InputSchema:  schema(map[string]string{"metrics": "array"}),
					OutputSchema: shape(map[string]interface{}{"signals": "array of {name, threshold, action}"}),
				},
			},
		},
		{
			ID:          "analytics-agent",
			DisplayName: "Analytics",
			Description: "Sets up tracking, dashboards, reports, and optimization recommendations",
			Operations: []models.Operation{
				{
					Name:         "setup_tracking",
					Description:  "Define the analytics tracking plan for a platform",
					InputSchema:  schema(map[string]string{"platform": "string", "events": "array", "goals": "array", "define_product_scope": "object"}),
					OutputSchema: shape(map[string]interface{}{"tools": "array of strings", "events": "array of {name, properties}"}),
				},
				{
					Name:         "analyze_performance",
					Description:  "Analyze product performance metrics",
					InputSchema:  schema(map[string]string{"metrics": "object"}),
					OutputSchema: shape(map[string]interface{}{"insights": "array of strings", "alerts": "array of strings"}),
				},
				{
					Name:         "create_dashboards",
					Description:  "Design analytics dashboards for key audiences",
					InputSchema:  schema(map[string]string{"audience": "string"}),
					OutputSchema: shape(map[string]interface{}{"dashboards": "array of {name, widgets}"}),
				},
				{
					Name:         "generate_reports",
					Description:  "Generate a periodic performance report",
					InputSchema:  schema(map[string]string{"period": "string"}),
					OutputSchema: shape(map[string]interface{}{"summary": "string", "metrics": "array of {name, value, change}"}),
				},
				{
					Name:         "recommend_optimizations",
					Description:  "Recommend conversion and retention optimizations",
					InputSchema:  schema(map[string]string{"analyze_performance": "object"}),
					OutputSchema: shape(map[string]interface{}{"recommendations": "array of {area, action, impact}"}),
				},
			},
		},
	}
}
