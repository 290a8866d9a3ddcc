package assembler

import "fmt"

func identityPrompt(idea string) string {
	return fmt.Sprintf(`Based on this startup idea: "%s"

Generate a comprehensive brand identity including:
1. Brand name (creative, memorable, .com available)
2. Tagline (under 10 words)
3. Description (2-3 sentences)
4. Target audience
5. Color scheme (primary, secondary, accent colors in hex)

Return as JSON with keys: brandName, tagline, description, targetAudience, colors`, idea)
}

func marketingPrompt(idea, brandName string) string {
	return fmt.Sprintf(`For the startup "%s" with idea: "%s"

Generate marketing website content:
1. Hero title (compelling, under 8 words)
2. Hero subtitle (value proposition, under 20 words)
3. CTA text (action-oriented, under 4 words)
4. About section text (2-3 paragraphs)
5. Key features list (5-7 features)

Return as JSON with keys: marketingCopy (object with heroTitle, heroSubtitle, ctaText, aboutText), features (array)`, brandName, idea)
}

func businessPrompt(idea, brandName string) string {
	return fmt.Sprintf(`For the startup "%s" with idea: "%s"

Generate business model and pricing:
1. Business model description
2. Pricing plans (3 tiers: Basic, Pro, Enterprise)

Return as JSON with keys: businessModel, pricing (object with plans array)`, brandName, idea)
}

func pitchDeckPrompt(idea, brandName, businessModel string) string {
	return fmt.Sprintf(`Create a 10-slide pitch deck for "%s" with idea: "%s"
Business model: %s

Generate slides for:
1. Title slide
2. Problem
3. Solution
4. Market opportunity
5. Product
6. Business model
7. Competition
8. Team
9. Financials
10. Ask

Return as JSON with slides array, each slide having: title, content, type`, brandName, idea, businessModel)
}

func socialPrompt(idea, brandName string) string {
	return fmt.Sprintf(`Create social media launch posts for "%s" with idea: "%s"

Generate:
1. LinkedIn post (professional, 100-150 words)
2. Twitter post (engaging, under 280 chars)
3. Instagram caption (visual, 50-100 words with hashtags)

Return as JSON with keys: linkedin, twitter, instagram`, brandName, idea)
}

func logoPrompt(brandName string) string {
	return fmt.Sprintf(`Create a modern, minimalist logo for a startup called "%s". The logo should be professional, clean, and suitable for a tech company. Use a simple design with bold colors on a white background. Make it suitable for use as a company logo.`, brandName)
}
