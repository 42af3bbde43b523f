package knowledge

// Default returns a fresh copy of the built-in table.
func Default() *Base {
	return &Base{
		CompanyContext: CompanyContext{
			Industry:        "Technology Consulting",
			TeamSize:        "50-100 employees",
			BudgetRange:     "$10,000 - $500,000",
			Specializations: []string{"Web Development", "AI/ML", "Cloud Solutions"},
			Constraints:     []string{"Limited blockchain expertise", "Growing AI team", "Strong web development base"},
		},
		SkillSolutions: map[string]Solution{
			"Blockchain": {
				Solutions: []string{
					"Hire senior blockchain consultants ($150-200/hr)",
					"Partner with blockchain development agencies",
					"Train existing developers in Solidity (4-6 weeks, $5k-10k)",
					"Use blockchain-as-a-service platforms (AWS Managed Blockchain)",
					"Implement hybrid solutions with existing technologies",
				},
				TimelineImpact: "High (+4-8 weeks)",
				CostImpact:     "High (+$20k-50k)",
				RiskLevel:      "Medium",
			},
			"AI/ML": {
				Solutions: []string{
					"Hire data scientists ($120-180/hr)",
					"Use cloud AI services (AWS SageMaker, Google AI)",
					"Implement pre-trained models and APIs",
					"Train existing team in ML fundamentals",
					"Outsource specific AI components",
				},
				TimelineImpact: "Medium (+2-4 weeks)",
				CostImpact:     "Medium (+$15k-30k)",
				RiskLevel:      "Low",
			},
			"DevOps": {
				Solutions: []string{
					"Hire DevOps contractors ($100-150/hr)",
					"Use managed cloud services",
					"Implement CI/CD templates",
					"Train existing developers",
					"Use containerization platforms",
				},
				TimelineImpact: "Low (+1-2 weeks)",
				CostImpact:     "Low (+$5k-15k)",
				RiskLevel:      "Low",
			},
			"Security": {
				Solutions: []string{
					"Hire security consultants ($120-160/hr)",
					"Conduct security audit outsourcing",
					"Implement security frameworks and best practices",
					"Train team in security protocols",
					"Use security-as-a-service platforms",
				},
				TimelineImpact: "Medium (+2-3 weeks)",
				CostImpact:     "Medium (+$10k-25k)",
				RiskLevel:      "Low",
			},
			"Cloud": {
				Solutions: []string{
					"Hire cloud architects ($100-140/hr)",
					"Use managed cloud services",
					"Get cloud certification for team",
					"Implement cloud migration strategy",
					"Leverage cloud consulting partners",
				},
				TimelineImpact: "Low (+1-2 weeks)",
				CostImpact:     "Low (+$5k-20k)",
				RiskLevel:      "Low",
			},
			"Go": {
				Solutions: []string{
					"Hire Go developers ($120-160/hr)",
					"Train existing backend developers in Go (3-4 weeks, $8k-12k)",
					"Use Go for specific microservices only",
					"Hire remote Go contractors for short-term needs",
					"Consider using alternative backend technologies",
				},
				TimelineImpact: "Medium (+3-5 weeks)",
				CostImpact:     "Medium (+$15k-30k)",
				RiskLevel:      "Medium",
			},
		},
		Strategies: map[string][]string{
			"budget_constraints": {
				"Phase project delivery - MVP first",
				"Use open-source alternatives",
				"Outsource non-core components",
				"Extend timeline to reduce monthly costs",
				"Leverage existing infrastructure",
			},
			"timeline_pressure": {
				"Increase team size with contractors",
				"Implement agile sprints with clear priorities",
				"Use parallel development streams",
				"Simplify scope for initial release",
				"Leverage pre-built components",
			},
			"skill_shortages": {
				"Cross-training programs",
				"Strategic hiring for critical roles",
				"Technology stack alignment with team skills",
				"Proof-of-concept before full commitment",
				"Gradual skill development",
			},
		},
	}
}
