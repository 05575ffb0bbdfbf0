package service

import (
	"strings"
)

// recommendationRule is one row of the clinical recommendation decision
// table: if Category and Parameter appear in the interpretation text
// (case-sensitive) and Direction appears anywhere in it (case-insensitive),
// the rule fires.
type recommendationRule struct {
	Category  string
	Parameter string
	Direction string
	Text      string
}

// recommendationRules is evaluated top to bottom in a fixed order. Rules
// are independent: any subset may fire, and duplicates are kept.
var recommendationRules = []recommendationRule{
	{"CBC", "WBC", "high", "Consider follow-up for possible infection or inflammation"},
	{"CBC", "Hemoglobin", "low", "Consider iron studies and dietary assessment"},
	{"LFT", "ALT", "high", "Consider viral hepatitis screening and alcohol assessment"},
	{"LFT", "AST", "high", "Consider viral hepatitis screening and alcohol assessment"},
	{"LFT", "Bilirubin", "high", "Consider ultrasound of liver and biliary system"},
	{"KFT", "Creatinine", "high", "Consider renal ultrasound and proteinuria assessment"},
	{"KFT", "eGFR", "low", "Consider nephrology consultation"},
	{"Lipid", "LDL", "high", "Consider lifestyle modifications and cardiovascular risk assessment"},
	{"Lipid", "HDL", "low", "Consider exercise and dietary modifications"},
	{"Thyroid", "TSH", "high", "Consider thyroid ultrasound and anti-TPO antibodies"},
	{"Thyroid", "TSH", "low", "Consider thyroid scan and TRAb assessment"},
	{"Diabetes", "HbA1c", "high", "Consider OGTT and diabetes education"},
	{"Diabetes", "Insulin", "high", "Consider insulin resistance assessment"},
	{"Inflammatory", "CRP", "high", "Consider autoimmune screening and inflammatory markers"},
	{"Inflammatory", "ESR", "high", "Consider temporal arteritis and polymyalgia rheumatica assessment"},
	{"Urine", "Protein", "high", "Consider 24-hour urine protein and renal function assessment"},
	{"Urine", "Blood", "positive", "Consider urological evaluation and imaging"},
	{"Stool", "Occult_Blood", "positive", "Consider colonoscopy and upper GI endoscopy"},
	{"Stool", "Parasites", "positive", "Consider antiparasitic treatment and follow-up testing"},
}

// DefaultRecommendation is returned when no rule fires.
const DefaultRecommendation = "No specific recommendations at this time"

// Recommend maps interpretation text to an ordered list of clinical
// recommendations by evaluating the decision table.
func Recommend(interpretation string) []string {
	lower := strings.ToLower(interpretation)

	var recommendations []string
	for _, rule := range recommendationRules {
		if !strings.Contains(interpretation, rule.Category) {
			continue
		}
		if !strings.Contains(interpretation, rule.Parameter) {
			continue
		}
		if !strings.Contains(lower, rule.Direction) {
			continue
		}
		recommendations = append(recommendations, rule.Text)
	}

	if len(recommendations) == 0 {
		return []string{DefaultRecommendation}
	}
	return recommendations
}
