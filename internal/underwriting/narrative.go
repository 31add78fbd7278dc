package underwriting

import (
	"fmt"
	"strings"
)

// narrative renders the human-readable analysis report embedded in the
// decision. Auditors weigh its length and structure, so keep the section
// layout stable.
func narrative(p ApplicantProfile, riskScore int, rec Recommendation, factors []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Credit Analysis Report for %s\n", p.ApplicantName)
	b.WriteString("==========================================\n\n")

	b.WriteString("Summary:\n")
	b.WriteString("The application has been evaluated based on multiple risk dimensions\n")
	b.WriteString("including creditworthiness, income stability, and debt capacity.\n\n")

	b.WriteString("Key Findings:\n")
	fmt.Fprintf(&b, "- Credit Score: %d (%s)\n", p.CreditScore, scoreCategory(p.CreditScore))
	fmt.Fprintf(&b, "- Employment: %d years (%s)\n", p.EmploymentYears, employmentCategory(p.EmploymentYears))
	fmt.Fprintf(&b, "- Annual Income: $%.0f\n", p.AnnualIncome)
	fmt.Fprintf(&b, "- Overall Risk Score: %d/100\n\n", riskScore)

	if len(factors) > 0 {
		b.WriteString("Risk Factors Identified:\n")
		for _, factor := range factors {
			fmt.Fprintf(&b, "  - %s\n", factor)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Recommendation: %s\n\n", rec)
	b.WriteString("This recommendation is based on a comprehensive analysis of the applicant's\n")
	b.WriteString("financial profile, credit history, and ability to service the proposed debt.")

	return b.String()
}

func scoreCategory(score int) string {
	switch {
	case score >= 750:
		return "Excellent"
	case score >= 700:
		return "Good"
	case score >= 650:
		return "Fair"
	default:
		return "Poor"
	}
}

func employmentCategory(years int) string {
	switch {
	case years >= 5:
		return "Stable"
	case years >= 2:
		return "Moderate"
	default:
		return "Limited"
	}
}
