package risk

import "fmt"

// Recommendation tables, keyed by risk or urgency tier. The texts are the
// standing public-health guidance and are part of the outward contract.

func dengueRecommendations(level string) []string {
	switch level {
	case "high":
		return []string{
			"Eliminate standing water sources immediately",
			"Increase vector control activities",
			"Public awareness campaigns about dengue prevention",
			"Enhanced surveillance in high-risk areas",
			"Prepare healthcare facilities for potential surge",
		}
	case "medium":
		return []string{
			"Regular monitoring of water storage areas",
			"Community education programs",
			"Routine vector surveillance",
		}
	default:
		return []string{"Maintain routine prevention measures"}
	}
}

func malariaRecommendations(level string) []string {
	if level == "high" {
		return []string{
			"Distribute insecticide-treated nets",
			"Indoor residual spraying in high-risk areas",
			"Strengthen case management protocols",
			"Enhance diagnostic capabilities",
		}
	}
	return []string{"Maintain routine malaria prevention measures"}
}

func respiratoryRecommendations(level string) []string {
	if level == "high" {
		return []string{
			"Air quality monitoring and alerts",
			"Vaccination campaigns for vulnerable populations",
			"Public health advisories for outdoor activities",
			"Enhanced respiratory disease surveillance",
		}
	}
	return []string{"Routine respiratory health monitoring"}
}

func choleraRecommendations(level string) []string {
	switch level {
	case "critical":
		return []string{
			"EMERGENCY: Immediate water quality testing and treatment",
			"Deploy emergency medical teams to flood-affected areas",
			"Establish cholera treatment centers",
			"Mass distribution of oral rehydration salts (ORS)",
			"Strict water and food safety protocols",
		}
	case "high":
		return []string{
			"Enhanced water quality monitoring",
			"Public awareness on safe water practices",
			"Increase cholera surveillance",
			"Prepare medical supplies for potential outbreak",
		}
	default:
		return []string{"Routine water quality monitoring", "Basic hygiene education"}
	}
}

func typhoidRecommendations(level string) []string {
	if level == "high" {
		return []string{
			"Ensure safe drinking water supply",
			"Food safety inspections and guidelines",
			"Typhoid vaccination campaigns in high-risk areas",
			"Enhanced surveillance for typhoid cases",
			"Improve sanitation facilities",
		}
	}
	return []string{"Basic food and water safety education", "Routine surveillance"}
}

func hepatitisRecommendations(level string) []string {
	if level == "high" {
		return []string{
			"Hepatitis A vaccination for high-risk populations",
			"Improve sanitation and hygiene facilities",
			"Safe water distribution in affected areas",
			"Health education on personal hygiene",
			"Enhanced surveillance for hepatitis cases",
		}
	}
	return []string{"Basic hygiene education", "Routine vaccination programs"}
}

func diarrhealRecommendations(level string) []string {
	switch level {
	case "critical":
		return []string{
			"URGENT: Mass distribution of ORS and clean water",
			"Emergency diarrhea treatment centers",
			"Immediate water source protection",
			"Public health emergency declaration",
			"Mobile medical units for affected areas",
		}
	case "high":
		return []string{
			"Increase ORS availability",
			"Water quality testing and treatment",
			"Public education on diarrhea prevention",
			"Enhanced surveillance for diarrheal diseases",
		}
	default:
		return []string{"Basic hygiene education", "Routine water quality monitoring"}
	}
}

// ImmediateActions returns the 24-hour action list for an urgency tier.
func ImmediateActions(urgency, city string) []string {
	switch urgency {
	case "critical":
		return []string{
			fmt.Sprintf("Deploy emergency response teams to %s", city),
			"Activate crisis management protocols",
			"Increase hospital preparedness",
			"Issue public health emergency alert",
		}
	case "very_high":
		return []string{
			fmt.Sprintf("Deploy rapid response teams to %s", city),
			"Increase disease surveillance",
			"Prepare medical resources",
			"Issue health advisory",
		}
	case "high":
		return []string{
			"Enhance monitoring systems",
			"Prepare response teams",
			"Issue preventive guidelines",
			"Coordinate with local health authorities",
		}
	default:
		return []string{"Monitor situation closely"}
	}
}

// Actions72h returns the 72-hour action list for an urgency tier.
func Actions72h(urgency, city string) []string {
	switch urgency {
	case "critical":
		return []string{
			fmt.Sprintf("Maintain emergency protocols in %s", city),
			"Continue intensive surveillance",
			"Ensure resource availability",
			"Monitor outbreak progression",
		}
	case "very_high":
		return []string{
			fmt.Sprintf("Prepare intervention strategies for %s", city),
			"Increase preventive measures",
			"Monitor risk indicators",
			"Coordinate response planning",
		}
	case "high":
		return []string{
			"Implement preventive measures",
			"Monitor situation development",
			"Prepare contingency plans",
			"Educate public on prevention",
		}
	default:
		return []string{"Continue routine monitoring"}
	}
}

// RiskRecommendations returns forecast-period guidance for a national risk tier.
func RiskRecommendations(level string) []string {
	switch level {
	case "high":
		return []string{
			"Activate emergency response protocols",
			"Increase healthcare facility preparedness",
			"Launch intensive public health campaigns",
			"Deploy additional medical resources to high-risk areas",
			"Implement enhanced surveillance measures",
		}
	case "medium":
		return []string{
			"Monitor disease trends closely",
			"Prepare contingency plans",
			"Increase public awareness activities",
			"Review healthcare capacity",
		}
	default:
		return []string{
			"Maintain routine surveillance",
			"Continue preventive measures",
			"Monitor seasonal patterns",
		}
	}
}
