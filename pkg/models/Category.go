package models

const (
	CategoryHealthcare       = "Healthcare"
	CategoryEducation        = "Education"
	CategoryFoodDistribution = "Food Distribution"
	CategoryLegalAid         = "Legal Aid"
	CategoryEvents           = "Events"
	CategoryVolunteers       = "Volunteers"
	CategoryCommunity        = "Community"
)

type CategoryRule struct {
	Category string
	Keywords []string
}

/*
CategoryRules are evaluated in order and the first match wins. Reordering
them reclassifies photos that match more than one group.
*/
var CategoryRules = []CategoryRule{
	{Category: CategoryHealthcare, Keywords: []string{"medical", "health", "doctor", "clinic"}},
	{Category: CategoryEducation, Keywords: []string{"education", "school", "student", "learning"}},
	{Category: CategoryFoodDistribution, Keywords: []string{"food", "distribution", "relief", "aid"}},
	{Category: CategoryLegalAid, Keywords: []string{"legal", "law", "advocate", "rights"}},
	{Category: CategoryEvents, Keywords: []string{"event", "celebration", "ceremony"}},
	{Category: CategoryVolunteers, Keywords: []string{"volunteer", "team"}},
}
