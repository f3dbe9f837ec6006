package storage

import (
	"time"

	"github.com/sattvicfoods/meal-service/pkg/models"
)

// SeedMealPlans returns the storefront's launch catalog. The plan ids are
// fixed strings so bookmarked links and the scenario docs stay stable across
// restarts.
func SeedMealPlans(now time.Time) []models.MealPlan {
	until := now.Add(30 * 24 * time.Hour)
	return []models.MealPlan{
		{
			ID:             "1",
			Name:           "Traditional South Indian Thali",
			Description:    "Complete vegetarian meal with sambar, rasam, dal, vegetables, rice, chapati, and pickle",
			Price:          180,
			PlanType:       models.PlanTypeDaily,
			ImageURL:       "/api/assets/south-indian-thali.jpg",
			Items:          []string{"Sambar", "Rasam", "Dal", "Mixed Vegetables", "Rice", "Chapati", "Pickle", "Papad"},
			IsVegetarian:   true,
			Servings:       1,
			AvailableFrom:  now,
			AvailableUntil: until,
		},
		{
			ID:             "2",
			Name:           "Weekly Breakfast Plan",
			Description:    "Seven days of authentic South Indian breakfast - Idli, Dosa, Upma, Poha and more",
			Price:          850,
			PlanType:       models.PlanTypeWeekly,
			ImageURL:       "/api/assets/breakfast-plan.jpg",
			Items:          []string{"Idli with Sambar & Chutney", "Masala Dosa", "Upma", "Poha", "Uttapam", "Rava Idli", "Medu Vada"},
			IsVegetarian:   true,
			Servings:       7,
			AvailableFrom:  now,
			AvailableUntil: until,
		},
		{
			ID:             "3",
			Name:           "Monthly Family Plan",
			Description:    "Complete month of home-style South Indian meals for 4 people",
			Price:          12000,
			PlanType:       models.PlanTypeMonthly,
			ImageURL:       "/api/assets/family-plan.jpg",
			Items:          []string{"Daily Breakfast", "Daily Lunch", "Daily Dinner", "Weekend Specials", "Festival Meals"},
			IsVegetarian:   true,
			Servings:       120,
			AvailableFrom:  now,
			AvailableUntil: until,
		},
		{
			ID:             "4",
			Name:           "Curd Rice & Pickle Combo",
			Description:    "Comfort food combo with homemade curd rice, mixed vegetable curry, and traditional pickle",
			Price:          120,
			PlanType:       models.PlanTypeDaily,
			ImageURL:       "/api/assets/curd-rice-combo.jpg",
			Items:          []string{"Curd Rice", "Mixed Vegetable Curry", "Mango Pickle", "Papad"},
			IsVegetarian:   true,
			Servings:       1,
			AvailableFrom:  now,
			AvailableUntil: until,
		},
	}
}
