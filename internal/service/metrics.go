package service

import "daily-diet-api/internal/model"

// ComputeMetrics aggregates meals in the order given, which callers keep as
// insertion order. The best sequence is the longest run of on-diet meals;
// any off-diet meal resets the current run.
func ComputeMetrics(meals []model.Meal) model.Metrics {
	var m model.Metrics
	current := 0
	for _, meal := range meals {
		m.TotalMeals++
		if meal.IsOnDiet {
			m.TotalMealsOnDiet++
			current++
		} else {
			m.TotalMealsOffDiet++
			current = 0
		}
		if current > m.BestDietSequence {
			m.BestDietSequence = current
		}
	}
	return m
}
