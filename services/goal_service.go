package services

import (
	"errors"
	"time"

	"github.com/Shwetank-F/daily-diet-scan/models"

	"gorm.io/gorm"
)

type GoalService struct {
	db     *gorm.DB
	ledger *LedgerService
}

func NewGoalService(db *gorm.DB, ledger *LedgerService) *GoalService {
	return &GoalService{db: db, ledger: ledger}
}

// GetGoalsAndProgress reads the user's targets and the day's totals and
// reports consumed/goal/percent per tracked macro. A user with no goal row
// yet gets zero targets (and zero percentages).
func (s *GoalService) GetGoalsAndProgress(userID uint, date time.Time) (*models.DailyGoal, map[string]interface{}, error) {
	var goal models.DailyGoal
	err := s.db.Where("user_id = ?", userID).First(&goal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			goal = models.DailyGoal{UserID: userID}
		} else {
			return nil, nil, err
		}
	}

	total, _, err := s.ledger.LoadDay(userID, date)
	if err != nil {
		return &goal, nil, err
	}

	pct := func(consumed, target float64) float64 {
		if target <= 0 {
			return 0
		}
		p := consumed / target
		if p > 1 {
			return 1
		}
		return p
	}

	progress := map[string]interface{}{
		"calories": map[string]float64{"consumed": total.Calories, "goal": goal.Calories, "percent": pct(total.Calories, goal.Calories)},
		"protein":  map[string]float64{"consumed": total.Protein, "goal": goal.Protein, "percent": pct(total.Protein, goal.Protein)},
		"carbs":    map[string]float64{"consumed": total.Carbs, "goal": goal.Carbs, "percent": pct(total.Carbs, goal.Carbs)},
		"fat":      map[string]float64{"consumed": total.Fat, "goal": goal.Fat, "percent": pct(total.Fat, goal.Fat)},
	}

	return &goal, progress, nil
}

func (s *GoalService) UpsertGoals(userID uint, calories, protein, carbs, fat float64) error {
	var goal models.DailyGoal
	err := s.db.Where("user_id = ?", userID).First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		goal = models.DailyGoal{
			UserID:   userID,
			Calories: calories,
			Protein:  protein,
			Carbs:    carbs,
			Fat:      fat,
		}
		return s.db.Create(&goal).Error
	}
	if err != nil {
		return err
	}

	goal.Calories = calories
	goal.Protein = protein
	goal.Carbs = carbs
	goal.Fat = fat

	return s.db.Save(&goal).Error
}
