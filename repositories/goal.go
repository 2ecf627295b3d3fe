//go:generate go run go.uber.org/mock/mockgen -source=goal.go -destination=../mocks/mock_goal_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"mentconnect/domain"
	apperrors "mentconnect/errors"
)

type IGoalRepository interface {
	SaveGoal(goal domain.Goal) error
	GetGoal(menteeID string, goalID uuid.UUID) (domain.Goal, error)
	ListGoals(menteeID string) ([]domain.Goal, error)
	SaveTask(task domain.Task) error
	ListTasks(goalID uuid.UUID) ([]domain.Task, error)
	CountTasksCompleted(menteeID string) (int, error)
}

type GoalRepository struct {
	db *badger.DB
}

func NewGoalRepository(db *badger.DB) GoalRepository {
	return GoalRepository{db: db}
}

// Keys: "goal:{mentee_id}:{goal_id}" and "task:{goal_id}:{task_id}".
// Goals scan per mentee; tasks scan per goal.
func goalKey(menteeID string, goalID uuid.UUID) []byte {
	return []byte(fmt.Sprintf("goal:%s:%s", menteeID, goalID))
}

func taskKey(goalID, taskID uuid.UUID) []byte {
	return []byte(fmt.Sprintf("task:%s:%s", goalID, taskID))
}

func (r GoalRepository) SaveGoal(goal domain.Goal) error {
	goal.UpdatedAt = time.Now().UTC()
	if goal.CreatedAt.IsZero() {
		goal.CreatedAt = goal.UpdatedAt
	}
	data, err := json.Marshal(goal)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(goalKey(goal.MenteeID, goal.ID), data)
	})
}

func (r GoalRepository) GetGoal(menteeID string, goalID uuid.UUID) (domain.Goal, error) {
	var goal domain.Goal
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(goalKey(menteeID, goalID))
		if err == badger.ErrKeyNotFound {
			return apperrors.ErrGoalNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &goal)
		})
	})
	return goal, err
}

func (r GoalRepository) ListGoals(menteeID string) ([]domain.Goal, error) {
	var goals []domain.Goal
	err := r.scan([]byte("goal:"+menteeID+":"), func(val []byte) error {
		var goal domain.Goal
		if err := json.Unmarshal(val, &goal); err != nil {
			return err
		}
		goals = append(goals, goal)
		return nil
	})
	return goals, err
}

func (r GoalRepository) SaveTask(task domain.Task) error {
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}
	data, err := json.Marshal(task)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(taskKey(task.GoalID, task.ID), data)
	})
}

func (r GoalRepository) ListTasks(goalID uuid.UUID) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.scan([]byte("task:"+goalID.String()+":"), func(val []byte) error {
		var task domain.Task
		if err := json.Unmarshal(val, &task); err != nil {
			return err
		}
		tasks = append(tasks, task)
		return nil
	})
	return tasks, err
}

// CountTasksCompleted counts completed tasks across all of a mentee's goals.
func (r GoalRepository) CountTasksCompleted(menteeID string) (int, error) {
	goals, err := r.ListGoals(menteeID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, goal := range goals {
		tasks, err := r.ListTasks(goal.ID)
		if err != nil {
			return 0, err
		}
		for _, task := range tasks {
			if task.IsCompleted {
				count++
			}
		}
	}
	return count, nil
}

func (r GoalRepository) scan(prefix []byte, each func(val []byte) error) error {
	return r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := it.Item().Value(each); err != nil {
				return err
			}
		}
		return nil
	})
}
