package storage

import (
	"context"
	"fmt"

	"github.com/claude/liftstats/internal/models"
	"github.com/google/uuid"
)

// QueryTemplates retrieves a user's workout templates.
func (db *DB) QueryTemplates(ctx context.Context, userID uuid.UUID) ([]models.WorkoutTemplate, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, owner_user_id, name, created_on
		 FROM workout_templates
		 WHERE owner_user_id = $1
		 ORDER BY created_on ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying templates: %w", err)
	}
	defer rows.Close()

	var result []models.WorkoutTemplate
	for rows.Next() {
		var t models.WorkoutTemplate
		if err := rows.Scan(&t.ID, &t.OwnerUserID, &t.Name, &t.CreatedOn); err != nil {
			return nil, fmt.Errorf("scanning template: %w", err)
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

// QueryTemplateItems retrieves the items of the given templates in position
// order.
func (db *DB) QueryTemplateItems(ctx context.Context, templateIDs []uuid.UUID) ([]models.TemplateItem, error) {
	if len(templateIDs) == 0 {
		return nil, nil
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT id, template_id, exercise_id, position
		 FROM template_items
		 WHERE template_id = ANY($1)
		 ORDER BY template_id, position ASC`,
		templateIDs)
	if err != nil {
		return nil, fmt.Errorf("querying template items: %w", err)
	}
	defer rows.Close()

	var result []models.TemplateItem
	for rows.Next() {
		var it models.TemplateItem
		if err := rows.Scan(&it.ID, &it.TemplateID, &it.ExerciseID, &it.Position); err != nil {
			return nil, fmt.Errorf("scanning template item: %w", err)
		}
		result = append(result, it)
	}
	return result, rows.Err()
}
