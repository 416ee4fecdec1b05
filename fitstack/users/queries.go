package users

const (
	queryCreateUser = `
		INSERT INTO users (id, external_id, email, username, first_name, last_name)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, external_id, email, username, first_name, last_name, is_active, created_at, updated_at, last_login
	`

	queryCreateEmptyProfile = `
		INSERT INTO user_profiles (id, user_id)
		VALUES ($1, $2)
	`

	queryFindByEmail = `
		SELECT id, external_id, email, username, first_name, last_name, is_active, created_at, updated_at, last_login
		FROM users
		WHERE email = $1
	`

	queryFindByExternalID = `
		SELECT id, external_id, email, username, first_name, last_name, is_active, created_at, updated_at, last_login
		FROM users
		WHERE external_id = $1
	`

	queryUpdateLastLogin = `
		UPDATE users
		SET last_login = NOW(), updated_at = NOW()
		WHERE email = $1
	`

	queryDeleteUser = `
		DELETE FROM users
		WHERE email = $1
	`

	queryUpsertProfile = `
		INSERT INTO user_profiles (
			id, user_id, fitness_level, goals, equipment, age, height_cm, weight_kg,
			preferred_workout_time, injury_notes, has_completed_onboarding
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, TRUE)
		ON CONFLICT (user_id)
		DO UPDATE SET
			fitness_level = COALESCE(EXCLUDED.fitness_level, user_profiles.fitness_level),
			goals = COALESCE(EXCLUDED.goals, user_profiles.goals),
			equipment = COALESCE(EXCLUDED.equipment, user_profiles.equipment),
			age = COALESCE(EXCLUDED.age, user_profiles.age),
			height_cm = COALESCE(EXCLUDED.height_cm, user_profiles.height_cm),
			weight_kg = COALESCE(EXCLUDED.weight_kg, user_profiles.weight_kg),
			preferred_workout_time = COALESCE(EXCLUDED.preferred_workout_time, user_profiles.preferred_workout_time),
			injury_notes = COALESCE(EXCLUDED.injury_notes, user_profiles.injury_notes),
			has_completed_onboarding = TRUE,
			updated_at = NOW()
		RETURNING id, user_id, fitness_level, goals, equipment, age, height_cm, weight_kg,
			preferred_workout_time, injury_notes, has_completed_onboarding, created_at, updated_at
	`
)
