package db

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/myrestapi/backend/internal/model"
)

const lectureColumns = `
	l.id, l.name, l.description,
	l.begin_enrollment_date_time, l.close_enrollment_date_time,
	l.begin_lecture_date_time, l.end_lecture_date_time,
	l.location, l.base_price, l.max_price, l.limit_of_enrollment,
	l.offline, l.free, l.lecture_status,
	l.user_id, u.email
`

func (db *Postgres) InsertLecture(ctx context.Context, l *model.Lecture) (*model.Lecture, error) {
	query := `
		INSERT INTO lectures (
			name, description,
			begin_enrollment_date_time, close_enrollment_date_time,
			begin_lecture_date_time, end_lecture_date_time,
			location, base_price, max_price, limit_of_enrollment,
			offline, free, lecture_status, user_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`
	var ownerID *int64
	if l.Owner != nil {
		ownerID = &l.Owner.ID
	}
	err := db.Pool.QueryRow(ctx, query,
		l.Name, l.Description,
		l.BeginEnrollmentDateTime, l.CloseEnrollmentDateTime,
		l.BeginLectureDateTime, l.EndLectureDateTime,
		l.Location, l.BasePrice, l.MaxPrice, l.LimitOfEnrollment,
		l.Offline, l.Free, l.LectureStatus, ownerID,
	).Scan(&l.ID)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (db *Postgres) GetLecture(ctx context.Context, id int64) (*model.Lecture, error) {
	query := `
		SELECT ` + lectureColumns + `
		FROM lectures l
		LEFT JOIN user_info u ON u.id = l.user_id
		WHERE l.id = $1
	`
	return scanLecture(db.Pool.QueryRow(ctx, query, id))
}

func (db *Postgres) UpdateLecture(ctx context.Context, l *model.Lecture) (*model.Lecture, error) {
	query := `
		UPDATE lectures SET
			name = $2, description = $3,
			begin_enrollment_date_time = $4, close_enrollment_date_time = $5,
			begin_lecture_date_time = $6, end_lecture_date_time = $7,
			location = $8, base_price = $9, max_price = $10,
			limit_of_enrollment = $11, offline = $12, free = $13,
			lecture_status = $14
		WHERE id = $1
	`
	tag, err := db.Pool.Exec(ctx, query,
		l.ID, l.Name, l.Description,
		l.BeginEnrollmentDateTime, l.CloseEnrollmentDateTime,
		l.BeginLectureDateTime, l.EndLectureDateTime,
		l.Location, l.BasePrice, l.MaxPrice,
		l.LimitOfEnrollment, l.Offline, l.Free,
		l.LectureStatus,
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, pgx.ErrNoRows
	}
	return l, nil
}

func (db *Postgres) ListLectures(ctx context.Context, offset, limit int) ([]model.Lecture, error) {
	query := `
		SELECT ` + lectureColumns + `
		FROM lectures l
		LEFT JOIN user_info u ON u.id = l.user_id
		ORDER BY l.id
		OFFSET $1 LIMIT $2
	`
	rows, err := db.Pool.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lectures []model.Lecture
	for rows.Next() {
		l, err := scanLecture(rows)
		if err != nil {
			return nil, err
		}
		lectures = append(lectures, *l)
	}
	return lectures, rows.Err()
}

func (db *Postgres) CountLectures(ctx context.Context) (int64, error) {
	var count int64
	err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM lectures`).Scan(&count)
	return count, err
}

func scanLecture(row pgx.Row) (*model.Lecture, error) {
	var l model.Lecture
	var ownerID *int64
	var ownerEmail *string
	err := row.Scan(
		&l.ID, &l.Name, &l.Description,
		&l.BeginEnrollmentDateTime, &l.CloseEnrollmentDateTime,
		&l.BeginLectureDateTime, &l.EndLectureDateTime,
		&l.Location, &l.BasePrice, &l.MaxPrice, &l.LimitOfEnrollment,
		&l.Offline, &l.Free, &l.LectureStatus,
		&ownerID, &ownerEmail,
	)
	if err != nil {
		return nil, err
	}
	if ownerID != nil {
		owner := &model.UserInfo{ID: *ownerID}
		if ownerEmail != nil {
			owner.Email = *ownerEmail
		}
		l.Owner = owner
	}
	return &l, nil
}
