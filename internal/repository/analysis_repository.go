package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"marketsentiment/internal/model"
)

type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

type entityRow struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

func (r *AnalysisRepository) SaveAnalysis(ctx context.Context, a *model.Analysis) error {
	rows := make([]entityRow, len(a.Entities))
	for i, e := range a.Entities {
		rows[i] = entityRow{Text: e.Text, Label: e.Label}
	}

	entities, err := json.Marshal(rows)
	if err != nil {
		return err
	}

	return r.db.QueryRowContext(ctx, `
		INSERT INTO sentiment_analysis(category, statement, sentiment, entities, fell_back, provider, model_used, created_at)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, string(a.Category), a.Statement, a.Sentiment, entities, a.FellBack, a.Provider, a.ModelUsed, a.CreatedAt).Scan(&a.ID)
}

func (r *AnalysisRepository) GetAnalyses(ctx context.Context, limit, offset int) ([]model.Analysis, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, category, statement, sentiment, entities, fell_back, provider, model_used, created_at
		FROM sentiment_analysis
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var analyses []model.Analysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return analyses, nil
}

func (r *AnalysisRepository) GetAnalysisTotal(ctx context.Context) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sentiment_analysis`).Scan(&total)
	return total, err
}

func (r *AnalysisRepository) GetAnalysisByID(ctx context.Context, id int64) (*model.Analysis, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, category, statement, sentiment, entities, fell_back, provider, model_used, created_at
		FROM sentiment_analysis
		WHERE id = $1
	`, id)

	a, err := scanAnalysis(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return a, err
}

func (r *AnalysisRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(s scanner) (*model.Analysis, error) {
	var a model.Analysis
	var category string
	var entitiesJSON []byte

	err := s.Scan(&a.ID, &category, &a.Statement, &a.Sentiment, &entitiesJSON, &a.FellBack, &a.Provider, &a.ModelUsed, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	a.Category = model.Category(category)

	var rows []entityRow
	if err := json.Unmarshal(entitiesJSON, &rows); err != nil {
		return nil, err
	}
	a.Entities = make([]model.Entity, len(rows))
	for i, e := range rows {
		a.Entities[i] = model.Entity{Text: e.Text, Label: e.Label}
	}

	return &a, nil
}
