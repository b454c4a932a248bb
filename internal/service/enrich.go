package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/bachlog/internal/catalog"
	"github.com/alexanderramin/bachlog/internal/domain"
	"github.com/alexanderramin/bachlog/internal/importer"
)

// enricher completes a validated row with catalog data. It makes no
// retries; each failure is returned as is, wrapped by kind.
type enricher struct {
	catalog catalog.Client
}

func (e enricher) enrich(ctx context.Context, row importer.ValidRow) (*domain.CourseRecord, error) {
	matches, err := e.catalog.SearchByCode(ctx, row.Code)
	if err != nil {
		return nil, fmt.Errorf("%w: searching %s: %v", domain.ErrDependency, row.Code, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: no catalog course matches code %s", domain.ErrNotFound, row.Code)
	}
	course := matches[0]

	season, err := e.catalog.GetSeason(ctx, course.Code)
	if err != nil {
		return nil, fmt.Errorf("%w: season of %s: %v", domain.ErrDependency, course.Code, err)
	}

	curricula, err := e.catalog.GetCurricula(ctx, course.UUID)
	if err != nil {
		return nil, fmt.Errorf("%w: curricula of %s: %v", domain.ErrDependency, course.Code, err)
	}

	return importer.ToCourseRecord(row, course, season, curricula.Default), nil
}
