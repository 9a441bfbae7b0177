// Package report builds the admin overview across all users' entries.
package report

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"timetracker/internal/models"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// ErrUnavailable wraps any storage failure while building a report.
var ErrUnavailable = errors.New("report unavailable")

// All is the selector value that disables a filter.
const All = "all"

type Filters struct {
	User  string
	Month string
	Year  string
}

// Normalize maps empty values to All and zero-pads the month.
func (f Filters) Normalize() Filters {
	norm := func(s string) string {
		s = strings.TrimSpace(s)
		if s == "" {
			return All
		}
		return s
	}
	f.User = norm(f.User)
	f.Month = norm(f.Month)
	f.Year = norm(f.Year)
	if f.Month != All && len(f.Month) == 1 {
		f.Month = "0" + f.Month
	}
	return f
}

type Row struct {
	EntryID     uint
	Date        string
	Hours       string
	Description string
	Username    string
}

type Report struct {
	Filters   Filters
	Rows      []Row
	Total     float64
	Usernames []string
	Years     []string
}

func (r *Report) TotalString() string {
	return strconv.FormatFloat(r.Total, 'f', 2, 64)
}

type Engine struct {
	db *gorm.DB
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// Build runs the selector and row queries concurrently. The selector lists
// ignore the filters. Any failed read fails the whole report.
func (e *Engine) Build(ctx context.Context, f Filters) (*Report, error) {
	f = f.Normalize()
	rep := &Report{Filters: f}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := e.db.WithContext(gctx).
			Model(&models.User{}).
			Distinct().
			Order("username asc").
			Pluck("username", &rep.Usernames).Error
		if err != nil {
			return fmt.Errorf("usernames: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		err := e.db.WithContext(gctx).
			Raw("SELECT DISTINCT substr(date, 1, 4) AS year FROM entries ORDER BY year DESC").
			Scan(&rep.Years).Error
		if err != nil {
			return fmt.Errorf("years: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		err := e.rowsQuery(gctx, f).Scan(&rep.Rows).Error
		if err != nil {
			return fmt.Errorf("rows: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	for _, r := range rep.Rows {
		rep.Total += ParseHours(r.Hours)
	}
	return rep, nil
}

func (e *Engine) rowsQuery(ctx context.Context, f Filters) *gorm.DB {
	q := e.db.WithContext(ctx).
		Table("entries").
		Select("entries.id AS entry_id, entries.date, entries.hours, entries.description, users.username").
		Joins("JOIN users ON entries.user_id = users.id")

	if f.User != All {
		q = q.Where("users.username = ?", f.User)
	}
	if f.Month != All {
		q = q.Where("substr(entries.date, 6, 2) = ?", f.Month)
	}
	if f.Year != All {
		q = q.Where("substr(entries.date, 1, 4) = ?", f.Year)
	}

	return q.Order("entries.date desc").Order("entries.id desc")
}

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// ParseHours reads the leading decimal number of s. Values without one
// count as zero so that malformed rows never break a report.
func ParseHours(s string) float64 {
	m := leadingNumber.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}
