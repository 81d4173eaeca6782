package analytics

import (
	"context"
	"time"
)

// Summary feeds the four dashboard stat cards.
type Summary struct {
	TotalPatients      int `json:"totalPatients"`
	ConsultationsToday int `json:"consultationsToday"`
	LowStockMeds       int `json:"lowStockMeds"`
	ActivePuroks       int `json:"activePuroks"`
}

// PurokCount is one bar of the purok distribution chart.
type PurokCount struct {
	Name     string `json:"name"`
	Patients int    `json:"patients"`
}

// IllnessCount is one slice of the top-illness pie chart.
type IllnessCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// MonthlyVisits is one point of the visit trend line.
type MonthlyVisits struct {
	Month  string `json:"month"`
	Visits int    `json:"visits"`
}

type Repository interface {
	TotalPatients(ctx context.Context) (int, error)
	ConsultationsOn(ctx context.Context, day time.Time) (int, error)
	LowStockCount(ctx context.Context, threshold int) (int, error)
	ActivePuroks(ctx context.Context) (int, error)
	PurokDistribution(ctx context.Context) ([]PurokCount, error)
	DiagnosisCounts(ctx context.Context) ([]IllnessCount, error)
	MonthlyVisits(ctx context.Context, since time.Time) ([]MonthlyVisits, error)
}
