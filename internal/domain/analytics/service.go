package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MrNonaRv/jamindan-e-clonic/internal/platform/insights"
)

const topIllnessCount = 5

type Service struct {
	repo              Repository
	gen               insights.Generator
	lowStockThreshold int
}

func NewService(repo Repository, gen insights.Generator, lowStockThreshold int) *Service {
	return &Service{repo: repo, gen: gen, lowStockThreshold: lowStockThreshold}
}

func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	total, err := s.repo.TotalPatients(ctx)
	if err != nil {
		return nil, err
	}
	today, err := s.repo.ConsultationsOn(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	lowStock, err := s.repo.LowStockCount(ctx, s.lowStockThreshold)
	if err != nil {
		return nil, err
	}
	puroks, err := s.repo.ActivePuroks(ctx)
	if err != nil {
		return nil, err
	}
	return &Summary{
		TotalPatients:      total,
		ConsultationsToday: today,
		LowStockMeds:       lowStock,
		ActivePuroks:       puroks,
	}, nil
}

func (s *Service) PurokDistribution(ctx context.Context) ([]PurokCount, error) {
	return s.repo.PurokDistribution(ctx)
}

// TopIllnesses returns the five most frequent diagnoses; everything past
// the fifth is folded into an Others bucket.
func (s *Service) TopIllnesses(ctx context.Context) ([]IllnessCount, error) {
	counts, err := s.repo.DiagnosisCounts(ctx)
	if err != nil {
		return nil, err
	}
	if len(counts) <= topIllnessCount {
		return counts, nil
	}
	top := counts[:topIllnessCount]
	others := 0
	for _, ic := range counts[topIllnessCount:] {
		others += ic.Value
	}
	return append(top, IllnessCount{Name: "Others", Value: others}), nil
}

// MonthlyVisits covers the trailing six months, current month included.
// Months without consultations still get a zero bucket so the chart axis
// spans the whole window.
func (s *Service) MonthlyVisits(ctx context.Context) ([]MonthlyVisits, error) {
	now := time.Now()
	since := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -5, 0)
	rows, err := s.repo.MonthlyVisits(ctx, since)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.Month] = r.Visits
	}

	out := make([]MonthlyVisits, 0, 6)
	for m := since; !m.After(now); m = m.AddDate(0, 1, 0) {
		label := m.Format("Jan")
		out = append(out, MonthlyVisits{Month: label, Visits: counts[label]})
	}
	return out, nil
}

// Insights asks the configured text-generation service for a short analysis
// of the current dashboard numbers. insights.ErrDisabled passes through so
// the handler can report the feature as unconfigured.
func (s *Service) Insights(ctx context.Context) (string, error) {
	summary, err := s.Summary(ctx)
	if err != nil {
		return "", err
	}
	illnesses, err := s.TopIllnesses(ctx)
	if err != nil {
		return "", err
	}
	puroks, err := s.repo.PurokDistribution(ctx)
	if err != nil {
		return "", err
	}
	visits, err := s.MonthlyVisits(ctx)
	if err != nil {
		return "", err
	}

	return s.gen.Generate(ctx, buildPrompt(summary, illnesses, puroks, visits))
}

func buildPrompt(summary *Summary, illnesses []IllnessCount, puroks []PurokCount, visits []MonthlyVisits) string {
	var b strings.Builder
	b.WriteString("Analyze this health data for Barangay Poblacion, Jamindan, Capiz and provide 3-4 actionable insights for the Barangay Health Workers.\n")
	b.WriteString("Data:\n")
	fmt.Fprintf(&b, "- Total Patients: %d\n", summary.TotalPatients)

	if len(illnesses) > 0 {
		names := make([]string, 0, 2)
		for i, ic := range illnesses {
			if i == 2 {
				break
			}
			names = append(names, fmt.Sprintf("%s (%d cases)", ic.Name, ic.Value))
		}
		fmt.Fprintf(&b, "- Top Illness: %s\n", strings.Join(names, ", "))
	}

	if busiest := busiestPurok(puroks); busiest != "" {
		fmt.Fprintf(&b, "- Purok with highest cases: %s\n", busiest)
	}
	if trend := visitTrend(visits); trend != "" {
		fmt.Fprintf(&b, "- Monthly Trend: %s\n", trend)
	}

	b.WriteString("Keep it professional and community-focused.")
	return b.String()
}

func busiestPurok(puroks []PurokCount) string {
	name, best := "", 0
	for _, pc := range puroks {
		if pc.Patients > best {
			name, best = pc.Name, pc.Patients
		}
	}
	return name
}

func visitTrend(visits []MonthlyVisits) string {
	if len(visits) < 2 {
		return ""
	}
	last := visits[len(visits)-1]
	prev := visits[len(visits)-2]
	switch {
	case last.Visits > prev.Visits:
		return fmt.Sprintf("Increasing visits in %s.", last.Month)
	case last.Visits < prev.Visits:
		return fmt.Sprintf("Decreasing visits in %s.", last.Month)
	default:
		return fmt.Sprintf("Steady visits through %s.", last.Month)
	}
}
