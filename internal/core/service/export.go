package service

import (
	"sort"
	"strings"
	"time"

	"github.com/chronolog/timetrack-system/internal/core/domain"
	"github.com/chronolog/timetrack-system/internal/core/ports"
)

// BuildReport groups already-visibility-filtered timelogs by (calendar day,
// owner) and aggregates each group: total minutes summed, non-empty trimmed
// descriptions collected in insertion order. Groups come out sorted by date
// descending; ordering between different users on the same date is not
// defined.
//
// Users and managers get a selfOnly report: per-group emails are omitted and
// the header names the report's single subject. Admins get the full report
// with per-group emails, headed by the exporter's own address.
func BuildReport(logs []ports.TimelogDetail, authUser *domain.User, query ports.TimelogQuery) *ports.Report {
	selfOnly := authUser.Role == domain.RoleUser || authUser.Role == domain.RoleManager

	report := &ports.Report{
		GeneratedAt: time.Now().UTC(),
		SelfOnly:    selfOnly,
	}
	if selfOnly {
		report.SingleUserEmail = authUser.Email
	} else {
		report.ExporterEmail = authUser.Email
	}
	if !query.From.IsZero() {
		from := query.From
		report.From = &from
	}
	if !query.To.IsZero() {
		to := query.To
		report.To = &to
	}

	type groupKey struct {
		day   int64
		email string
	}
	index := make(map[groupKey]int)
	groups := make([]ports.ReportGroup, 0)

	for _, log := range logs {
		key := groupKey{day: log.Date.Unix(), email: log.UserEmail}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, ports.ReportGroup{
				Date:      log.Date,
				UserEmail: log.UserEmail,
			})
		}
		groups[i].Minutes += log.Minutes
		if note := strings.TrimSpace(log.Description); note != "" {
			groups[i].Notes = append(groups[i].Notes, note)
		}
	}

	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].Date.After(groups[b].Date)
	})

	report.Groups = groups
	return report
}
