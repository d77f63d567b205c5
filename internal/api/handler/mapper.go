package handler

import (
	"github.com/chronolog/timetrack-system/internal/core/domain"
	"github.com/chronolog/timetrack-system/internal/core/ports"
	"github.com/chronolog/timetrack-system/internal/pkg/chrono"
)

// Mapping functions with fixed output schemas, independent of the transport
// framework so they can be tested without HTTP plumbing.

// toUserResponse shapes a user for the API. The token is included only when
// non-empty (login, register).
func toUserResponse(user *domain.User, token string) userResponse {
	return userResponse{
		ID:       user.ID,
		Email:    user.Email,
		Role:     string(user.Role),
		Settings: user.Settings,
		Token:    token,
	}
}

func toUsersResponse(users []*domain.User) usersResponse {
	out := make([]userResponse, len(users))
	for i, u := range users {
		out[i] = toUserResponse(u, "")
	}
	return usersResponse{NumUsers: len(out), Users: out}
}

func toTimelogResponse(d *ports.TimelogDetail) timelogResponse {
	return timelogResponse{
		ID:          d.ID,
		Description: d.Description,
		Date:        chrono.FormatAPIDate(d.Date),
		Minutes:     d.Minutes,
		UserID:      d.UserID,
		UserEmail:   d.UserEmail,
	}
}

func toTimelogsResponse(details []ports.TimelogDetail) timelogsResponse {
	out := make([]timelogResponse, len(details))
	for i := range details {
		out[i] = toTimelogResponse(&details[i])
	}
	return timelogsResponse{NumTimelogs: len(out), Timelogs: out}
}

// toExportData renders a report's dates and durations into the strings the
// export template prints.
func toExportData(report *ports.Report) exportData {
	data := exportData{
		GeneratedDateStr: chrono.FormatDisplayDate(report.GeneratedAt),
		SingleUserEmail:  report.SingleUserEmail,
		ExporterEmail:    report.ExporterEmail,
		Groups:           make([]exportGroup, len(report.Groups)),
	}
	if report.From != nil {
		data.FromDateStr = chrono.FormatDisplayDate(*report.From)
	}
	if report.To != nil {
		data.ToDateStr = chrono.FormatDisplayDate(*report.To)
	}
	for i, g := range report.Groups {
		group := exportGroup{
			DateStr:      chrono.FormatDisplayDate(g.Date),
			TotalTimeStr: chrono.FormatMinutes(g.Minutes),
			Notes:        g.Notes,
		}
		if !report.SelfOnly {
			group.UserEmail = g.UserEmail
		}
		data.Groups[i] = group
	}
	return data
}
